package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
)

type msgServer struct {
	keeper Keeper
}

// NewMsgServerImpl returns an implementation of the bounty MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{keeper: k}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) PostBounty(goCtx context.Context, msg *types.MsgPostBounty) (*types.MsgPostBountyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	depositer, err := sdk.AccAddressFromBech32(msg.Depositer)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer")
	}
	id, err := m.keeper.PostBounty(ctx, depositer, msg.Amount, msg.ContentHash, msg.OrgID)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Depositer)
	return &types.MsgPostBountyResponse{BountyID: id}, nil
}

func (m msgServer) FundBounty(goCtx context.Context, msg *types.MsgFundBounty) (*types.MsgFundBountyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	depositer, err := sdk.AccAddressFromBech32(msg.Depositer)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer")
	}
	total, err := m.keeper.FundBounty(ctx, depositer, msg.BountyID, msg.Amount)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Depositer)
	return &types.MsgFundBountyResponse{TotalFundsReserved: total}, nil
}

func (m msgServer) SubmitMilestone(goCtx context.Context, msg *types.MsgSubmitMilestone) (*types.MsgSubmitMilestoneResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	submitter, err := sdk.AccAddressFromBech32(msg.Submitter)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submitter")
	}
	id, err := m.keeper.SubmitMilestone(ctx, msg.BountyID, submitter, msg.AmountRequested, msg.ContentHash)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Submitter)
	return &types.MsgSubmitMilestoneResponse{SubmissionID: id}, nil
}

func (m msgServer) ReviewSubmission(goCtx context.Context, msg *types.MsgReviewSubmission) (*types.MsgReviewSubmissionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller")
	}
	proposalID, err := m.keeper.ReviewSubmission(ctx, caller, msg.SubmissionID, msg.Expiry)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Caller)
	return &types.MsgReviewSubmissionResponse{ProposalID: proposalID}, nil
}

func (m msgServer) ApproveSubmission(goCtx context.Context, msg *types.MsgApproveSubmission) (*types.MsgApproveSubmissionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller")
	}
	if err := m.keeper.ApproveSubmission(ctx, caller, msg.SubmissionID); err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Caller)
	return &types.MsgApproveSubmissionResponse{}, nil
}

func (m msgServer) RejectSubmission(goCtx context.Context, msg *types.MsgRejectSubmission) (*types.MsgRejectSubmissionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller")
	}
	if err := m.keeper.RejectSubmission(ctx, caller, msg.SubmissionID); err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Caller)
	return &types.MsgRejectSubmissionResponse{}, nil
}

func (m msgServer) CancelBounty(goCtx context.Context, msg *types.MsgCancelBounty) (*types.MsgCancelBountyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller")
	}
	refunded, err := m.keeper.CancelBounty(ctx, caller, msg.BountyID)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Caller)
	return &types.MsgCancelBountyResponse{Refunded: refunded}, nil
}

func emitMessageEvent(ctx sdk.Context, sender string) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, sender),
	))
}
