package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/vote/types"
)

type msgServer struct {
	keeper Keeper
}

// NewMsgServerImpl returns an implementation of the vote MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{keeper: k}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) SubmitProposal(goCtx context.Context, msg *types.MsgSubmitProposal) (*types.MsgSubmitProposalResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	proposer, err := sdk.AccAddressFromBech32(msg.Proposer)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposer")
	}
	id, err := m.keeper.SubmitProposal(ctx, proposer, msg.OrgID, msg.Payload.Kind(), msg.Payload, msg.Expiry)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Proposer)
	return &types.MsgSubmitProposalResponse{ProposalID: id}, nil
}

func (m msgServer) Vote(goCtx context.Context, msg *types.MsgVote) (*types.MsgVoteResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	voter, err := sdk.AccAddressFromBech32(msg.Voter)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "voter")
	}
	var res types.VoteResult
	if msg.Abstain {
		res, err = m.keeper.Abstain(ctx, msg.ProposalID, voter)
	} else {
		res, err = m.keeper.CastVote(ctx, msg.ProposalID, voter, msg.Support)
	}
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Voter)
	return &types.MsgVoteResponse{Result: res}, nil
}

func (m msgServer) CloseExpired(goCtx context.Context, msg *types.MsgCloseExpired) (*types.MsgCloseExpiredResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	res, err := m.keeper.CloseExpired(ctx, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Sender)
	return &types.MsgCloseExpiredResponse{Result: res}, nil
}

func (m msgServer) ExecuteProposal(goCtx context.Context, msg *types.MsgExecuteProposal) (*types.MsgExecuteProposalResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := m.keeper.Execute(ctx, msg.ProposalID); err != nil {
		return nil, err
	}
	emitMessageEvent(ctx, msg.Sender)
	return &types.MsgExecuteProposalResponse{}, nil
}

func emitMessageEvent(ctx sdk.Context, sender string) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, sender),
	))
}
