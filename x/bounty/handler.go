package bounty

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/keeper"
	"github.com/confio/tbounty/x/bounty/types"
)

// NewHandler constructor
func NewHandler(k keeper.Keeper) sdk.Handler {
	return newHandler(keeper.NewMsgServerImpl(k))
}

// internal constructor for testing
func newHandler(msgServer types.MsgServer) sdk.Handler {
	return tbtypes.AtomicHandler(func(ctx sdk.Context, msg sdk.Msg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())

		switch msg := msg.(type) {
		case *types.MsgPostBounty:
			res, err := msgServer.PostBounty(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgFundBounty:
			res, err := msgServer.FundBounty(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgSubmitMilestone:
			res, err := msgServer.SubmitMilestone(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgReviewSubmission:
			res, err := msgServer.ReviewSubmission(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgApproveSubmission:
			res, err := msgServer.ApproveSubmission(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgRejectSubmission:
			res, err := msgServer.RejectSubmission(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgCancelBounty:
			res, err := msgServer.CancelBounty(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
	})
}
