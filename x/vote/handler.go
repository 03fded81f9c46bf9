package vote

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/vote/keeper"
	"github.com/confio/tbounty/x/vote/types"
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
		case *types.MsgSubmitProposal:
			res, err := msgServer.SubmitProposal(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgVote:
			res, err := msgServer.Vote(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgCloseExpired:
			res, err := msgServer.CloseExpired(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		case *types.MsgExecuteProposal:
			res, err := msgServer.ExecuteProposal(sdk.WrapSDKContext(ctx), msg)
			return tbtypes.WrapResult(ctx, types.ModuleCdc, res, err)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
	})
}
