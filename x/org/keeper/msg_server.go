package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
)

type msgServer struct {
	keeper Keeper
}

// NewMsgServerImpl returns an implementation of the org MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{keeper: k}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) RegisterOrg(goCtx context.Context, msg *types.MsgRegisterOrg) (*types.MsgRegisterOrgResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	controller, err := sdk.AccAddressFromBech32(msg.Controller)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "controller")
	}
	var sudo sdk.AccAddress
	if msg.Sudo != "" {
		if sudo, err = sdk.AccAddressFromBech32(msg.Sudo); err != nil {
			return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sudo")
		}
	}
	members, err := msg.GetMembers()
	if err != nil {
		return nil, err
	}
	orgID, err := m.keeper.Register(ctx, controller, members, msg.Policy, sudo, msg.Constitution, msg.Parent)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, msg.Controller),
	))
	return &types.MsgRegisterOrgResponse{OrgID: orgID}, nil
}

func (m msgServer) DeactivateOrg(goCtx context.Context, msg *types.MsgDeactivateOrg) (*types.MsgDeactivateOrgResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	sudo, err := sdk.AccAddressFromBech32(msg.Sudo)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sudo")
	}
	if err := m.keeper.Deactivate(ctx, sudo, msg.OrgID); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, msg.Sudo),
	))
	return &types.MsgDeactivateOrgResponse{}, nil
}

func (m msgServer) Donate(goCtx context.Context, msg *types.MsgDonate) (*types.MsgDonateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sender")
	}
	recipient, err := sdk.AccAddressFromBech32(msg.RemainderRecipient)
	if err != nil {
		return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "remainder recipient")
	}
	toMembers, remainder, err := m.keeper.Donate(ctx, sender, msg.OrgID, msg.Amount, recipient, msg.Weighted)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, msg.Sender),
	))
	return &types.MsgDonateResponse{ToMembers: toMembers, Remainder: remainder}, nil
}
