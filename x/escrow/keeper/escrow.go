package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/escrow/types"
)

// Reserve moves funds from the depositer onto the bounty's reservation. The first reservation
// records the depositer, later ones must come from the same account. Nothing moves when the
// spendable balance is short.
func (k Keeper) Reserve(ctx sdk.Context, bountyID uint64, from sdk.AccAddress, amount sdk.Int) error {
	if bountyID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
	}
	if !tbtypes.IsPositiveInt(amount) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount must be positive")
	}
	if err := sdk.VerifyAddressFormat(from); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer")
	}
	e, exists := k.GetEntry(ctx, bountyID)
	switch {
	case !exists:
		e = types.Entry{BountyID: bountyID, Depositer: from, Reserved: sdk.ZeroInt()}
	case !e.Depositer.Equals(from):
		return sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is funded by %s", bountyID, e.Depositer)
	}

	denom := k.Denom(ctx)
	if spendable := k.bankKeeper.SpendableCoins(ctx, from).AmountOf(denom); spendable.LT(amount) {
		return sdkerrors.Wrapf(tbtypes.ErrInsufficientFunds, "spendable %s%s, required %s%s", spendable, denom, amount, denom)
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInsufficientFunds, err.Error())
	}

	e.Reserved = e.Reserved.Add(amount)
	k.setEntry(ctx, e)
	totals := k.Totals(ctx)
	totals.ReservedIn = totals.ReservedIn.Add(amount)
	k.setTotals(ctx, totals)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReserve,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bountyID, 10)),
		sdk.NewAttribute(types.AttributeKeyDepositer, from.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyReserved, e.Reserved.String()),
	))
	return nil
}

// ReleaseTo pays part of a bounty's reservation out to a recipient
func (k Keeper) ReleaseTo(ctx sdk.Context, bountyID uint64, recipient sdk.AccAddress, amount sdk.Int) error {
	if !tbtypes.IsPositiveInt(amount) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount must be positive")
	}
	if err := sdk.VerifyAddressFormat(recipient); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "recipient")
	}
	e, ok := k.GetEntry(ctx, bountyID)
	if !ok {
		return sdkerrors.Wrapf(tbtypes.ErrNotFound, "escrow of bounty %d", bountyID)
	}
	if amount.GT(e.Reserved) {
		return sdkerrors.Wrapf(tbtypes.ErrInsufficientReserve, "reserved %s, requested %s", e.Reserved, amount)
	}
	if err := k.payOut(ctx, recipient, amount); err != nil {
		return err
	}

	e.Reserved = e.Reserved.Sub(amount)
	k.setEntry(ctx, e)
	totals := k.Totals(ctx)
	totals.Released = totals.Released.Add(amount)
	k.setTotals(ctx, totals)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRelease,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bountyID, 10)),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyReserved, e.Reserved.String()),
	))
	return nil
}

// RefundRemainder returns everything still reserved for a bounty to its depositer. The entry
// is kept with a zero balance. Returns the refunded amount.
func (k Keeper) RefundRemainder(ctx sdk.Context, bountyID uint64) (sdk.Int, error) {
	e, ok := k.GetEntry(ctx, bountyID)
	if !ok {
		return sdk.ZeroInt(), sdkerrors.Wrapf(tbtypes.ErrNotFound, "escrow of bounty %d", bountyID)
	}
	amount := e.Reserved
	if amount.IsZero() {
		return amount, nil
	}
	if err := k.payOut(ctx, e.Depositer, amount); err != nil {
		return sdk.ZeroInt(), err
	}

	e.Reserved = sdk.ZeroInt()
	k.setEntry(ctx, e)
	totals := k.Totals(ctx)
	totals.Refunded = totals.Refunded.Add(amount)
	k.setTotals(ctx, totals)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRefund,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bountyID, 10)),
		sdk.NewAttribute(types.AttributeKeyRecipient, e.Depositer.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return amount, nil
}

func (k Keeper) payOut(ctx sdk.Context, to sdk.AccAddress, amount sdk.Int) error {
	coins := sdk.NewCoins(sdk.NewCoin(k.Denom(ctx), amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, coins); err != nil {
		// module account holds less than the entries claim
		return sdkerrors.Wrap(tbtypes.ErrInsufficientReserve, err.Error())
	}
	return nil
}
