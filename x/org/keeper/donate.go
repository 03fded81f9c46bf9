package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
)

// Donate transfers amount from sender to the members of an organization. A weighted donation
// pays every member floor(amount * shares / total), an equal one floor(amount / members). What
// is left over from rounding goes to the remainder recipient.
func (k Keeper) Donate(
	ctx sdk.Context,
	sender sdk.AccAddress,
	orgID uint64,
	amount sdk.Coin,
	remainderRecipient sdk.AccAddress,
	weighted bool,
) (toMembers sdk.Coin, remainder sdk.Coin, err error) {
	if !amount.IsValid() || !amount.IsPositive() {
		return toMembers, remainder, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount")
	}
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return toMembers, remainder, err
	}
	if !org.Active {
		return toMembers, remainder, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d inactive", orgID)
	}
	if spendable := k.bankKeeper.SpendableCoins(ctx, sender).AmountOf(amount.Denom); spendable.LT(amount.Amount) {
		return toMembers, remainder, sdkerrors.Wrapf(tbtypes.ErrInsufficientFunds, "spendable %s, required %s", spendable, amount)
	}

	members := k.GetMembers(ctx, orgID)
	total := sdk.NewIntFromBigInt(org.TotalShares.BigInt())
	equalShare := amount.Amount.QuoRaw(int64(len(members)))
	paid := sdk.ZeroInt()
	err = tbtypes.Atomic(ctx, func(ctx sdk.Context) error {
		for _, m := range members {
			due := equalShare
			if weighted {
				due = amount.Amount.Mul(sdk.NewIntFromBigInt(m.Shares.BigInt())).Quo(total)
			}
			if !due.IsPositive() {
				continue
			}
			if err := k.bankKeeper.SendCoins(ctx, sender, m.Address, sdk.NewCoins(sdk.NewCoin(amount.Denom, due))); err != nil {
				return sdkerrors.Wrapf(err, "pay member %s", m.Address)
			}
			paid = paid.Add(due)
		}
		if rest := amount.Amount.Sub(paid); rest.IsPositive() {
			return sdkerrors.Wrap(k.bankKeeper.SendCoins(ctx, sender, remainderRecipient, sdk.NewCoins(sdk.NewCoin(amount.Denom, rest))), "pay remainder")
		}
		return nil
	})
	if err != nil {
		return toMembers, remainder, err
	}
	rest := amount.Amount.Sub(paid)
	toMembers, remainder = sdk.NewCoin(amount.Denom, paid), sdk.NewCoin(amount.Denom, rest)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDonate,
		sdk.NewAttribute(types.AttributeKeyOrgID, fmt.Sprintf("%d", orgID)),
		sdk.NewAttribute(sdk.AttributeKeyAmount, toMembers.String()),
		sdk.NewAttribute(types.AttributeKeyRemainder, remainder.String()),
	))
	return toMembers, remainder, nil
}
