package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
)

// ApplyMembershipChange applies signed share deltas to an organization. It is only reached
// through the execution of a passed OrgChange proposal. Deltas for the same account are applied
// in order. Nothing is written when any member would go negative or the total would reach zero.
func (k Keeper) ApplyMembershipChange(ctx sdk.Context, orgID uint64, changes []types.ShareDelta) error {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if err := types.ValidateShareDeltas(changes); err != nil {
		return err
	}

	// compute the new table in memory first, touched accounts in first-seen order
	var order []sdk.AccAddress
	next := make(map[string]sdk.Int, len(changes))
	total := sdk.NewIntFromBigInt(org.TotalShares.BigInt())
	for _, c := range changes {
		key := c.Address.String()
		cur, ok := next[key]
		if !ok {
			cur = sdk.NewIntFromBigInt(k.SharesOf(ctx, orgID, c.Address).BigInt())
			order = append(order, c.Address)
		}
		cur = cur.Add(c.Delta)
		if cur.IsNegative() {
			return sdkerrors.Wrapf(tbtypes.ErrUnderflow, "member %s", c.Address)
		}
		next[key] = cur
		total = total.Add(c.Delta)
	}
	if !total.IsPositive() {
		return sdkerrors.Wrap(tbtypes.ErrUnderflow, "total shares would reach zero")
	}

	for _, addr := range order {
		k.setShares(ctx, orgID, addr, sdk.NewUintFromBigInt(next[addr.String()].BigInt()))
	}
	org.TotalShares = sdk.NewUintFromBigInt(total.BigInt())
	k.setOrganization(ctx, org)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMembershipChange,
		sdk.NewAttribute(types.AttributeKeyOrgID, fmt.Sprintf("%d", orgID)),
		sdk.NewAttribute(types.AttributeKeyTotalShares, org.TotalShares.String()),
		sdk.NewAttribute(types.AttributeKeyMembers, fmt.Sprintf("%d", len(order))),
	))
	ModuleLogger(ctx).Info("membership changed", "org_id", orgID, "accounts", len(order), "total_shares", org.TotalShares.String())
	return nil
}

// SetThresholdPolicy replaces the vote policy of an organization. Proposals already open keep
// the policy they were submitted with.
func (k Keeper) SetThresholdPolicy(ctx sdk.Context, orgID uint64, policy types.ThresholdPolicy) error {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if err := policy.ValidateBasic(); err != nil {
		return err
	}
	org.Policy = policy
	k.setOrganization(ctx, org)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePolicyChange,
		sdk.NewAttribute(types.AttributeKeyOrgID, fmt.Sprintf("%d", orgID)),
		sdk.NewAttribute(types.AttributeKeyPolicy, policy.String()),
	))
	return nil
}

// Deactivate marks an organization inactive on behalf of its sudo account
func (k Keeper) Deactivate(ctx sdk.Context, caller sdk.AccAddress, orgID uint64) error {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !org.HasSudo() || !org.Sudo.Equals(caller) {
		return sdkerrors.Wrap(tbtypes.ErrUnauthorized, "only the sudo account can deactivate")
	}
	return k.deactivate(ctx, org)
}

// DeactivateByProposal marks an organization inactive after a passed proposal
func (k Keeper) DeactivateByProposal(ctx sdk.Context, orgID uint64) error {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	return k.deactivate(ctx, org)
}

func (k Keeper) deactivate(ctx sdk.Context, org types.Organization) error {
	if !org.Active {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d already inactive", org.ID)
	}
	org.Active = false
	k.setOrganization(ctx, org)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDeactivateOrg,
		sdk.NewAttribute(types.AttributeKeyOrgID, fmt.Sprintf("%d", org.ID)),
	))
	ModuleLogger(ctx).Info("organization deactivated", "org_id", org.ID)
	return nil
}
