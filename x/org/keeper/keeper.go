package keeper

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// Keeper owns organizations and their share tables. All mutation goes through its methods.
type Keeper struct {
	cdc        *codec.LegacyAmino
	storeKey   sdk.StoreKey
	registry   types.IDRegistry
	bankKeeper types.BankKeeper
}

func NewKeeper(cdc *codec.LegacyAmino, key sdk.StoreKey, registry types.IDRegistry, bankKeeper types.BankKeeper) Keeper {
	return Keeper{cdc: cdc, storeKey: key, registry: registry, bankKeeper: bankKeeper}
}

// Register creates an organization from an ordered set of founding members. The founders must
// be unique with non zero shares.
func (k Keeper) Register(
	ctx sdk.Context,
	controller sdk.AccAddress,
	founders []types.Member,
	policy types.ThresholdPolicy,
	sudo sdk.AccAddress,
	constitution tbtypes.ContentHash,
	parent uint64,
) (uint64, error) {
	if err := sdk.VerifyAddressFormat(controller); err != nil {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "controller")
	}
	total, err := types.ValidateMembers(founders)
	if err != nil {
		return 0, err
	}
	if err := policy.ValidateBasic(); err != nil {
		return 0, err
	}
	if parent != 0 && !k.HasOrganization(ctx, parent) {
		return 0, sdkerrors.Wrapf(tbtypes.ErrNotFound, "parent org %d", parent)
	}
	id, err := k.registry.NextID(ctx, registrytypes.KindOrganization)
	if err != nil {
		return 0, err
	}
	org := types.Organization{
		ID:           id,
		Controller:   controller,
		Sudo:         sudo,
		Policy:       policy,
		TotalShares:  total,
		Active:       true,
		Constitution: constitution,
		Parent:       parent,
	}
	k.setOrganization(ctx, org)
	for _, m := range founders {
		k.setShares(ctx, id, m.Address, m.Shares)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterOrg,
		sdk.NewAttribute(types.AttributeKeyOrgID, fmt.Sprintf("%d", id)),
		sdk.NewAttribute(types.AttributeKeyController, controller.String()),
		sdk.NewAttribute(types.AttributeKeyTotalShares, total.String()),
		sdk.NewAttribute(types.AttributeKeyMembers, fmt.Sprintf("%d", len(founders))),
	))
	ModuleLogger(ctx).Info("organization registered", "org_id", id, "members", len(founders), "total_shares", total.String())
	return id, nil
}

// HasOrganization returns true when an organization with this id exists, active or not
func (k Keeper) HasOrganization(ctx sdk.Context, orgID uint64) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetOrganizationKey(orgID))
}

// GetOrganization loads an organization record
func (k Keeper) GetOrganization(ctx sdk.Context, orgID uint64) (types.Organization, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetOrganizationKey(orgID))
	if bz == nil {
		return types.Organization{}, false
	}
	var org types.Organization
	k.cdc.MustUnmarshal(bz, &org)
	return org, true
}

func (k Keeper) getOrganization(ctx sdk.Context, orgID uint64) (types.Organization, error) {
	org, ok := k.GetOrganization(ctx, orgID)
	if !ok {
		return org, sdkerrors.Wrapf(tbtypes.ErrNotFound, "org %d", orgID)
	}
	return org, nil
}

func (k Keeper) setOrganization(ctx sdk.Context, org types.Organization) {
	ctx.KVStore(k.storeKey).Set(types.GetOrganizationKey(org.ID), k.cdc.MustMarshal(&org))
}

// SharesOf returns the shares an account holds in an organization, zero for non members
func (k Keeper) SharesOf(ctx sdk.Context, orgID uint64, addr sdk.AccAddress) sdk.Uint {
	bz := ctx.KVStore(k.storeKey).Get(types.GetMemberKey(orgID, addr))
	if bz == nil {
		return sdk.ZeroUint()
	}
	var shares sdk.Uint
	k.cdc.MustUnmarshal(bz, &shares)
	return shares
}

func (k Keeper) setShares(ctx sdk.Context, orgID uint64, addr sdk.AccAddress, shares sdk.Uint) {
	store := ctx.KVStore(k.storeKey)
	if shares.IsZero() {
		store.Delete(types.GetMemberKey(orgID, addr))
		return
	}
	store.Set(types.GetMemberKey(orgID, addr), k.cdc.MustMarshal(&shares))
}

// TotalShares returns the share total of an organization
func (k Keeper) TotalShares(ctx sdk.Context, orgID uint64) (sdk.Uint, error) {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return sdk.ZeroUint(), err
	}
	return org.TotalShares, nil
}

// ThresholdPolicy returns the vote threshold policy of an organization
func (k Keeper) ThresholdPolicy(ctx sdk.Context, orgID uint64) (types.ThresholdPolicy, error) {
	org, err := k.getOrganization(ctx, orgID)
	if err != nil {
		return types.ThresholdPolicy{}, err
	}
	return org.Policy, nil
}

// IsActive returns false for unknown or deactivated organizations
func (k Keeper) IsActive(ctx sdk.Context, orgID uint64) bool {
	org, ok := k.GetOrganization(ctx, orgID)
	return ok && org.Active
}

// IterateMembers visits the share table of an organization in address key order.
// Iteration stops when the callback returns true.
func (k Keeper) IterateMembers(ctx sdk.Context, orgID uint64, cb func(m types.Member) bool) {
	pStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetMembersPrefix(orgID))
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var shares sdk.Uint
		k.cdc.MustUnmarshal(iter.Value(), &shares)
		// key is the length prefixed address
		addr := sdk.AccAddress(iter.Key()[1:])
		if cb(types.Member{Address: addr, Shares: shares}) {
			return
		}
	}
}

// GetMembers returns the full share table of an organization
func (k Keeper) GetMembers(ctx sdk.Context, orgID uint64) []types.Member {
	var r []types.Member
	k.IterateMembers(ctx, orgID, func(m types.Member) bool {
		r = append(r, m)
		return false
	})
	return r
}

// IterateOrganizations visits all organizations by id
func (k Keeper) IterateOrganizations(ctx sdk.Context, cb func(org types.Organization) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.OrganizationPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var org types.Organization
		k.cdc.MustUnmarshal(iter.Value(), &org)
		if cb(org) {
			return
		}
	}
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
