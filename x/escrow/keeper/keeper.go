package keeper

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/confio/tbounty/x/escrow/types"
)

// Keeper holds one reservation entry per bounty. The funds sit on the escrow module account.
type Keeper struct {
	cdc           *codec.LegacyAmino
	storeKey      sdk.StoreKey
	paramSpace    paramtypes.Subspace
	accountKeeper types.AccountKeeper
	bankKeeper    types.BankKeeper
}

// NewKeeper constructor
func NewKeeper(
	cdc *codec.LegacyAmino,
	key sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
) Keeper {
	if addr := accountKeeper.GetModuleAddress(types.ModuleName); addr == nil {
		panic(fmt.Sprintf("%s module account has not been set", types.ModuleName))
	}
	// set KeyTable if it has not already been set
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		cdc:           cdc,
		storeKey:      key,
		paramSpace:    paramSpace,
		accountKeeper: accountKeeper,
		bankKeeper:    bankKeeper,
	}
}

// GetParams returns the total set of escrow parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

// SetParams sets the total set of escrow parameters.
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// Denom returns the coin denomination bounties are funded with
func (k Keeper) Denom(ctx sdk.Context) string {
	return k.GetParams(ctx).Denom
}

// ModuleAddress returns the account holding all reserved funds
func (k Keeper) ModuleAddress() sdk.AccAddress {
	return k.accountKeeper.GetModuleAddress(types.ModuleName)
}

// GetEntry returns the reservation of a bounty
func (k Keeper) GetEntry(ctx sdk.Context, bountyID uint64) (types.Entry, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetEntryKey(bountyID))
	if bz == nil {
		return types.Entry{}, false
	}
	var e types.Entry
	k.cdc.MustUnmarshal(bz, &e)
	return e, true
}

func (k Keeper) setEntry(ctx sdk.Context, e types.Entry) {
	ctx.KVStore(k.storeKey).Set(types.GetEntryKey(e.BountyID), k.cdc.MustMarshal(&e))
}

// ReservedBalance returns the funds still held for a bounty, zero for unknown bounties
func (k Keeper) ReservedBalance(ctx sdk.Context, bountyID uint64) sdk.Int {
	e, ok := k.GetEntry(ctx, bountyID)
	if !ok {
		return sdk.ZeroInt()
	}
	return e.Reserved
}

// IterateEntries iterates all entries in bounty id order. Return true in the callback to stop.
func (k Keeper) IterateEntries(ctx sdk.Context, cb func(e types.Entry) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.EntryPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var e types.Entry
		k.cdc.MustUnmarshal(iter.Value(), &e)
		if cb(e) {
			return
		}
	}
}

// Totals returns the module wide conservation counters
func (k Keeper) Totals(ctx sdk.Context) types.Totals {
	bz := ctx.KVStore(k.storeKey).Get(types.TotalsKey)
	if bz == nil {
		return types.ZeroTotals()
	}
	var t types.Totals
	k.cdc.MustUnmarshal(bz, &t)
	return t
}

func (k Keeper) setTotals(ctx sdk.Context, t types.Totals) {
	ctx.KVStore(k.storeKey).Set(types.TotalsKey, k.cdc.MustMarshal(&t))
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
