package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/escrow/types"
)

// InitGenesis restores params, entries and counters. The module account is created when
// missing; its balance comes with the bank genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) {
	k.SetParams(ctx, data.Params)
	k.accountKeeper.GetModuleAccount(ctx, types.ModuleName)
	for _, e := range data.Entries {
		k.setEntry(ctx, e)
	}
	k.setTotals(ctx, data.Totals)
}

// ExportGenesis dumps params, all entries and the counters
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx), Totals: k.Totals(ctx)}
	k.IterateEntries(ctx, func(e types.Entry) bool {
		r.Entries = append(r.Entries, e)
		return false
	})
	return &r
}
