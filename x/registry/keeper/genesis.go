package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/registry/types"
)

// InitGenesis restores the last issued id of every sequence
func (k Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	for _, s := range gs.Sequences {
		k.setLastID(ctx, s.Kind, s.LastID)
	}
}

// ExportGenesis dumps all sequences that were used at least once
func (k Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	var gs types.GenesisState
	for _, kind := range types.AllKinds() {
		if last := k.lastID(ctx, kind); last != 0 {
			gs.Sequences = append(gs.Sequences, types.Sequence{Kind: kind, LastID: last})
		}
	}
	return gs
}
