package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	"github.com/confio/tbounty/x/vote/types"
)

// InitGenesis restores params and proposals. Open proposals are queued for expiry again.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	k.SetParams(ctx, data.Params)
	next := k.registry.PeekID(ctx, registrytypes.KindProposal)
	for _, g := range data.Proposals {
		p := g.Proposal
		if p.ID >= next {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d not issued by registry, next id %d", p.ID, next)
		}
		k.setProposal(ctx, p)
		for _, m := range g.Snapshot {
			k.setSnapshotShares(ctx, p.ID, m.Address, m.Shares)
		}
		for _, b := range g.Ballots {
			k.setBallot(ctx, p.ID, b)
		}
		if p.IsOpen() {
			k.insertExpiryQueue(ctx, p.Expiry, p.ID)
		}
	}
	return nil
}

// ExportGenesis dumps params and all proposals with snapshots and ballots
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx)}
	k.IterateProposals(ctx, func(p types.Proposal) bool {
		g := types.GenesisProposal{Proposal: p}
		k.IterateSnapshot(ctx, p.ID, func(m orgtypes.Member) bool {
			g.Snapshot = append(g.Snapshot, m)
			return false
		})
		k.IterateBallots(ctx, p.ID, func(b types.Ballot) bool {
			g.Ballots = append(g.Ballots, b)
			return false
		})
		r.Proposals = append(r.Proposals, g)
		return false
	})
	return &r
}
