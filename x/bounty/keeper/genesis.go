package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// InitGenesis restores params, bounties and submissions. The genesis state must be validated
// before. Bounty and submission ids must have been issued by the registry already.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	k.SetParams(ctx, data.Params)
	nextBounty := k.registry.PeekID(ctx, registrytypes.KindBounty)
	for _, b := range data.Bounties {
		if b.ID >= nextBounty {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "bounty %d not issued by registry, next id %d", b.ID, nextBounty)
		}
		k.setBounty(ctx, b)
	}
	nextSubmission := k.registry.PeekID(ctx, registrytypes.KindSubmission)
	for _, s := range data.Submissions {
		if s.ID >= nextSubmission {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "submission %d not issued by registry, next id %d", s.ID, nextSubmission)
		}
		k.setSubmission(ctx, s)
	}
	return nil
}

// ExportGenesis dumps params, all bounties and all submissions
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx)}
	k.IterateBounties(ctx, func(b types.Bounty) bool {
		r.Bounties = append(r.Bounties, b)
		return false
	})
	k.IterateSubmissions(ctx, func(s types.Submission) bool {
		r.Submissions = append(r.Submissions, s)
		return false
	})
	return &r
}
