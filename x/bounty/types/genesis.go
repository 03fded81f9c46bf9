package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// GenesisState is the bounty module genesis
type GenesisState struct {
	Params      Params       `json:"params"`
	Bounties    []Bounty     `json:"bounties"`
	Submissions []Submission `json:"submissions"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Params: DefaultParams()}
}

// ValidateGenesis checks records are unique, well formed and every submission belongs to a
// known bounty with matching counters.
func ValidateGenesis(gs GenesisState) error {
	if err := gs.Params.Validate(); err != nil {
		return sdkerrors.Wrap(err, "params")
	}
	bounties := make(map[uint64]Bounty, len(gs.Bounties))
	for _, b := range gs.Bounties {
		if err := b.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "bounty %d", b.ID)
		}
		if _, ok := bounties[b.ID]; ok {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate bounty %d", b.ID)
		}
		bounties[b.ID] = b
	}
	submitted := make(map[uint64]uint64, len(gs.Bounties))
	underReview := make(map[uint64]uint64, len(gs.Bounties))
	seen := make(map[uint64]struct{}, len(gs.Submissions))
	for _, s := range gs.Submissions {
		if err := s.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "submission %d", s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate submission %d", s.ID)
		}
		seen[s.ID] = struct{}{}
		if _, ok := bounties[s.BountyID]; !ok {
			return sdkerrors.Wrapf(tbtypes.ErrNotFound, "bounty %d of submission %d", s.BountyID, s.ID)
		}
		submitted[s.BountyID]++
		if s.State == SubmissionStateUnderReview {
			underReview[s.BountyID]++
		}
	}
	for id, b := range bounties {
		if b.SubmissionCount != submitted[id] || b.UnderReviewCount != underReview[id] {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "bounty %d: submission counters do not match", id)
		}
	}
	return nil
}
