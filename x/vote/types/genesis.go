package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
)

// GenesisProposal is a proposal with its voter snapshot and cast ballots
type GenesisProposal struct {
	Proposal Proposal          `json:"proposal"`
	Snapshot []orgtypes.Member `json:"snapshot"`
	Ballots  []Ballot          `json:"ballots,omitempty"`
}

// GenesisState is the vote module genesis
type GenesisState struct {
	Params    Params            `json:"params"`
	Proposals []GenesisProposal `json:"proposals,omitempty"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Params: DefaultParams()}
}

// ValidateGenesis checks params and that every proposal's snapshot and tally add up
func ValidateGenesis(gs GenesisState) error {
	if err := gs.Params.Validate(); err != nil {
		return sdkerrors.Wrap(err, "params")
	}
	seen := make(map[uint64]struct{}, len(gs.Proposals))
	for _, g := range gs.Proposals {
		p := g.Proposal
		if p.ID == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposal id must not be zero")
		}
		if _, ok := seen[p.ID]; ok {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate proposal %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Kind != p.Payload.Kind() {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d: kind does not match payload", p.ID)
		}
		if p.Status < ProposalStatusOpen || p.Status > ProposalStatusFailed {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d: status", p.ID)
		}
		total, err := orgtypes.ValidateMembers(g.Snapshot)
		if err != nil {
			return sdkerrors.Wrapf(err, "proposal %d snapshot", p.ID)
		}
		if tbtypes.IsNilUint(p.TotalSnapshot) || !total.Equal(p.TotalSnapshot) {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d: snapshot does not sum to total", p.ID)
		}
		if tbtypes.IsNilUint(p.YesShares) || tbtypes.IsNilUint(p.NoShares) || p.YesShares.Add(p.NoShares).Add(p.Abstained()).GT(total) {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d: tally exceeds total", p.ID)
		}
	}
	return nil
}
