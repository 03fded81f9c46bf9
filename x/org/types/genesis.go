package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// GenesisOrganization is an organization with its share table
type GenesisOrganization struct {
	Organization Organization `json:"organization"`
	Members      []Member     `json:"members"`
}

// GenesisState is the org module genesis
type GenesisState struct {
	Organizations []GenesisOrganization `json:"organizations"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{}
}

// ValidateGenesis checks every organization is well formed and its share table adds up
func ValidateGenesis(gs GenesisState) error {
	seen := make(map[uint64]struct{}, len(gs.Organizations))
	for _, g := range gs.Organizations {
		o := g.Organization
		if o.ID == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "org id must not be zero")
		}
		if _, ok := seen[o.ID]; ok {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate org %d", o.ID)
		}
		seen[o.ID] = struct{}{}
		if err := o.Policy.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "org %d", o.ID)
		}
		total, err := ValidateMembers(g.Members)
		if err != nil {
			return sdkerrors.Wrapf(err, "org %d", o.ID)
		}
		if tbtypes.IsNilUint(o.TotalShares) || !total.Equal(o.TotalShares) {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d: share table sums to %s, total is %s", o.ID, total, o.TotalShares)
		}
	}
	return nil
}
