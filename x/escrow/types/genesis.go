package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// GenesisState is the escrow module genesis
type GenesisState struct {
	Params  Params  `json:"params"`
	Entries []Entry `json:"entries"`
	Totals  Totals  `json:"totals"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Params: DefaultParams(), Totals: ZeroTotals()}
}

// ValidateGenesis checks the entries are unique and add up with the counters
func ValidateGenesis(gs GenesisState) error {
	if err := gs.Params.Validate(); err != nil {
		return sdkerrors.Wrap(err, "params")
	}
	if err := gs.Totals.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "totals")
	}
	sum := sdk.ZeroInt()
	seen := make(map[uint64]struct{}, len(gs.Entries))
	for _, e := range gs.Entries {
		if err := e.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "entry %d", e.BountyID)
		}
		if _, ok := seen[e.BountyID]; ok {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate entry %d", e.BountyID)
		}
		seen[e.BountyID] = struct{}{}
		sum = sum.Add(e.Reserved)
	}
	if !sum.Equal(gs.Totals.Outstanding()) {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "entries sum to %s, counters to %s", sum, gs.Totals.Outstanding())
	}
	return nil
}
