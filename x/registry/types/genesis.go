package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// Sequence is the last id issued for a kind.
type Sequence struct {
	Kind   IDKind `json:"kind"`
	LastID uint64 `json:"last_id"`
}

// GenesisState is the registry genesis
type GenesisState struct {
	Sequences []Sequence `json:"sequences"`
}

// DefaultGenesisState starts every sequence at zero, so the first id issued is 1.
func DefaultGenesisState() GenesisState {
	return GenesisState{}
}

// ValidateGenesis rejects unknown kinds and duplicates
func ValidateGenesis(gs GenesisState) error {
	seen := make(map[IDKind]struct{}, len(gs.Sequences))
	for i, s := range gs.Sequences {
		if !s.Kind.Valid() {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "sequence %d: unknown kind %q", i, s.Kind)
		}
		if _, ok := seen[s.Kind]; ok {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, fmt.Sprintf("duplicate sequence %q", s.Kind))
		}
		seen[s.Kind] = struct{}{}
	}
	return nil
}
