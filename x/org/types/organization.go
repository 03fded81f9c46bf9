package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

// Organization is a group of accounts voting with shares. The share table is stored beside
// the record, one entry per member, and always sums up to TotalShares.
type Organization struct {
	ID           uint64              `json:"id" yaml:"id"`
	Controller   sdk.AccAddress      `json:"controller" yaml:"controller"`
	Sudo         sdk.AccAddress      `json:"sudo,omitempty" yaml:"sudo"`
	Policy       ThresholdPolicy     `json:"policy" yaml:"policy"`
	TotalShares  sdk.Uint            `json:"total_shares" yaml:"total_shares"`
	Active       bool                `json:"active" yaml:"active"`
	Constitution tbtypes.ContentHash `json:"constitution" yaml:"constitution"`
	Parent       uint64              `json:"parent,omitempty" yaml:"parent"`
}

func (o Organization) String() string {
	out, _ := yaml.Marshal(o)
	return string(out)
}

// HasSudo returns true when the organization was registered with a sudo account
func (o Organization) HasSudo() bool {
	return !o.Sudo.Empty()
}

// Member is one entry of an organization's share table
type Member struct {
	Address sdk.AccAddress `json:"address" yaml:"address"`
	Shares  sdk.Uint       `json:"shares" yaml:"shares"`
}

func NewMember(addr sdk.AccAddress, shares uint64) Member {
	return Member{Address: addr, Shares: sdk.NewUint(shares)}
}

// ValidateMembers checks a founding member set: not empty, no duplicate account, no zero share
// amount. Returns the share total.
func ValidateMembers(members []Member) (sdk.Uint, error) {
	total := sdk.ZeroUint()
	if len(members) == 0 {
		return total, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "no members")
	}
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if err := sdk.VerifyAddressFormat(m.Address); err != nil {
			return total, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "member %d address: %s", i, err)
		}
		if _, ok := seen[m.Address.String()]; ok {
			return total, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "duplicate member %s", m.Address)
		}
		seen[m.Address.String()] = struct{}{}
		if !tbtypes.IsPositiveUint(m.Shares) {
			return total, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "member %s: zero shares", m.Address)
		}
		total = total.Add(m.Shares)
	}
	return total, nil
}

// ShareDelta is a signed change to one member's shares
type ShareDelta struct {
	Address sdk.AccAddress `json:"address" yaml:"address"`
	Delta   sdk.Int        `json:"delta" yaml:"delta"`
}

func NewShareDelta(addr sdk.AccAddress, delta int64) ShareDelta {
	return ShareDelta{Address: addr, Delta: sdk.NewInt(delta)}
}

// ValidateShareDeltas checks a change set is not empty, has valid addresses and no zero deltas
func ValidateShareDeltas(changes []ShareDelta) error {
	if len(changes) == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "no share changes")
	}
	for i, c := range changes {
		if err := sdk.VerifyAddressFormat(c.Address); err != nil {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "change %d address: %s", i, err)
		}
		if c.Delta.IsNil() || c.Delta.IsZero() {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "change %d: zero delta", i)
		}
	}
	return nil
}
