package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

// Entry is the reservation held for one bounty
type Entry struct {
	BountyID  uint64         `json:"bounty_id" yaml:"bounty_id"`
	Depositer sdk.AccAddress `json:"depositer" yaml:"depositer"`
	Reserved  sdk.Int        `json:"reserved" yaml:"reserved"`
}

func (e Entry) String() string {
	out, _ := yaml.Marshal(e)
	return string(out)
}

// ValidateBasic checks the entry is well formed
func (e Entry) ValidateBasic() error {
	if e.BountyID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
	}
	if err := sdk.VerifyAddressFormat(e.Depositer); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer")
	}
	if e.Reserved.IsNil() || e.Reserved.IsNegative() {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "reserved")
	}
	return nil
}

// Totals are the module wide counters of funds that went into and out of escrow.
// ReservedIn always equals the sum of all entries plus Released plus Refunded.
type Totals struct {
	ReservedIn sdk.Int `json:"reserved_in" yaml:"reserved_in"`
	Released   sdk.Int `json:"released" yaml:"released"`
	Refunded   sdk.Int `json:"refunded" yaml:"refunded"`
}

// ZeroTotals is the state before the first reservation
func ZeroTotals() Totals {
	return Totals{ReservedIn: sdk.ZeroInt(), Released: sdk.ZeroInt(), Refunded: sdk.ZeroInt()}
}

// Outstanding returns the amount that must still be held by the module account
func (t Totals) Outstanding() sdk.Int {
	return t.ReservedIn.Sub(t.Released).Sub(t.Refunded)
}

func (t Totals) String() string {
	out, _ := yaml.Marshal(t)
	return string(out)
}

// ValidateBasic checks no counter is negative and more was reserved than paid out
func (t Totals) ValidateBasic() error {
	for _, v := range []sdk.Int{t.ReservedIn, t.Released, t.Refunded} {
		if v.IsNil() || v.IsNegative() {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "negative or empty counter")
		}
	}
	if t.Outstanding().IsNegative() {
		return sdkerrors.Wrap(tbtypes.ErrUnderflow, "paid out more than reserved")
	}
	return nil
}
