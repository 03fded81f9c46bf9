package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// IsNilUint returns true for a Uint that was never initialized, for example a field missing
// from a decoded message.
func IsNilUint(u sdk.Uint) bool {
	return u == sdk.Uint{}
}

// IsPositiveUint returns true for an initialized, non zero Uint
func IsPositiveUint(u sdk.Uint) bool {
	return !IsNilUint(u) && !u.IsZero()
}

// IsPositiveInt returns true for an initialized Int greater than zero
func IsPositiveInt(i sdk.Int) bool {
	return !i.IsNil() && i.IsPositive()
}
