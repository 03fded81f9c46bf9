package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName is the name of the escrow module. The module account holds all reserved funds.
	ModuleName = "escrow"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the escrow module
	QuerierRoute = ModuleName
)

// nolint
var (
	EntryPrefix = []byte{0x01}
	TotalsKey   = []byte{0x02}
)

// GetEntryKey returns the store key of the escrow entry of a bounty
func GetEntryKey(bountyID uint64) []byte {
	return append(append([]byte{}, EntryPrefix...), sdk.Uint64ToBigEndian(bountyID)...)
}
