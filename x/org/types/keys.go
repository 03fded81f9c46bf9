package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName is the name of the organization module
	ModuleName = "org"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the organization module
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the organization module
	RouterKey = ModuleName
)

// nolint
var (
	OrganizationPrefix = []byte{0x01}
	MemberPrefix       = []byte{0x02}
)

// GetOrganizationKey returns the store key of an organization record
func GetOrganizationKey(orgID uint64) []byte {
	return append(append([]byte{}, OrganizationPrefix...), sdk.Uint64ToBigEndian(orgID)...)
}

// GetMembersPrefix returns the prefix of all share table entries of an organization
func GetMembersPrefix(orgID uint64) []byte {
	return append(append([]byte{}, MemberPrefix...), sdk.Uint64ToBigEndian(orgID)...)
}

// GetMemberKey returns the share table key of an account within an organization
func GetMemberKey(orgID uint64, addr sdk.AccAddress) []byte {
	return append(GetMembersPrefix(orgID), address.MustLengthPrefix(addr)...)
}

// ParseOrganizationKey returns the org id from an organization record key without prefix
func ParseOrganizationKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
