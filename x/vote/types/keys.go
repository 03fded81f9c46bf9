package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName is the name of the vote module
	ModuleName = "vote"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the vote module
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the vote module
	RouterKey = ModuleName
)

// nolint
var (
	ProposalPrefix    = []byte{0x01}
	SnapshotPrefix    = []byte{0x02}
	BallotPrefix      = []byte{0x03}
	ExpiryQueuePrefix = []byte{0x04}
)

// GetProposalKey returns the store key of a proposal record
func GetProposalKey(proposalID uint64) []byte {
	return append(append([]byte{}, ProposalPrefix...), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetSnapshotPrefix returns the prefix of the voter snapshot of a proposal
func GetSnapshotPrefix(proposalID uint64) []byte {
	return append(append([]byte{}, SnapshotPrefix...), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetSnapshotKey returns the key of the shares an account held when the proposal was submitted
func GetSnapshotKey(proposalID uint64, addr sdk.AccAddress) []byte {
	return append(GetSnapshotPrefix(proposalID), address.MustLengthPrefix(addr)...)
}

// GetBallotsPrefix returns the prefix of all cast votes of a proposal
func GetBallotsPrefix(proposalID uint64) []byte {
	return append(append([]byte{}, BallotPrefix...), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetBallotKey returns the key of the vote an account cast on a proposal
func GetBallotKey(proposalID uint64, addr sdk.AccAddress) []byte {
	return append(GetBallotsPrefix(proposalID), address.MustLengthPrefix(addr)...)
}

// GetExpiryQueueKey returns the queue key ordered by expiry height then proposal id
func GetExpiryQueueKey(expiry int64, proposalID uint64) []byte {
	return append(GetExpiryQueuePrefix(expiry), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetExpiryQueuePrefix returns the queue prefix of all proposals expiring at a height
func GetExpiryQueuePrefix(expiry int64) []byte {
	return append(append([]byte{}, ExpiryQueuePrefix...), sdk.Uint64ToBigEndian(uint64(expiry))...)
}
