package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName is the name of the bounty module
	ModuleName = "bounty"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the bounty module
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the bounty module
	RouterKey = ModuleName
)

// nolint
var (
	BountyPrefix           = []byte{0x01}
	SubmissionPrefix       = []byte{0x02}
	BountySubmissionPrefix = []byte{0x03}
)

// GetBountyKey returns the store key of a bounty record
func GetBountyKey(bountyID uint64) []byte {
	return append(append([]byte{}, BountyPrefix...), sdk.Uint64ToBigEndian(bountyID)...)
}

// GetSubmissionKey returns the store key of a submission record
func GetSubmissionKey(submissionID uint64) []byte {
	return append(append([]byte{}, SubmissionPrefix...), sdk.Uint64ToBigEndian(submissionID)...)
}

// GetBountySubmissionsPrefix returns the prefix of the submission index of a bounty
func GetBountySubmissionsPrefix(bountyID uint64) []byte {
	return append(append([]byte{}, BountySubmissionPrefix...), sdk.Uint64ToBigEndian(bountyID)...)
}

// GetBountySubmissionKey returns the index key linking a submission to its bounty
func GetBountySubmissionKey(bountyID, submissionID uint64) []byte {
	return append(GetBountySubmissionsPrefix(bountyID), sdk.Uint64ToBigEndian(submissionID)...)
}

// ParseBountySubmissionKey returns the submission id from an index key without bounty prefix
func ParseBountySubmissionKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
