package types

const (
	// ModuleName is the name of the identifier registry module
	ModuleName = "registry"

	// StoreKey is the string store representation
	StoreKey = ModuleName
)

// nolint
var (
	SequencePrefix = []byte{0x01}
)

// IDKind names an independent identifier sequence.
type IDKind string

const (
	KindOrganization IDKind = "org"
	KindProposal     IDKind = "proposal"
	KindBounty       IDKind = "bounty"
	KindSubmission   IDKind = "submission"
)

// AllKinds returns the sequences known to the ledger, in export order.
func AllKinds() []IDKind {
	return []IDKind{KindOrganization, KindProposal, KindBounty, KindSubmission}
}

func (k IDKind) Valid() bool {
	for _, v := range AllKinds() {
		if k == v {
			return true
		}
	}
	return false
}

// SequenceKey is the store key holding the last issued id of a kind.
func SequenceKey(kind IDKind) []byte {
	return append(append([]byte{}, SequencePrefix...), []byte(kind)...)
}
