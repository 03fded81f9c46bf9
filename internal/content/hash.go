package content

import (
	"github.com/zeebo/blake3"

	tbtypes "github.com/confio/tbounty/types"
)

// domainKey separates content digests from any other BLAKE3 use. The bytes are the ASCII
// domain name, zero padded to 32 bytes.
var domainKey = [32]byte{
	't', 'b', 'o', 'u', 'n', 't', 'y', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
}

// Sum returns the content hash of data: the BLAKE3 keyed digest under the content domain key
func Sum(data []byte) tbtypes.ContentHash {
	hasher, err := blake3.NewKeyed(domainKey[:])
	if err != nil {
		panic("content: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	var h tbtypes.ContentHash
	copy(h[:], hasher.Sum(nil))
	return h
}

// Verify returns true when data hashes to h
func Verify(h tbtypes.ContentHash, data []byte) bool {
	return Sum(data) == h
}
