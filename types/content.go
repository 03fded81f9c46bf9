package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ContentHashLength is the size of a content digest in bytes.
const ContentHashLength = 32

// ContentHash references off-ledger content by its digest. The ledger never looks inside.
type ContentHash [ContentHashLength]byte

// ParseContentHash decodes a hex encoded digest.
func ParseContentHash(s string) (ContentHash, error) {
	var h ContentHash
	bz, err := hex.DecodeString(s)
	if err != nil {
		return h, sdkerrors.Wrap(ErrInvalidInput, "content hash: not hex")
	}
	if len(bz) != ContentHashLength {
		return h, sdkerrors.Wrapf(ErrInvalidInput, "content hash: expected %d bytes, got %d", ContentHashLength, len(bz))
	}
	copy(h[:], bz)
	return h, nil
}

// MustParseContentHash is ParseContentHash for fixtures and constants.
func MustParseContentHash(s string) ContentHash {
	h, err := ParseContentHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h ContentHash) Empty() bool {
	return h == ContentHash{}
}

func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h ContentHash) Equal(o ContentHash) bool {
	return h == o
}

func (h ContentHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *ContentHash) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	if s == "" {
		*h = ContentHash{}
		return nil
	}
	parsed, err := ParseContentHash(s)
	if err != nil {
		return fmt.Errorf("content hash %q: %w", s, err)
	}
	*h = parsed
	return nil
}
