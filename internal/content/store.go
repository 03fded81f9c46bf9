package content

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	dbm "github.com/tendermint/tm-db"

	tbtypes "github.com/confio/tbounty/types"
)

var contentPrefix = []byte{0x01}

// Store keeps content blobs in a tm-db database keyed by their content hash. Writes of the same
// bytes are idempotent.
type Store struct {
	db      dbm.DB
	maxSize int
}

// NewStore constructor. Blobs larger than maxSize bytes are rejected.
func NewStore(db dbm.DB, maxSize int) *Store {
	return &Store{db: db, maxSize: maxSize}
}

// Put stores data and returns its content hash
func (s *Store) Put(data []byte) (tbtypes.ContentHash, error) {
	if len(data) == 0 {
		return tbtypes.ContentHash{}, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "empty content")
	}
	if len(data) > s.maxSize {
		return tbtypes.ContentHash{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "content exceeds max size of %d bytes", s.maxSize)
	}
	h := Sum(data)
	if err := s.db.SetSync(storeKey(h), data); err != nil {
		return tbtypes.ContentHash{}, err
	}
	return h, nil
}

// Get returns the blob stored under h
func (s *Store) Get(h tbtypes.ContentHash) ([]byte, error) {
	bz, err := s.db.Get(storeKey(h))
	switch {
	case err != nil:
		return nil, err
	case bz == nil:
		return nil, sdkerrors.Wrapf(tbtypes.ErrNotFound, "content %s", h)
	}
	return bz, nil
}

// Has returns true when a blob is stored under h
func (s *Store) Has(h tbtypes.ContentHash) (bool, error) {
	return s.db.Has(storeKey(h))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func storeKey(h tbtypes.ContentHash) []byte {
	return append(append([]byte{}, contentPrefix...), h[:]...)
}
