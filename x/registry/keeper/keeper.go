package keeper

import (
	"encoding/binary"
	"fmt"
	"math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/registry/types"
)

// Keeper issues strictly increasing identifiers, one sequence per kind.
type Keeper struct {
	storeKey sdk.StoreKey
}

func NewKeeper(key sdk.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// NextID returns the next id of the given kind and persists it as issued. Ids start at 1 and
// are never reused. Exhausting the numeric space is an error, never a wrap around.
func (k Keeper) NextID(ctx sdk.Context, kind types.IDKind) (uint64, error) {
	if !kind.Valid() {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "id kind %q", kind)
	}
	last := k.lastID(ctx, kind)
	if last == math.MaxUint64 {
		return 0, sdkerrors.Wrapf(tbtypes.ErrOverflow, "kind %q", kind)
	}
	next := last + 1
	k.setLastID(ctx, kind, next)
	return next, nil
}

// PeekID returns the id that the next call to NextID would issue without consuming it.
func (k Keeper) PeekID(ctx sdk.Context, kind types.IDKind) uint64 {
	return k.lastID(ctx, kind) + 1
}

func (k Keeper) lastID(ctx sdk.Context, kind types.IDKind) uint64 {
	bz := ctx.KVStore(k.storeKey).Get(types.SequenceKey(kind))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setLastID(ctx sdk.Context, kind types.IDKind, id uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	ctx.KVStore(k.storeKey).Set(types.SequenceKey(kind), bz)
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
