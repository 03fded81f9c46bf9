package keeper

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/vote/types"
)

// Keeper stores proposals with their voter snapshots and ballots
type Keeper struct {
	cdc        *codec.LegacyAmino
	storeKey   sdk.StoreKey
	paramSpace paramtypes.Subspace
	registry   types.IDRegistry
	orgKeeper  types.OrgKeeper
	router     types.Router
}

// NewKeeper constructor. Executors can be added to the router until it is sealed.
func NewKeeper(
	cdc *codec.LegacyAmino,
	key sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	registry types.IDRegistry,
	orgKeeper types.OrgKeeper,
	router types.Router,
) Keeper {
	// set KeyTable if it has not already been set
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		cdc:        cdc,
		storeKey:   key,
		paramSpace: paramSpace,
		registry:   registry,
		orgKeeper:  orgKeeper,
		router:     router,
	}
}

// Router returns the executor router
func (k Keeper) Router() types.Router {
	return k.router
}

// GetParams returns the total set of vote parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

// SetParams sets the total set of vote parameters.
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// GetProposal loads a proposal
func (k Keeper) GetProposal(ctx sdk.Context, proposalID uint64) (types.Proposal, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetProposalKey(proposalID))
	if bz == nil {
		return types.Proposal{}, false
	}
	var p types.Proposal
	k.cdc.MustUnmarshal(bz, &p)
	return p, true
}

func (k Keeper) setProposal(ctx sdk.Context, p types.Proposal) {
	ctx.KVStore(k.storeKey).Set(types.GetProposalKey(p.ID), k.cdc.MustMarshal(&p))
}

// IterateProposals visits all proposals by id
func (k Keeper) IterateProposals(ctx sdk.Context, cb func(p types.Proposal) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.ProposalPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var p types.Proposal
		k.cdc.MustUnmarshal(iter.Value(), &p)
		if cb(p) {
			return
		}
	}
}

// SnapshotSharesOf returns the shares an account held when the proposal was submitted
func (k Keeper) SnapshotSharesOf(ctx sdk.Context, proposalID uint64, addr sdk.AccAddress) sdk.Uint {
	bz := ctx.KVStore(k.storeKey).Get(types.GetSnapshotKey(proposalID, addr))
	if bz == nil {
		return sdk.ZeroUint()
	}
	var shares sdk.Uint
	k.cdc.MustUnmarshal(bz, &shares)
	return shares
}

func (k Keeper) setSnapshotShares(ctx sdk.Context, proposalID uint64, addr sdk.AccAddress, shares sdk.Uint) {
	ctx.KVStore(k.storeKey).Set(types.GetSnapshotKey(proposalID, addr), k.cdc.MustMarshal(&shares))
}

// IterateSnapshot visits the voter snapshot of a proposal
func (k Keeper) IterateSnapshot(ctx sdk.Context, proposalID uint64, cb func(m orgtypes.Member) bool) {
	pStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetSnapshotPrefix(proposalID))
	iter := pStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var shares sdk.Uint
		k.cdc.MustUnmarshal(iter.Value(), &shares)
		if cb(orgtypes.Member{Address: sdk.AccAddress(iter.Key()[1:]), Shares: shares}) {
			return
		}
	}
}

// GetBallot returns the vote an account cast on a proposal
func (k Keeper) GetBallot(ctx sdk.Context, proposalID uint64, addr sdk.AccAddress) (types.Ballot, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetBallotKey(proposalID, addr))
	if bz == nil {
		return types.Ballot{}, false
	}
	var b types.Ballot
	k.cdc.MustUnmarshal(bz, &b)
	return b, true
}

func (k Keeper) setBallot(ctx sdk.Context, proposalID uint64, b types.Ballot) {
	ctx.KVStore(k.storeKey).Set(types.GetBallotKey(proposalID, b.Voter), k.cdc.MustMarshal(&b))
}

// IterateBallots visits all votes cast on a proposal
func (k Keeper) IterateBallots(ctx sdk.Context, proposalID uint64, cb func(b types.Ballot) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.GetBallotsPrefix(proposalID))
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var b types.Ballot
		k.cdc.MustUnmarshal(iter.Value(), &b)
		if cb(b) {
			return
		}
	}
}

func (k Keeper) insertExpiryQueue(ctx sdk.Context, expiry int64, proposalID uint64) {
	ctx.KVStore(k.storeKey).Set(types.GetExpiryQueueKey(expiry, proposalID), []byte{})
}

func (k Keeper) removeExpiryQueue(ctx sdk.Context, expiry int64, proposalID uint64) {
	ctx.KVStore(k.storeKey).Delete(types.GetExpiryQueueKey(expiry, proposalID))
}

type queueEntry struct {
	expiry     int64
	proposalID uint64
}

// expiredQueueEntries returns the queued proposals with an expiry height not after the given one
func (k Keeper) expiredQueueEntries(ctx sdk.Context, height int64) []queueEntry {
	store := ctx.KVStore(k.storeKey)
	iter := store.Iterator(types.ExpiryQueuePrefix, types.GetExpiryQueuePrefix(height+1))
	defer iter.Close()
	var r []queueEntry
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()[len(types.ExpiryQueuePrefix):]
		r = append(r, queueEntry{
			expiry:     int64(sdk.BigEndianToUint64(key[:8])),
			proposalID: sdk.BigEndianToUint64(key[8:]),
		})
	}
	return r
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
