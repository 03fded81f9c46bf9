package keeper

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/confio/tbounty/x/bounty/types"
)

// Keeper owns bounties and their submissions. Funds are only moved through the escrow keeper.
type Keeper struct {
	cdc          *codec.LegacyAmino
	storeKey     sdk.StoreKey
	paramSpace   paramtypes.Subspace
	registry     types.IDRegistry
	orgKeeper    types.OrgKeeper
	voteKeeper   types.VoteKeeper
	escrowKeeper types.EscrowKeeper
}

// NewKeeper constructor
func NewKeeper(
	cdc *codec.LegacyAmino,
	key sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	registry types.IDRegistry,
	orgKeeper types.OrgKeeper,
	voteKeeper types.VoteKeeper,
	escrowKeeper types.EscrowKeeper,
) Keeper {
	// set KeyTable if it has not already been set
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		cdc:          cdc,
		storeKey:     key,
		paramSpace:   paramSpace,
		registry:     registry,
		orgKeeper:    orgKeeper,
		voteKeeper:   voteKeeper,
		escrowKeeper: escrowKeeper,
	}
}

// GetParams returns the total set of bounty parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

// SetParams sets the total set of bounty parameters.
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// GetBounty returns the bounty with the given id
func (k Keeper) GetBounty(ctx sdk.Context, bountyID uint64) (types.Bounty, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetBountyKey(bountyID))
	if bz == nil {
		return types.Bounty{}, false
	}
	var b types.Bounty
	k.cdc.MustUnmarshal(bz, &b)
	return b, true
}

func (k Keeper) setBounty(ctx sdk.Context, b types.Bounty) {
	ctx.KVStore(k.storeKey).Set(types.GetBountyKey(b.ID), k.cdc.MustMarshal(&b))
}

// IterateBounties iterates all bounties in id order. Return true in the callback to stop.
func (k Keeper) IterateBounties(ctx sdk.Context, cb func(b types.Bounty) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.BountyPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var b types.Bounty
		k.cdc.MustUnmarshal(iter.Value(), &b)
		if cb(b) {
			return
		}
	}
}

// GetSubmission returns the submission with the given id
func (k Keeper) GetSubmission(ctx sdk.Context, submissionID uint64) (types.Submission, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetSubmissionKey(submissionID))
	if bz == nil {
		return types.Submission{}, false
	}
	var s types.Submission
	k.cdc.MustUnmarshal(bz, &s)
	return s, true
}

func (k Keeper) setSubmission(ctx sdk.Context, s types.Submission) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetSubmissionKey(s.ID), k.cdc.MustMarshal(&s))
	store.Set(types.GetBountySubmissionKey(s.BountyID, s.ID), []byte{})
}

// IterateSubmissions iterates all submissions in id order. Return true in the callback to stop.
func (k Keeper) IterateSubmissions(ctx sdk.Context, cb func(s types.Submission) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.SubmissionPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var s types.Submission
		k.cdc.MustUnmarshal(iter.Value(), &s)
		if cb(s) {
			return
		}
	}
}

// IterateBountySubmissions iterates the submissions to one bounty in id order
func (k Keeper) IterateBountySubmissions(ctx sdk.Context, bountyID uint64, cb func(s types.Submission) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetBountySubmissionsPrefix(bountyID))
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		s, ok := k.GetSubmission(ctx, types.ParseBountySubmissionKey(iter.Key()))
		if !ok {
			panic(fmt.Sprintf("submission index of bounty %d points to missing record", bountyID))
		}
		if cb(s) {
			return
		}
	}
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
