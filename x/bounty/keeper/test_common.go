package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
	escrowkeeper "github.com/confio/tbounty/x/escrow/keeper"
	"github.com/confio/tbounty/x/org"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrykeeper "github.com/confio/tbounty/x/registry/keeper"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	votekeeper "github.com/confio/tbounty/x/vote/keeper"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// TestKeepers are the keepers wired by CreateTestInput
type TestKeepers struct {
	escrowkeeper.TestKeepers
	BountyKeeper   Keeper
	VoteKeeper     votekeeper.Keeper
	OrgKeeper      orgkeeper.Keeper
	RegistryKeeper registrykeeper.Keeper
	// Executor receives passed milestone approval, payout and bounty cancel proposals
	Executor *votekeeper.ExecutorMock
}

// CreateTestInput wires the bounty keeper to real registry, org, vote and escrow keepers on top of
// the escrow test setup. OrgChange proposals execute against the org keeper.
func CreateTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyBounty := sdk.NewKVStoreKey(types.StoreKey)
	keyVote := sdk.NewKVStoreKey(votetypes.StoreKey)
	keyOrg := sdk.NewKVStoreKey(orgtypes.StoreKey)
	keyRegistry := sdk.NewKVStoreKey(registrytypes.StoreKey)

	ctx, escrowKeepers := escrowkeeper.CreateTestInput(t, keyBounty, keyVote, keyOrg, keyRegistry)
	paramsKeeper := escrowKeepers.ParamsKeeper
	paramsKeeper.Subspace(votetypes.ModuleName)
	paramsKeeper.Subspace(types.ModuleName)

	registryKeeper := registrykeeper.NewKeeper(keyRegistry)
	orgKeeper := orgkeeper.NewKeeper(orgtypes.ModuleCdc, keyOrg, registryKeeper, escrowKeepers.BankKeeper)

	executor := &votekeeper.ExecutorMock{}
	router := votetypes.NewRouter()
	router.AddRoute(votetypes.ProposalKindOrgChange, org.NewProposalHandler(orgKeeper)).
		AddRoute(votetypes.ProposalKindMilestoneApproval, executor.Execute).
		AddRoute(votetypes.ProposalKindPayout, executor.Execute).
		AddRoute(votetypes.ProposalKindBountyCancel, executor.Execute)
	router.Seal()

	voteSubsp, _ := paramsKeeper.GetSubspace(votetypes.ModuleName)
	voteKeeper := votekeeper.NewKeeper(votetypes.ModuleCdc, keyVote, voteSubsp, registryKeeper, orgKeeper, router)
	voteKeeper.SetParams(ctx, votetypes.DefaultParams())

	bountySubsp, _ := paramsKeeper.GetSubspace(types.ModuleName)
	k := NewKeeper(types.ModuleCdc, keyBounty, bountySubsp, registryKeeper, orgKeeper, voteKeeper, escrowKeepers.EscrowKeeper)
	k.SetParams(ctx, types.DefaultParams())

	return ctx, TestKeepers{
		TestKeepers:    escrowKeepers,
		BountyKeeper:   k,
		VoteKeeper:     voteKeeper,
		OrgKeeper:      orgKeeper,
		RegistryKeeper: registryKeeper,
		Executor:       executor,
	}
}

// Fund mints coins of the escrow denom to the given account
func Fund(t testing.TB, ctx sdk.Context, keepers TestKeepers, addr sdk.AccAddress, amount int64) {
	t.Helper()
	escrowkeeper.Fund(t, ctx, keepers.TestKeepers, addr, amount)
}

// Balance returns the escrow denom balance of an account
func Balance(ctx sdk.Context, keepers TestKeepers, addr sdk.AccAddress) sdk.Int {
	return escrowkeeper.Balance(ctx, keepers.TestKeepers, addr)
}

// RegisterOrg registers a majority org controlled by the first member
func RegisterOrg(t testing.TB, ctx sdk.Context, keepers TestKeepers, members ...orgtypes.Member) uint64 {
	t.Helper()
	orgID, err := keepers.OrgKeeper.Register(ctx, members[0].Address, members, orgtypes.Majority(), nil, tbtypes.ContentHash{}, 0)
	require.NoError(t, err)
	return orgID
}

// TestContentHash returns a content hash filled with the given byte
func TestContentHash(b byte) tbtypes.ContentHash {
	var h tbtypes.ContentHash
	for i := range h {
		h[i] = b
	}
	return h
}

func RandomAddress(t testing.TB) sdk.AccAddress {
	return escrowkeeper.RandomAddress(t)
}
