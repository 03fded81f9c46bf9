package keeper

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/tbounty/x/org"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrykeeper "github.com/confio/tbounty/x/registry/keeper"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	"github.com/confio/tbounty/x/vote/types"
)

// TestKeepers are the keepers wired by CreateTestInput
type TestKeepers struct {
	VoteKeeper     Keeper
	OrgKeeper      orgkeeper.Keeper
	RegistryKeeper registrykeeper.Keeper
	Executor       *ExecutorMock
}

// CreateTestInput mounts registry, org, vote and params stores on an in-memory db. OrgChange
// proposals execute against the org keeper, all other kinds are recorded by an ExecutorMock.
func CreateTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyVote := sdk.NewKVStoreKey(types.StoreKey)
	keyOrg := sdk.NewKVStoreKey(orgtypes.StoreKey)
	keyRegistry := sdk.NewKVStoreKey(registrytypes.StoreKey)
	keyParams := sdk.NewKVStoreKey(paramstypes.StoreKey)
	tkeyParams := sdk.NewTransientStoreKey(paramstypes.TStoreKey)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyVote, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyOrg, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyRegistry, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyParams, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(tkeyParams, sdk.StoreTypeTransient, db)
	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC),
	}, false, log.NewNopLogger())

	legacyAmino := codec.NewLegacyAmino()
	appCodec := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	paramsKeeper := paramskeeper.NewKeeper(appCodec, legacyAmino, keyParams, tkeyParams)
	paramsKeeper.Subspace(types.ModuleName)
	subspace, _ := paramsKeeper.GetSubspace(types.ModuleName)

	registryKeeper := registrykeeper.NewKeeper(keyRegistry)
	orgKeeper := orgkeeper.NewKeeper(orgtypes.ModuleCdc, keyOrg, registryKeeper, orgkeeper.NewLedgerBankMock())

	executor := &ExecutorMock{}
	router := types.NewRouter()
	router.AddRoute(types.ProposalKindOrgChange, org.NewProposalHandler(orgKeeper)).
		AddRoute(types.ProposalKindMilestoneApproval, executor.Execute).
		AddRoute(types.ProposalKindPayout, executor.Execute).
		AddRoute(types.ProposalKindBountyCancel, executor.Execute)
	router.Seal()

	k := NewKeeper(types.ModuleCdc, keyVote, subspace, registryKeeper, orgKeeper, router)
	k.SetParams(ctx, types.DefaultParams())
	return ctx, TestKeepers{VoteKeeper: k, OrgKeeper: orgKeeper, RegistryKeeper: registryKeeper, Executor: executor}
}

// ExecutorMock records executed proposals
type ExecutorMock struct {
	ExecuteFn func(ctx sdk.Context, p types.Proposal) error
	Calls     []types.Proposal
}

func (m *ExecutorMock) Execute(ctx sdk.Context, p types.Proposal) error {
	m.Calls = append(m.Calls, p)
	if m.ExecuteFn == nil {
		return nil
	}
	return m.ExecuteFn(ctx, p)
}
