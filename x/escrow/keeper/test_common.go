package keeper

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/libs/rand"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/tbounty/x/escrow/types"
)

// TestKeepers are the keepers wired by CreateTestInput
type TestKeepers struct {
	EscrowKeeper  Keeper
	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.Keeper
	ParamsKeeper  paramskeeper.Keeper
	// MultiStore gives callers the chance to mount their own stores before it is loaded
	MultiStore store.CommitMultiStore
}

// CreateTestInput wires the escrow keeper to real auth and bank keepers on an in-memory db.
// Accounts are funded by minting, see Fund. Additional store keys are mounted before loading.
func CreateTestInput(t testing.TB, extraKeys ...sdk.StoreKey) (sdk.Context, TestKeepers) {
	keyEscrow := sdk.NewKVStoreKey(types.StoreKey)
	keyAcc := sdk.NewKVStoreKey(authtypes.StoreKey)
	keyBank := sdk.NewKVStoreKey(banktypes.StoreKey)
	keyParams := sdk.NewKVStoreKey(paramstypes.StoreKey)
	tkeyParams := sdk.NewTransientStoreKey(paramstypes.TStoreKey)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyEscrow, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyAcc, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyBank, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyParams, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(tkeyParams, sdk.StoreTypeTransient, db)
	for _, k := range extraKeys {
		ms.MountStoreWithDB(k, sdk.StoreTypeIAVL, db)
	}
	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC),
	}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(interfaceRegistry)
	authtypes.RegisterInterfaces(interfaceRegistry)
	banktypes.RegisterInterfaces(interfaceRegistry)
	appCodec := codec.NewProtoCodec(interfaceRegistry)
	legacyAmino := codec.NewLegacyAmino()

	paramsKeeper := paramskeeper.NewKeeper(appCodec, legacyAmino, keyParams, tkeyParams)
	paramsKeeper.Subspace(authtypes.ModuleName)
	paramsKeeper.Subspace(banktypes.ModuleName)
	paramsKeeper.Subspace(types.ModuleName)

	maccPerms := map[string][]string{ // module account permissions
		minttypes.ModuleName: {authtypes.Minter},
		types.ModuleName:     nil,
	}
	authSubsp, _ := paramsKeeper.GetSubspace(authtypes.ModuleName)
	accountKeeper := authkeeper.NewAccountKeeper(
		appCodec,
		keyAcc, // target store
		authSubsp,
		authtypes.ProtoBaseAccount, // prototype
		maccPerms,
	)
	accountKeeper.SetParams(ctx, authtypes.DefaultParams())
	blockedAddrs := make(map[string]bool)
	for acc := range maccPerms {
		blockedAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}

	bankSubsp, _ := paramsKeeper.GetSubspace(banktypes.ModuleName)
	bankKeeper := bankkeeper.NewBaseKeeper(
		appCodec,
		keyBank,
		accountKeeper,
		bankSubsp,
		blockedAddrs,
	)
	bankKeeper.SetParams(ctx, banktypes.DefaultParams())

	escrowSubsp, _ := paramsKeeper.GetSubspace(types.ModuleName)
	k := NewKeeper(types.ModuleCdc, keyEscrow, escrowSubsp, accountKeeper, bankKeeper)
	k.InitGenesis(ctx, types.DefaultGenesisState())

	return ctx, TestKeepers{
		EscrowKeeper:  k,
		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
		ParamsKeeper:  paramsKeeper,
		MultiStore:    ms,
	}
}

// Fund mints coins of the escrow denom to the given account
func Fund(t testing.TB, ctx sdk.Context, keepers TestKeepers, addr sdk.AccAddress, amount int64) {
	t.Helper()
	coins := sdk.NewCoins(sdk.NewInt64Coin(keepers.EscrowKeeper.Denom(ctx), amount))
	require.NoError(t, keepers.BankKeeper.MintCoins(ctx, minttypes.ModuleName, coins))
	require.NoError(t, keepers.BankKeeper.SendCoinsFromModuleToAccount(ctx, minttypes.ModuleName, addr, coins))
}

// Balance returns the escrow denom balance of an account
func Balance(ctx sdk.Context, keepers TestKeepers, addr sdk.AccAddress) sdk.Int {
	return keepers.BankKeeper.GetBalance(ctx, addr, keepers.EscrowKeeper.Denom(ctx)).Amount
}

func RandomAddress(_ testing.TB) sdk.AccAddress {
	return rand.Bytes(address.Len)
}
