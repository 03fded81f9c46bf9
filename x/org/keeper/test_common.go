package keeper

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/tbounty/x/org/types"
	registrykeeper "github.com/confio/tbounty/x/registry/keeper"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// TestKeepers are the keepers wired by CreateTestInput
type TestKeepers struct {
	OrgKeeper      Keeper
	RegistryKeeper registrykeeper.Keeper
	BankKeeper     *BankKeeperMock
}

// CreateTestInput mounts registry and org stores on an in-memory db. Funds are tracked by an
// in-memory ledger.
func CreateTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyOrg := sdk.NewKVStoreKey(types.StoreKey)
	keyRegistry := sdk.NewKVStoreKey(registrytypes.StoreKey)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyOrg, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(keyRegistry, sdk.StoreTypeIAVL, db)
	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC),
	}, false, log.NewNopLogger())

	registryKeeper := registrykeeper.NewKeeper(keyRegistry)
	bank := NewLedgerBankMock()
	k := NewKeeper(types.ModuleCdc, keyOrg, registryKeeper, bank)
	return ctx, TestKeepers{OrgKeeper: k, RegistryKeeper: registryKeeper, BankKeeper: bank}
}

// RandomAddress returns a fresh account address
func RandomAddress(_ testing.TB) sdk.AccAddress {
	return sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address())
}

var _ types.BankKeeper = &BankKeeperMock{}

// BankKeeperMock mocks the fund transfer primitive
type BankKeeperMock struct {
	SpendableCoinsFn func(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins
	SendCoinsFn      func(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	Balances         map[string]sdk.Coins
}

// NewLedgerBankMock returns a mock that keeps balances in memory
func NewLedgerBankMock() *BankKeeperMock {
	m := &BankKeeperMock{Balances: make(map[string]sdk.Coins)}
	m.SpendableCoinsFn = func(_ sdk.Context, addr sdk.AccAddress) sdk.Coins {
		return m.Balances[addr.String()]
	}
	m.SendCoinsFn = func(_ sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error {
		rest, negative := m.Balances[fromAddr.String()].SafeSub(amt)
		if negative {
			return sdkerrors.Wrapf(sdkerrors.ErrInsufficientFunds, "%s is smaller than %s", m.Balances[fromAddr.String()], amt)
		}
		m.Balances[fromAddr.String()] = rest
		m.Balances[toAddr.String()] = m.Balances[toAddr.String()].Add(amt...)
		return nil
	}
	return m
}

// Fund credits an account
func (m *BankKeeperMock) Fund(addr sdk.AccAddress, amt ...sdk.Coin) {
	m.Balances[addr.String()] = m.Balances[addr.String()].Add(amt...)
}

func (m *BankKeeperMock) SpendableCoins(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins {
	if m.SpendableCoinsFn == nil {
		panic("not expected to be called")
	}
	return m.SpendableCoinsFn(ctx, addr)
}

func (m *BankKeeperMock) SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.SendCoinsFn == nil {
		panic("not expected to be called")
	}
	return m.SendCoinsFn(ctx, fromAddr, toAddr, amt)
}
