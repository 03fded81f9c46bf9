package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/escrow/types"
)

func TestReserve(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.EscrowKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)
	Fund(t, ctx, keepers, bob, 100)
	require.NoError(t, k.Reserve(ctx, 2, alice, sdk.NewInt(10)))

	specs := map[string]struct {
		bountyID    uint64
		from        sdk.AccAddress
		amount      sdk.Int
		expErr      error
		expReserved int64
	}{
		"new entry": {
			bountyID: 1, from: alice, amount: sdk.NewInt(60), expReserved: 60,
		},
		"whole balance": {
			bountyID: 1, from: bob, amount: sdk.NewInt(100), expReserved: 100,
		},
		"top up by depositer": {
			bountyID: 2, from: alice, amount: sdk.NewInt(5), expReserved: 15,
		},
		"top up by other account": {
			bountyID: 2, from: bob, amount: sdk.NewInt(5), expErr: tbtypes.ErrUnauthorized,
		},
		"more than balance": {
			bountyID: 1, from: alice, amount: sdk.NewInt(91), expErr: tbtypes.ErrInsufficientFunds,
		},
		"unfunded account": {
			bountyID: 1, from: RandomAddress(t), amount: sdk.NewInt(1), expErr: tbtypes.ErrInsufficientFunds,
		},
		"zero amount": {
			bountyID: 1, from: alice, amount: sdk.ZeroInt(), expErr: tbtypes.ErrInvalidInput,
		},
		"negative amount": {
			bountyID: 1, from: alice, amount: sdk.NewInt(-1), expErr: tbtypes.ErrInvalidInput,
		},
		"nil amount": {
			bountyID: 1, from: alice, amount: sdk.Int{}, expErr: tbtypes.ErrInvalidInput,
		},
		"zero bounty id": {
			bountyID: 0, from: alice, amount: sdk.NewInt(1), expErr: tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			before := Balance(ctx, keepers, spec.from)
			gotErr := k.Reserve(ctx, spec.bountyID, spec.from, spec.amount)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, before.String(), Balance(ctx, keepers, spec.from).String())
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, sdk.NewInt(spec.expReserved).String(), k.ReservedBalance(ctx, spec.bountyID).String())
			assert.Equal(t, before.Sub(spec.amount).String(), Balance(ctx, keepers, spec.from).String())
			e, ok := k.GetEntry(ctx, spec.bountyID)
			require.True(t, ok)
			assert.Equal(t, spec.from, e.Depositer)
			assertConserved(t, ctx, k)
		})
	}
}

func TestReleaseTo(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.EscrowKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)
	require.NoError(t, k.Reserve(ctx, 1, alice, sdk.NewInt(100)))

	specs := map[string]struct {
		bountyID    uint64
		recipient   sdk.AccAddress
		amount      sdk.Int
		expErr      error
		expReserved int64
	}{
		"partial": {
			bountyID: 1, recipient: bob, amount: sdk.NewInt(40), expReserved: 60,
		},
		"all": {
			bountyID: 1, recipient: bob, amount: sdk.NewInt(100), expReserved: 0,
		},
		"more than reserved": {
			bountyID: 1, recipient: bob, amount: sdk.NewInt(101), expErr: tbtypes.ErrInsufficientReserve,
		},
		"unknown bounty": {
			bountyID: 2, recipient: bob, amount: sdk.NewInt(1), expErr: tbtypes.ErrNotFound,
		},
		"zero amount": {
			bountyID: 1, recipient: bob, amount: sdk.ZeroInt(), expErr: tbtypes.ErrInvalidInput,
		},
		"empty recipient": {
			bountyID: 1, amount: sdk.NewInt(1), expErr: tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			gotErr := k.ReleaseTo(ctx, spec.bountyID, spec.recipient, spec.amount)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, "100", k.ReservedBalance(ctx, 1).String())
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, sdk.NewInt(spec.expReserved).String(), k.ReservedBalance(ctx, spec.bountyID).String())
			assert.Equal(t, spec.amount.String(), Balance(ctx, keepers, spec.recipient).String())
			assert.Equal(t, spec.amount.String(), k.Totals(ctx).Released.String())
			assertConserved(t, ctx, k)
		})
	}
}

func TestRefundRemainder(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.EscrowKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)
	require.NoError(t, k.Reserve(ctx, 1, alice, sdk.NewInt(100)))
	require.NoError(t, k.ReleaseTo(ctx, 1, bob, sdk.NewInt(30)))

	got, err := k.RefundRemainder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "70", got.String())
	assert.Equal(t, "70", Balance(ctx, keepers, alice).String())
	assert.True(t, k.ReservedBalance(ctx, 1).IsZero())

	// nothing left
	got, err = k.RefundRemainder(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, "70", Balance(ctx, keepers, alice).String())

	_, err = k.RefundRemainder(ctx, 2)
	require.ErrorIs(t, err, tbtypes.ErrNotFound)

	totals := k.Totals(ctx)
	assert.Equal(t, "100", totals.ReservedIn.String())
	assert.Equal(t, "30", totals.Released.String())
	assert.Equal(t, "70", totals.Refunded.String())
	assertConserved(t, ctx, k)
}

func TestFundConservationInvariantDetectsLeak(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.EscrowKeeper
	alice := RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)
	require.NoError(t, k.Reserve(ctx, 1, alice, sdk.NewInt(100)))
	assertConserved(t, ctx, k)

	// coins leave the module account behind the keeper's back
	coins := sdk.NewCoins(sdk.NewInt64Coin(k.Denom(ctx), 1))
	require.NoError(t, keepers.BankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, alice, coins))
	_, broken := FundConservationInvariant(k)(ctx)
	assert.True(t, broken)
}

func TestGenesisExportImport(t *testing.T) {
	srcCtx, srcKeepers := CreateTestInput(t)
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, srcCtx, srcKeepers, alice, 100)
	require.NoError(t, srcKeepers.EscrowKeeper.Reserve(srcCtx, 1, alice, sdk.NewInt(60)))
	require.NoError(t, srcKeepers.EscrowKeeper.Reserve(srcCtx, 2, alice, sdk.NewInt(40)))
	require.NoError(t, srcKeepers.EscrowKeeper.ReleaseTo(srcCtx, 1, bob, sdk.NewInt(10)))
	_, err := srcKeepers.EscrowKeeper.RefundRemainder(srcCtx, 2)
	require.NoError(t, err)

	exported := srcKeepers.EscrowKeeper.ExportGenesis(srcCtx)
	require.NoError(t, types.ValidateGenesis(*exported))
	bz, err := types.ModuleCdc.MarshalJSON(exported)
	require.NoError(t, err)

	var imported types.GenesisState
	require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &imported))
	dstCtx, dstKeepers := CreateTestInput(t)
	dstKeepers.EscrowKeeper.InitGenesis(dstCtx, imported)

	reExported, err := types.ModuleCdc.MarshalJSON(dstKeepers.EscrowKeeper.ExportGenesis(dstCtx))
	require.NoError(t, err)
	assert.JSONEq(t, string(bz), string(reExported))
	assert.Equal(t, "50", dstKeepers.EscrowKeeper.ReservedBalance(dstCtx, 1).String())
}

func assertConserved(t *testing.T, ctx sdk.Context, k Keeper) {
	t.Helper()
	msg, broken := FundConservationInvariant(k)(ctx)
	assert.False(t, broken, msg)
}
