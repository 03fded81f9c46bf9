package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
)

func TestPartialApprovalThenOverdrawnRequest(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)

	bountyID, err := k.PostBounty(ctx, alice, sdk.NewInt(100), TestContentHash(1), 0)
	require.NoError(t, err)
	subID, err := k.SubmitMilestone(ctx, bountyID, bob, sdk.NewInt(40), TestContentHash(2))
	require.NoError(t, err)

	// when
	require.NoError(t, k.ApproveSubmission(ctx, alice, subID))

	// then
	b, _ := k.GetBounty(ctx, bountyID)
	assert.Equal(t, "60", b.TotalFundsReserved.String())
	assert.Equal(t, types.BountyStateLive, b.State)
	assert.Equal(t, "40", Balance(ctx, keepers, bob).String())
	assert.Equal(t, "60", keepers.EscrowKeeper.ReservedBalance(ctx, bountyID).String())

	// and a request above the remaining reserve is refused
	_, err = k.SubmitMilestone(ctx, bountyID, bob, sdk.NewInt(70), TestContentHash(3))
	require.ErrorIs(t, err, tbtypes.ErrInvalidInput)
	assertConsistent(t, ctx, k)
}

func TestCancelBlockedWhileUnderReview(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)

	bountyID, err := k.PostBounty(ctx, alice, sdk.NewInt(100), TestContentHash(1), 0)
	require.NoError(t, err)
	subID, err := k.SubmitMilestone(ctx, bountyID, bob, sdk.NewInt(40), TestContentHash(2))
	require.NoError(t, err)
	_, err = k.ReviewSubmission(ctx, alice, subID, 0)
	require.NoError(t, err)

	// when
	_, err = k.CancelBounty(ctx, alice, bountyID)

	// then
	require.ErrorIs(t, err, tbtypes.ErrInvalidInput)
	assert.Equal(t, "0", Balance(ctx, keepers, alice).String())

	// and after the rejection the full reserve is refunded
	require.NoError(t, k.RejectSubmission(ctx, alice, subID))
	refunded, err := k.CancelBounty(ctx, alice, bountyID)
	require.NoError(t, err)
	assert.Equal(t, "100", refunded.String())
	assert.Equal(t, "100", Balance(ctx, keepers, alice).String())
	b, _ := k.GetBounty(ctx, bountyID)
	assert.True(t, b.IsClosed())
	assertConsistent(t, ctx, k)
}

func TestFundsConservedUnderRandomOperations(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	accounts := make([]sdk.AccAddress, 4)
	for i := range accounts {
		accounts[i] = RandomAddress(t)
		Fund(t, ctx, keepers, accounts[i], 10_000)
	}
	supply := sdk.NewInt(40_000)

	f := fuzz.New().NilChance(0)
	for i := 0; i < 300; i++ {
		var op struct {
			Kind    uint8
			Account uint8
			Target  uint8
			Amount  uint8
		}
		f.Fuzz(&op)
		actor := accounts[int(op.Account)%len(accounts)]
		target := uint64(op.Target%8) + 1
		amount := sdk.NewInt(int64(op.Amount))

		// errors are expected, every outcome must keep funds conserved
		switch op.Kind % 7 {
		case 0:
			_, _ = k.PostBounty(ctx, actor, amount, TestContentHash(1), 0)
		case 1:
			_, _ = k.FundBounty(ctx, actor, target, amount)
		case 2:
			_, _ = k.SubmitMilestone(ctx, target, actor, amount, TestContentHash(2))
		case 3:
			_, _ = k.ReviewSubmission(ctx, actor, target, 0)
		case 4:
			_ = k.ApproveSubmission(ctx, actor, target)
		case 5:
			_ = k.RejectSubmission(ctx, actor, target)
		case 6:
			_, _ = k.CancelBounty(ctx, actor, target)
		}

		msg, broken := ReserveConsistencyInvariant(k)(ctx)
		require.False(t, broken, msg)
		total := keepers.EscrowKeeper.Totals(ctx).Outstanding()
		for _, a := range accounts {
			total = total.Add(Balance(ctx, keepers, a))
		}
		require.Equal(t, supply.String(), total.String())
	}
}
