package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

func TestPostBounty(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice := RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	k.SetParams(ctx, types.Params{MinDeposit: sdk.NewInt(10)})
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(alice, 1))
	inactiveOrgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(alice, 1))
	require.NoError(t, keepers.OrgKeeper.DeactivateByProposal(ctx, inactiveOrgID))

	specs := map[string]struct {
		amount      sdk.Int
		hash        tbtypes.ContentHash
		orgID       uint64
		expErr      error
		expSponsors bool
	}{
		"unsponsored": {
			amount: sdk.NewInt(100), hash: TestContentHash(1),
		},
		"sponsored": {
			amount: sdk.NewInt(100), hash: TestContentHash(1), orgID: orgID, expSponsors: true,
		},
		"exactly min deposit": {
			amount: sdk.NewInt(10), hash: TestContentHash(1),
		},
		"whole balance": {
			amount: sdk.NewInt(1000), hash: TestContentHash(1),
		},
		"below min deposit": {
			amount: sdk.NewInt(9), hash: TestContentHash(1), expErr: tbtypes.ErrInvalidInput,
		},
		"zero amount": {
			amount: sdk.ZeroInt(), hash: TestContentHash(1), expErr: tbtypes.ErrInvalidInput,
		},
		"nil amount": {
			amount: sdk.Int{}, hash: TestContentHash(1), expErr: tbtypes.ErrInvalidInput,
		},
		"empty content hash": {
			amount: sdk.NewInt(100), expErr: tbtypes.ErrInvalidInput,
		},
		"more than balance": {
			amount: sdk.NewInt(1001), hash: TestContentHash(1), expErr: tbtypes.ErrInsufficientFunds,
		},
		"unknown org": {
			amount: sdk.NewInt(100), hash: TestContentHash(1), orgID: 99, expErr: tbtypes.ErrNotFound,
		},
		"inactive org": {
			amount: sdk.NewInt(100), hash: TestContentHash(1), orgID: inactiveOrgID, expErr: tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			nextID := keepers.RegistryKeeper.PeekID(ctx, registrytypes.KindBounty)

			// when
			id, gotErr := k.PostBounty(ctx, alice, spec.amount, spec.hash, spec.orgID)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, nextID, keepers.RegistryKeeper.PeekID(ctx, registrytypes.KindBounty), "id must not be consumed")
				assert.Equal(t, "1000", Balance(ctx, keepers, alice).String())
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, nextID, id)
			b, ok := k.GetBounty(ctx, id)
			require.True(t, ok)
			assert.Equal(t, types.BountyStateFunded, b.State)
			assert.Equal(t, alice, b.Depositer)
			assert.Equal(t, spec.hash, b.ContentHash)
			assert.Equal(t, spec.expSponsors, b.IsSponsored())
			assert.Equal(t, spec.amount.String(), b.TotalFundsReserved.String())
			assert.Equal(t, spec.amount.String(), keepers.EscrowKeeper.ReservedBalance(ctx, id).String())
			assert.Equal(t, sdk.NewInt(1000).Sub(spec.amount).String(), Balance(ctx, keepers, alice).String())
			assertConsistent(t, ctx, k)
		})
	}
}

func TestFundBounty(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	Fund(t, ctx, keepers, bob, 1000)
	openID := postBounty(t, ctx, keepers, alice, 100, 0)
	closedID := postBounty(t, ctx, keepers, alice, 100, 0)
	_, err := k.CancelBounty(ctx, alice, closedID)
	require.NoError(t, err)

	specs := map[string]struct {
		bountyID    uint64
		depositer   sdk.AccAddress
		amount      sdk.Int
		expErr      error
		expReserved int64
	}{
		"top up": {
			bountyID: openID, depositer: alice, amount: sdk.NewInt(50), expReserved: 150,
		},
		"other account": {
			bountyID: openID, depositer: bob, amount: sdk.NewInt(50), expErr: tbtypes.ErrUnauthorized,
		},
		"closed bounty": {
			bountyID: closedID, depositer: alice, amount: sdk.NewInt(50), expErr: tbtypes.ErrBountyClosed,
		},
		"unknown bounty": {
			bountyID: 99, depositer: alice, amount: sdk.NewInt(50), expErr: tbtypes.ErrNotFound,
		},
		"more than balance": {
			bountyID: openID, depositer: alice, amount: sdk.NewInt(901), expErr: tbtypes.ErrInsufficientFunds,
		},
		"zero amount": {
			bountyID: openID, depositer: alice, amount: sdk.ZeroInt(), expErr: tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			total, gotErr := k.FundBounty(ctx, spec.depositer, spec.bountyID, spec.amount)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, sdk.NewInt(spec.expReserved).String(), total.String())
			b, _ := k.GetBounty(ctx, spec.bountyID)
			assert.Equal(t, total.String(), b.TotalFundsReserved.String())
			assertConsistent(t, ctx, k)
		})
	}
}

func TestSubmitMilestone(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	bountyID := postBounty(t, ctx, keepers, alice, 100, 0)
	closedID := postBounty(t, ctx, keepers, alice, 100, 0)
	_, err := k.CancelBounty(ctx, alice, closedID)
	require.NoError(t, err)

	specs := map[string]struct {
		bountyID uint64
		amount   sdk.Int
		hash     tbtypes.ContentHash
		expErr   error
	}{
		"partial amount": {
			bountyID: bountyID, amount: sdk.NewInt(40), hash: TestContentHash(2),
		},
		"whole reserve": {
			bountyID: bountyID, amount: sdk.NewInt(100), hash: TestContentHash(2),
		},
		"more than reserve": {
			bountyID: bountyID, amount: sdk.NewInt(101), hash: TestContentHash(2), expErr: tbtypes.ErrInvalidInput,
		},
		"zero amount": {
			bountyID: bountyID, amount: sdk.ZeroInt(), hash: TestContentHash(2), expErr: tbtypes.ErrInvalidInput,
		},
		"empty content hash": {
			bountyID: bountyID, amount: sdk.NewInt(40), expErr: tbtypes.ErrInvalidInput,
		},
		"closed bounty": {
			bountyID: closedID, amount: sdk.NewInt(40), hash: TestContentHash(2), expErr: tbtypes.ErrBountyClosed,
		},
		"unknown bounty": {
			bountyID: 99, amount: sdk.NewInt(40), hash: TestContentHash(2), expErr: tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			id, gotErr := k.SubmitMilestone(ctx, spec.bountyID, bob, spec.amount, spec.hash)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			s, ok := k.GetSubmission(ctx, id)
			require.True(t, ok)
			assert.Equal(t, types.SubmissionStateSubmitted, s.State)
			assert.Equal(t, bob, s.Submitter)
			assert.Equal(t, spec.amount.String(), s.AmountRequested.String())
			b, _ := k.GetBounty(ctx, spec.bountyID)
			assert.Equal(t, types.BountyStateLive, b.State)
			assert.Equal(t, uint64(1), b.SubmissionCount)
			assertConsistent(t, ctx, k)
		})
	}
}

func TestReviewSubmission(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob, member, outsider := RandomAddress(t), RandomAddress(t), RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))

	unsponsored := postBounty(t, ctx, keepers, alice, 100, 0)
	sponsored := postBounty(t, ctx, keepers, alice, 100, orgID)
	unsponsoredSub := submit(t, ctx, keepers, unsponsored, bob, 10)
	sponsoredSub := submit(t, ctx, keepers, sponsored, bob, 10)
	reviewedSub := submit(t, ctx, keepers, unsponsored, bob, 10)
	_, err := k.ReviewSubmission(ctx, alice, reviewedSub, 0)
	require.NoError(t, err)

	specs := map[string]struct {
		caller      sdk.AccAddress
		submission  uint64
		expErr      error
		expProposal bool
	}{
		"depositer of unsponsored bounty": {
			caller: alice, submission: unsponsoredSub,
		},
		"other account on unsponsored bounty": {
			caller: bob, submission: unsponsoredSub, expErr: tbtypes.ErrUnauthorized,
		},
		"org member of sponsored bounty": {
			caller: member, submission: sponsoredSub, expProposal: true,
		},
		"outsider on sponsored bounty": {
			caller: outsider, submission: sponsoredSub, expErr: tbtypes.ErrUnauthorized,
		},
		"already under review": {
			caller: alice, submission: reviewedSub, expErr: tbtypes.ErrInvalidInput,
		},
		"unknown submission": {
			caller: alice, submission: 99, expErr: tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			proposalID, gotErr := k.ReviewSubmission(ctx, spec.caller, spec.submission, 0)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			s, _ := k.GetSubmission(ctx, spec.submission)
			assert.Equal(t, types.SubmissionStateUnderReview, s.State)
			assert.Equal(t, proposalID, s.ProposalID)
			if !spec.expProposal {
				assert.Zero(t, proposalID)
				return
			}
			p, ok := keepers.VoteKeeper.GetProposal(ctx, proposalID)
			require.True(t, ok)
			assert.Equal(t, votetypes.ProposalKindMilestoneApproval, p.Kind)
			assert.Equal(t, spec.submission, p.Payload.MilestoneApproval.SubmissionID)
			assert.Equal(t, orgID, p.OrgID)
			assertConsistent(t, ctx, k)
		})
	}
}

func TestApproveSubmission(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob, member := RandomAddress(t), RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))

	unsponsored := postBounty(t, ctx, keepers, alice, 100, 0)
	sponsored := postBounty(t, ctx, keepers, alice, 100, orgID)
	partialSub := submit(t, ctx, keepers, unsponsored, bob, 40)
	fullSub := submit(t, ctx, keepers, unsponsored, bob, 100)
	reviewedSub := submit(t, ctx, keepers, unsponsored, bob, 30)
	_, err := k.ReviewSubmission(ctx, alice, reviewedSub, 0)
	require.NoError(t, err)
	rejectedSub := submit(t, ctx, keepers, unsponsored, bob, 30)
	require.NoError(t, k.RejectSubmission(ctx, alice, rejectedSub))
	sponsoredSub := submit(t, ctx, keepers, sponsored, bob, 40)

	specs := map[string]struct {
		caller       sdk.AccAddress
		submission   uint64
		expErr       error
		expRemaining int64
		expClosed    bool
	}{
		"partial amount": {
			caller: alice, submission: partialSub, expRemaining: 60,
		},
		"under review": {
			caller: alice, submission: reviewedSub, expRemaining: 70,
		},
		"whole reserve closes bounty": {
			caller: alice, submission: fullSub, expRemaining: 0, expClosed: true,
		},
		"not depositer": {
			caller: bob, submission: partialSub, expErr: tbtypes.ErrUnauthorized,
		},
		"rejected submission": {
			caller: alice, submission: rejectedSub, expErr: tbtypes.ErrInvalidInput,
		},
		"sponsored bounty": {
			caller: alice, submission: sponsoredSub, expErr: tbtypes.ErrUnauthorized,
		},
		"unknown submission": {
			caller: alice, submission: 99, expErr: tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			before := Balance(ctx, keepers, bob)
			gotErr := k.ApproveSubmission(ctx, spec.caller, spec.submission)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, before.String(), Balance(ctx, keepers, bob).String())
				return
			}
			require.NoError(t, gotErr)
			s, _ := k.GetSubmission(ctx, spec.submission)
			assert.Equal(t, types.SubmissionStateApproved, s.State)
			assert.Equal(t, before.Add(s.AmountRequested).String(), Balance(ctx, keepers, bob).String())
			b, _ := k.GetBounty(ctx, s.BountyID)
			assert.Equal(t, sdk.NewInt(spec.expRemaining).String(), b.TotalFundsReserved.String())
			assert.Equal(t, spec.expClosed, b.IsClosed())
			assertConsistent(t, ctx, k)
			if !spec.expClosed {
				return
			}
			// all other open submissions are rejected on close
			k.IterateBountySubmissions(ctx, b.ID, func(o types.Submission) bool {
				if o.ID != s.ID {
					assert.Equal(t, types.SubmissionStateRejected, o.State, "submission %d", o.ID)
				}
				return false
			})
			assert.Zero(t, b.UnderReviewCount)
		})
	}
}

func TestRejectSubmission(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob, member := RandomAddress(t), RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))

	unsponsored := postBounty(t, ctx, keepers, alice, 100, 0)
	sponsored := postBounty(t, ctx, keepers, alice, 100, orgID)
	openSub := submit(t, ctx, keepers, unsponsored, bob, 10)
	reviewedSub := submit(t, ctx, keepers, unsponsored, bob, 10)
	_, err := k.ReviewSubmission(ctx, alice, reviewedSub, 0)
	require.NoError(t, err)
	approvedSub := submit(t, ctx, keepers, unsponsored, bob, 10)
	require.NoError(t, k.ApproveSubmission(ctx, alice, approvedSub))

	failedSub := submit(t, ctx, keepers, sponsored, bob, 10)
	failedProposal, err := k.ReviewSubmission(ctx, member, failedSub, 0)
	require.NoError(t, err)
	_, err = keepers.VoteKeeper.CastVote(ctx, failedProposal, member, false)
	require.NoError(t, err)
	pendingSub := submit(t, ctx, keepers, sponsored, bob, 10)
	_, err = k.ReviewSubmission(ctx, member, pendingSub, 0)
	require.NoError(t, err)

	specs := map[string]struct {
		caller     sdk.AccAddress
		submission uint64
		expErr     error
	}{
		"depositer rejects submitted": {
			caller: alice, submission: openSub,
		},
		"depositer rejects under review": {
			caller: alice, submission: reviewedSub,
		},
		"other account": {
			caller: bob, submission: openSub, expErr: tbtypes.ErrUnauthorized,
		},
		"approved submission": {
			caller: alice, submission: approvedSub, expErr: tbtypes.ErrInvalidInput,
		},
		"org member after failed proposal": {
			caller: member, submission: failedSub,
		},
		"org member with open proposal": {
			caller: member, submission: pendingSub, expErr: tbtypes.ErrUnauthorized,
		},
		"outsider after failed proposal": {
			caller: bob, submission: failedSub, expErr: tbtypes.ErrUnauthorized,
		},
		"unknown submission": {
			caller: alice, submission: 99, expErr: tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			gotErr := k.RejectSubmission(ctx, spec.caller, spec.submission)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			s, _ := k.GetSubmission(ctx, spec.submission)
			assert.Equal(t, types.SubmissionStateRejected, s.State)
			b, _ := k.GetBounty(ctx, s.BountyID)
			assert.False(t, b.IsClosed())
			assertConsistent(t, ctx, k)
		})
	}
}

func TestCancelBounty(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob, member := RandomAddress(t), RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))

	plain := postBounty(t, ctx, keepers, alice, 100, 0)
	partlyPaid := postBounty(t, ctx, keepers, alice, 100, 0)
	require.NoError(t, k.ApproveSubmission(ctx, alice, submit(t, ctx, keepers, partlyPaid, bob, 30)))
	openSub := submit(t, ctx, keepers, partlyPaid, bob, 10)
	underReview := postBounty(t, ctx, keepers, alice, 100, 0)
	_, err := k.ReviewSubmission(ctx, alice, submit(t, ctx, keepers, underReview, bob, 10), 0)
	require.NoError(t, err)
	sponsored := postBounty(t, ctx, keepers, alice, 100, orgID)
	closed := postBounty(t, ctx, keepers, alice, 100, 0)
	_, err = k.CancelBounty(ctx, alice, closed)
	require.NoError(t, err)

	specs := map[string]struct {
		caller      sdk.AccAddress
		bountyID    uint64
		expErr      error
		expRefunded int64
	}{
		"full refund": {
			caller: alice, bountyID: plain, expRefunded: 100,
		},
		"remainder after payout": {
			caller: alice, bountyID: partlyPaid, expRefunded: 70,
		},
		"not depositer": {
			caller: bob, bountyID: plain, expErr: tbtypes.ErrUnauthorized,
		},
		"submission under review": {
			caller: alice, bountyID: underReview, expErr: tbtypes.ErrInvalidInput,
		},
		"sponsored bounty": {
			caller: alice, bountyID: sponsored, expErr: tbtypes.ErrUnauthorized,
		},
		"already closed": {
			caller: alice, bountyID: closed, expErr: tbtypes.ErrBountyClosed,
		},
		"unknown bounty": {
			caller: alice, bountyID: 99, expErr: tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			before := Balance(ctx, keepers, alice)
			refunded, gotErr := k.CancelBounty(ctx, spec.caller, spec.bountyID)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, before.String(), Balance(ctx, keepers, alice).String())
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, sdk.NewInt(spec.expRefunded).String(), refunded.String())
			assert.Equal(t, before.Add(refunded).String(), Balance(ctx, keepers, alice).String())
			b, _ := k.GetBounty(ctx, spec.bountyID)
			assert.True(t, b.IsClosed())
			assert.True(t, b.TotalFundsReserved.IsZero())
			if spec.bountyID == partlyPaid {
				s, _ := k.GetSubmission(ctx, openSub)
				assert.Equal(t, types.SubmissionStateRejected, s.State)
			}
			assertConsistent(t, ctx, k)
		})
	}
}

func TestOrgDrivenOperations(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	k := keepers.BountyKeeper
	alice, bob, member := RandomAddress(t), RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 1000)
	orgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))
	otherOrgID := RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 10))
	sponsored := postBounty(t, ctx, keepers, alice, 100, orgID)
	sub := submit(t, ctx, keepers, sponsored, bob, 40)
	review := func(ctx sdk.Context) uint64 {
		id, err := k.ReviewSubmission(ctx, member, sub, 0)
		require.NoError(t, err)
		return id
	}

	specs := map[string]struct {
		exec         func(ctx sdk.Context) error
		expErr       error
		expRemaining int64
		expClosed    bool
	}{
		"approve by sponsor": {
			exec:         func(ctx sdk.Context) error { return k.ApproveSubmissionByOrg(ctx, orgID, review(ctx), sub) },
			expRemaining: 60,
		},
		"approve by other org": {
			exec:   func(ctx sdk.Context) error { return k.ApproveSubmissionByOrg(ctx, otherOrgID, review(ctx), sub) },
			expErr: tbtypes.ErrUnauthorized,
		},
		"approve without review": {
			exec:   func(ctx sdk.Context) error { return k.ApproveSubmissionByOrg(ctx, orgID, 1, sub) },
			expErr: tbtypes.ErrInvalidInput,
		},
		"approve by other proposal": {
			exec:   func(ctx sdk.Context) error { return k.ApproveSubmissionByOrg(ctx, orgID, review(ctx)+1, sub) },
			expErr: tbtypes.ErrInvalidInput,
		},
		"payout by sponsor": {
			exec:         func(ctx sdk.Context) error { return k.PayoutByOrg(ctx, orgID, sponsored, bob, sdk.NewInt(25)) },
			expRemaining: 75,
		},
		"payout of whole reserve closes": {
			exec:      func(ctx sdk.Context) error { return k.PayoutByOrg(ctx, orgID, sponsored, bob, sdk.NewInt(100)) },
			expClosed: true,
		},
		"payout above reserve": {
			exec:   func(ctx sdk.Context) error { return k.PayoutByOrg(ctx, orgID, sponsored, bob, sdk.NewInt(101)) },
			expErr: tbtypes.ErrInsufficientReserve,
		},
		"payout by other org": {
			exec:   func(ctx sdk.Context) error { return k.PayoutByOrg(ctx, otherOrgID, sponsored, bob, sdk.NewInt(1)) },
			expErr: tbtypes.ErrUnauthorized,
		},
		"cancel by sponsor": {
			exec: func(ctx sdk.Context) error {
				_, err := k.CancelBountyByOrg(ctx, orgID, sponsored)
				return err
			},
			expClosed: true,
		},
		"cancel by other org": {
			exec: func(ctx sdk.Context) error {
				_, err := k.CancelBountyByOrg(ctx, otherOrgID, sponsored)
				return err
			},
			expErr: tbtypes.ErrUnauthorized,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := ctx.CacheContext()
			gotErr := spec.exec(ctx)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			b, _ := k.GetBounty(ctx, sponsored)
			assert.Equal(t, sdk.NewInt(spec.expRemaining).String(), b.TotalFundsReserved.String())
			assert.Equal(t, spec.expClosed, b.IsClosed())
			assertConsistent(t, ctx, k)
		})
	}
}

func postBounty(t *testing.T, ctx sdk.Context, keepers TestKeepers, depositer sdk.AccAddress, amount int64, orgID uint64) uint64 {
	t.Helper()
	id, err := keepers.BountyKeeper.PostBounty(ctx, depositer, sdk.NewInt(amount), TestContentHash(1), orgID)
	require.NoError(t, err)
	return id
}

func submit(t *testing.T, ctx sdk.Context, keepers TestKeepers, bountyID uint64, submitter sdk.AccAddress, amount int64) uint64 {
	t.Helper()
	id, err := keepers.BountyKeeper.SubmitMilestone(ctx, bountyID, submitter, sdk.NewInt(amount), TestContentHash(2))
	require.NoError(t, err)
	return id
}

func assertConsistent(t *testing.T, ctx sdk.Context, k Keeper) {
	t.Helper()
	msg, broken := ReserveConsistencyInvariant(k)(ctx)
	assert.False(t, broken, msg)
}
