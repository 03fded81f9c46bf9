package bounty

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/keeper"
	"github.com/confio/tbounty/x/bounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

func TestSponsoredBountyEndToEnd(t *testing.T) {
	ctx, keepers := keeper.CreateTestInput(t)
	keepers.Executor.ExecuteFn = NewProposalHandler(keepers.BountyKeeper)
	k := keepers.BountyKeeper
	alice, bob, carol, dave := keeper.RandomAddress(t), keeper.RandomAddress(t), keeper.RandomAddress(t), keeper.RandomAddress(t)
	keeper.Fund(t, ctx, keepers, alice, 500)
	orgID := keeper.RegisterOrg(t, ctx, keepers,
		orgtypes.NewMember(alice, 50), orgtypes.NewMember(bob, 30), orgtypes.NewMember(carol, 20))

	bountyID, err := k.PostBounty(ctx, alice, sdk.NewInt(500), keeper.TestContentHash(1), orgID)
	require.NoError(t, err)
	subID, err := k.SubmitMilestone(ctx, bountyID, dave, sdk.NewInt(200), keeper.TestContentHash(2))
	require.NoError(t, err)

	// the depositer can not bypass the org
	require.ErrorIs(t, k.ApproveSubmission(ctx, alice, subID), tbtypes.ErrUnauthorized)

	proposalID, err := k.ReviewSubmission(ctx, bob, subID, 0)
	require.NoError(t, err)

	// when alice and bob vote yes
	res, err := keepers.VoteKeeper.CastVote(ctx, proposalID, alice, true)
	require.NoError(t, err)
	assert.Equal(t, votetypes.ProposalStatusOpen, res.Status)
	res, err = keepers.VoteKeeper.CastVote(ctx, proposalID, bob, true)
	require.NoError(t, err)
	require.Equal(t, votetypes.ProposalStatusPassed, res.Status)
	require.NoError(t, keepers.VoteKeeper.Execute(ctx, proposalID))

	// then
	s, _ := k.GetSubmission(ctx, subID)
	assert.Equal(t, types.SubmissionStateApproved, s.State)
	assert.Equal(t, "200", keeper.Balance(ctx, keepers, dave).String())
	b, _ := k.GetBounty(ctx, bountyID)
	assert.Equal(t, "300", b.TotalFundsReserved.String())
	assert.Zero(t, b.UnderReviewCount)

	// and the org cancels the rest back to the depositer
	cancelID, err := keepers.VoteKeeper.SubmitProposal(ctx, carol, orgID, votetypes.ProposalKindBountyCancel,
		votetypes.ProposalPayload{BountyCancel: &votetypes.BountyCancelPayload{BountyID: bountyID}}, 0)
	require.NoError(t, err)
	for _, voter := range []sdk.AccAddress{alice, bob} {
		_, err = keepers.VoteKeeper.CastVote(ctx, cancelID, voter, true)
		require.NoError(t, err)
	}
	require.NoError(t, keepers.VoteKeeper.Execute(ctx, cancelID))
	b, _ = k.GetBounty(ctx, bountyID)
	assert.True(t, b.IsClosed())
	assert.Equal(t, "300", keeper.Balance(ctx, keepers, alice).String())
	msg, broken := keeper.ReserveConsistencyInvariant(k)(ctx)
	assert.False(t, broken, msg)
}

func TestBountyProposalExecutor(t *testing.T) {
	alice, bob, member := keeper.RandomAddress(t), keeper.RandomAddress(t), keeper.RandomAddress(t)

	specs := map[string]struct {
		kind         votetypes.ProposalKind
		payload      func(bountyID, subID uint64) votetypes.ProposalPayload
		foreignOrg   bool
		review       bool
		expErr       error
		expRemaining int64
		expBob       int64
	}{
		"milestone approval": {
			kind: votetypes.ProposalKindMilestoneApproval,
			payload: func(_, subID uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{MilestoneApproval: &votetypes.MilestoneApprovalPayload{SubmissionID: subID}}
			},
			review:       true,
			expRemaining: 60,
			expBob:       40,
		},
		"milestone approval without review": {
			kind: votetypes.ProposalKindMilestoneApproval,
			payload: func(_, subID uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{MilestoneApproval: &votetypes.MilestoneApprovalPayload{SubmissionID: subID}}
			},
			expErr: tbtypes.ErrInvalidInput,
		},
		"payout": {
			kind: votetypes.ProposalKindPayout,
			payload: func(bountyID, _ uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{Payout: &votetypes.PayoutPayload{BountyID: bountyID, Recipient: bob, Amount: sdk.NewInt(25)}}
			},
			expRemaining: 75,
			expBob:       25,
		},
		"bounty cancel": {
			kind: votetypes.ProposalKindBountyCancel,
			payload: func(bountyID, _ uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{BountyCancel: &votetypes.BountyCancelPayload{BountyID: bountyID}}
			},
		},
		"payout above reserve": {
			kind: votetypes.ProposalKindPayout,
			payload: func(bountyID, _ uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{Payout: &votetypes.PayoutPayload{BountyID: bountyID, Recipient: bob, Amount: sdk.NewInt(101)}}
			},
			expErr: tbtypes.ErrInsufficientReserve,
		},
		"not sponsored by proposing org": {
			kind: votetypes.ProposalKindBountyCancel,
			payload: func(bountyID, _ uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{BountyCancel: &votetypes.BountyCancelPayload{BountyID: bountyID}}
			},
			foreignOrg: true,
			expErr:     tbtypes.ErrUnauthorized,
		},
		"org change": {
			kind: votetypes.ProposalKindOrgChange,
			payload: func(_, _ uint64) votetypes.ProposalPayload {
				return votetypes.ProposalPayload{OrgChange: &votetypes.OrgChangePayload{Deactivate: true}}
			},
			expErr: tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := keeper.CreateTestInput(t)
			k := keepers.BountyKeeper
			keeper.Fund(t, ctx, keepers, alice, 100)
			orgID := keeper.RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 1))
			foreignOrgID := keeper.RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 1))
			bountyID, err := k.PostBounty(ctx, alice, sdk.NewInt(100), keeper.TestContentHash(1), orgID)
			require.NoError(t, err)
			subID, err := k.SubmitMilestone(ctx, bountyID, bob, sdk.NewInt(40), keeper.TestContentHash(2))
			require.NoError(t, err)
			proposingOrg := orgID
			if spec.foreignOrg {
				proposingOrg = foreignOrgID
			}
			proposalID := uint64(1)
			if spec.review {
				proposalID, err = k.ReviewSubmission(ctx, member, subID, 0)
				require.NoError(t, err)
			}

			// when
			h := NewProposalHandler(k)
			gotErr := h(ctx, votetypes.Proposal{ID: proposalID, OrgID: proposingOrg, Kind: spec.kind, Payload: spec.payload(bountyID, subID)})

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			b, _ := k.GetBounty(ctx, bountyID)
			assert.Equal(t, sdk.NewInt(spec.expRemaining).String(), b.TotalFundsReserved.String())
			assert.Equal(t, sdk.NewInt(spec.expBob).String(), keeper.Balance(ctx, keepers, bob).String())
		})
	}
}

func TestMilestoneApprovalOnlyThroughReview(t *testing.T) {
	ctx, keepers := keeper.CreateTestInput(t)
	keepers.Executor.ExecuteFn = NewProposalHandler(keepers.BountyKeeper)
	k := keepers.BountyKeeper
	alice, member, dave := keeper.RandomAddress(t), keeper.RandomAddress(t), keeper.RandomAddress(t)
	keeper.Fund(t, ctx, keepers, alice, 500)
	orgID := keeper.RegisterOrg(t, ctx, keepers, orgtypes.NewMember(member, 1))
	bountyID, err := k.PostBounty(ctx, alice, sdk.NewInt(500), keeper.TestContentHash(1), orgID)
	require.NoError(t, err)
	subID, err := k.SubmitMilestone(ctx, bountyID, dave, sdk.NewInt(200), keeper.TestContentHash(2))
	require.NoError(t, err)

	// when a member opens an approval without putting the submission under review
	payload := votetypes.ProposalPayload{MilestoneApproval: &votetypes.MilestoneApprovalPayload{SubmissionID: subID}}
	require.ErrorIs(t, (&votetypes.MsgSubmitProposal{Proposer: member.String(), OrgID: orgID, Payload: payload}).ValidateBasic(), tbtypes.ErrInvalidInput)
	directID, err := keepers.VoteKeeper.SubmitProposal(ctx, member, orgID, votetypes.ProposalKindMilestoneApproval, payload, 0)
	require.NoError(t, err)
	res, err := keepers.VoteKeeper.CastVote(ctx, directID, member, true)
	require.NoError(t, err)
	require.Equal(t, votetypes.ProposalStatusPassed, res.Status)

	// then it can not be executed
	require.ErrorIs(t, keepers.VoteKeeper.Execute(ctx, directID), tbtypes.ErrInvalidInput)
	s, _ := k.GetSubmission(ctx, subID)
	assert.Equal(t, types.SubmissionStateSubmitted, s.State)
	assert.True(t, keeper.Balance(ctx, keepers, dave).IsZero())
	b, _ := k.GetBounty(ctx, bountyID)
	assert.Equal(t, "500", b.TotalFundsReserved.String())
	assert.Zero(t, b.UnderReviewCount)

	// and the review proposal for the same submission still approves it
	reviewID, err := k.ReviewSubmission(ctx, member, subID, 0)
	require.NoError(t, err)
	_, err = keepers.VoteKeeper.CastVote(ctx, reviewID, member, true)
	require.NoError(t, err)
	require.NoError(t, keepers.VoteKeeper.Execute(ctx, reviewID))
	s, _ = k.GetSubmission(ctx, subID)
	assert.Equal(t, types.SubmissionStateApproved, s.State)
	assert.Equal(t, "200", keeper.Balance(ctx, keepers, dave).String())
}
