package types

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/rand"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
)

func TestProposalPayloadValidation(t *testing.T) {
	var addr sdk.AccAddress = rand.Bytes(20)
	invalidPolicy := orgtypes.SuperMajority(0, 1)

	specs := map[string]struct {
		src     ProposalPayload
		expKind ProposalKind
		expErr  bool
	}{
		"org change": {
			src:     ProposalPayload{OrgChange: &OrgChangePayload{Changes: []orgtypes.ShareDelta{orgtypes.NewShareDelta(addr, 1)}}},
			expKind: ProposalKindOrgChange,
		},
		"org change deactivate only": {
			src:     ProposalPayload{OrgChange: &OrgChangePayload{Deactivate: true}},
			expKind: ProposalKindOrgChange,
		},
		"empty org change": {
			src:     ProposalPayload{OrgChange: &OrgChangePayload{}},
			expKind: ProposalKindOrgChange,
			expErr:  true,
		},
		"org change with invalid policy": {
			src:     ProposalPayload{OrgChange: &OrgChangePayload{NewPolicy: &invalidPolicy}},
			expKind: ProposalKindOrgChange,
			expErr:  true,
		},
		"milestone approval": {
			src:     ProposalPayload{MilestoneApproval: &MilestoneApprovalPayload{SubmissionID: 1}},
			expKind: ProposalKindMilestoneApproval,
		},
		"milestone approval without id": {
			src:     ProposalPayload{MilestoneApproval: &MilestoneApprovalPayload{}},
			expKind: ProposalKindMilestoneApproval,
			expErr:  true,
		},
		"payout": {
			src:     ProposalPayload{Payout: &PayoutPayload{BountyID: 1, Recipient: addr, Amount: sdk.NewInt(1)}},
			expKind: ProposalKindPayout,
		},
		"payout zero amount": {
			src:     ProposalPayload{Payout: &PayoutPayload{BountyID: 1, Recipient: addr, Amount: sdk.ZeroInt()}},
			expKind: ProposalKindPayout,
			expErr:  true,
		},
		"payout without recipient": {
			src:     ProposalPayload{Payout: &PayoutPayload{BountyID: 1, Amount: sdk.NewInt(1)}},
			expKind: ProposalKindPayout,
			expErr:  true,
		},
		"bounty cancel": {
			src:     ProposalPayload{BountyCancel: &BountyCancelPayload{BountyID: 1}},
			expKind: ProposalKindBountyCancel,
		},
		"empty": {
			src:     ProposalPayload{},
			expKind: ProposalKindUndefined,
			expErr:  true,
		},
		"two variants": {
			src: ProposalPayload{
				MilestoneApproval: &MilestoneApprovalPayload{SubmissionID: 1},
				BountyCancel:      &BountyCancelPayload{BountyID: 1},
			},
			expKind: ProposalKindUndefined,
			expErr:  true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.expKind, spec.src.Kind())
			gotErr := spec.src.ValidateBasic()
			if spec.expErr {
				require.ErrorIs(t, gotErr, tbtypes.ErrInvalidInput)
				return
			}
			require.NoError(t, gotErr)
		})
	}
}

func TestRouter(t *testing.T) {
	r := NewRouter()
	noop := func(sdk.Context, Proposal) error { return nil }
	r.AddRoute(ProposalKindPayout, noop)
	assert.True(t, r.HasRoute(ProposalKindPayout))
	assert.False(t, r.HasRoute(ProposalKindBountyCancel))
	assert.NotNil(t, r.GetRoute(ProposalKindPayout))

	assert.Panics(t, func() { r.AddRoute(ProposalKindPayout, noop) })
	assert.Panics(t, func() { r.AddRoute(ProposalKindUndefined, noop) })
	assert.Panics(t, func() { r.GetRoute(ProposalKindBountyCancel) })
	r.Seal()
	assert.Panics(t, func() { r.AddRoute(ProposalKindBountyCancel, noop) })
	assert.Panics(t, func() { r.Seal() })
}

func TestMsgSubmitProposalValidateBasic(t *testing.T) {
	var proposer, recipient sdk.AccAddress = rand.Bytes(20), rand.Bytes(20)

	specs := map[string]struct {
		src    MsgSubmitProposal
		expErr bool
	}{
		"payout": {
			src: MsgSubmitProposal{Proposer: proposer.String(), OrgID: 1, Payload: ProposalPayload{
				Payout: &PayoutPayload{BountyID: 1, Recipient: recipient, Amount: sdk.NewInt(1)},
			}},
		},
		"bounty cancel": {
			src: MsgSubmitProposal{Proposer: proposer.String(), OrgID: 1, Payload: ProposalPayload{
				BountyCancel: &BountyCancelPayload{BountyID: 1},
			}},
		},
		"milestone approval": {
			src: MsgSubmitProposal{Proposer: proposer.String(), OrgID: 1, Payload: ProposalPayload{
				MilestoneApproval: &MilestoneApprovalPayload{SubmissionID: 1},
			}},
			expErr: true,
		},
		"no org": {
			src: MsgSubmitProposal{Proposer: proposer.String(), Payload: ProposalPayload{
				BountyCancel: &BountyCancelPayload{BountyID: 1},
			}},
			expErr: true,
		},
		"negative expiry": {
			src: MsgSubmitProposal{Proposer: proposer.String(), OrgID: 1, Expiry: -1, Payload: ProposalPayload{
				BountyCancel: &BountyCancelPayload{BountyID: 1},
			}},
			expErr: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			gotErr := spec.src.ValidateBasic()
			if spec.expErr {
				require.ErrorIs(t, gotErr, tbtypes.ErrInvalidInput)
				return
			}
			require.NoError(t, gotErr)
		})
	}
}
