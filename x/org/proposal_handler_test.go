package org

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/keeper"
	"github.com/confio/tbounty/x/org/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

func TestOrgChangeExecutor(t *testing.T) {
	alice, bob := keeper.RandomAddress(t), keeper.RandomAddress(t)
	newPolicy := types.SuperMajority(3, 4)

	specs := map[string]struct {
		payload     votetypes.ProposalPayload
		expErr      error
		expTotal    uint64
		expPolicy   types.ThresholdPolicy
		expInactive bool
	}{
		"share change": {
			payload:   votetypes.ProposalPayload{OrgChange: &votetypes.OrgChangePayload{Changes: []types.ShareDelta{types.NewShareDelta(bob, 5)}}},
			expTotal:  15,
			expPolicy: types.Majority(),
		},
		"policy change": {
			payload:   votetypes.ProposalPayload{OrgChange: &votetypes.OrgChangePayload{NewPolicy: &newPolicy}},
			expTotal:  10,
			expPolicy: newPolicy,
		},
		"all at once": {
			payload: votetypes.ProposalPayload{OrgChange: &votetypes.OrgChangePayload{
				Changes:    []types.ShareDelta{types.NewShareDelta(alice, -5)},
				NewPolicy:  &newPolicy,
				Deactivate: true,
			}},
			expTotal:    5,
			expPolicy:   newPolicy,
			expInactive: true,
		},
		"underflow": {
			payload: votetypes.ProposalPayload{OrgChange: &votetypes.OrgChangePayload{Changes: []types.ShareDelta{types.NewShareDelta(bob, -1)}}},
			expErr:  tbtypes.ErrUnderflow,
		},
		"other kind": {
			payload: votetypes.ProposalPayload{BountyCancel: &votetypes.BountyCancelPayload{BountyID: 1}},
			expErr:  tbtypes.ErrInvalidInput,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := keeper.CreateTestInput(t)
			k := keepers.OrgKeeper
			orgID, err := k.Register(ctx, alice, []types.Member{types.NewMember(alice, 10)}, types.Majority(), nil, tbtypes.ContentHash{}, 0)
			require.NoError(t, err)

			h := NewProposalHandler(k)
			gotErr := h(ctx, votetypes.Proposal{ID: 1, OrgID: orgID, Kind: spec.payload.Kind(), Payload: spec.payload})
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			org, ok := k.GetOrganization(ctx, orgID)
			require.True(t, ok)
			assert.Equal(t, sdk.NewUint(spec.expTotal).String(), org.TotalShares.String())
			assert.Equal(t, spec.expPolicy, org.Policy)
			assert.Equal(t, !spec.expInactive, org.Active)
		})
	}
}
