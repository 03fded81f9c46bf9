package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/vote/types"
)

func TestLegacyQuerier(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	alice, bob := orgkeeper.RandomAddress(t), orgkeeper.RandomAddress(t)
	orgID := registerOrg(t, ctx, keepers, orgtypes.Majority(), orgtypes.NewMember(alice, 2), orgtypes.NewMember(bob, 1))
	id, err := keepers.VoteKeeper.SubmitProposal(ctx, alice, orgID, types.ProposalKindPayout, payoutPayload(bob), 0)
	require.NoError(t, err)
	_, err = keepers.VoteKeeper.CastVote(ctx, id, bob, false)
	require.NoError(t, err)
	q := NewLegacyQuerier(keepers.VoteKeeper, types.ModuleCdc)
	idStr := sdk.NewUint(id).String()

	specs := map[string]struct {
		path   []string
		expErr error
		assert func(t *testing.T, bz []byte)
	}{
		"proposal": {
			path: []string{types.QueryProposal, idStr},
			assert: func(t *testing.T, bz []byte) {
				var p types.Proposal
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &p))
				assert.Equal(t, id, p.ID)
				assert.Equal(t, types.ProposalStatusOpen, p.Status)
				assert.Equal(t, "1", p.NoShares.String())
			},
		},
		"proposals": {
			path: []string{types.QueryProposals},
			assert: func(t *testing.T, bz []byte) {
				var ps []types.Proposal
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &ps))
				assert.Len(t, ps, 1)
			},
		},
		"ballots": {
			path: []string{types.QueryBallots, idStr},
			assert: func(t *testing.T, bz []byte) {
				var bs []types.Ballot
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &bs))
				require.Len(t, bs, 1)
				assert.Equal(t, bob, bs[0].Voter)
				assert.False(t, bs[0].Support)
			},
		},
		"snapshot": {
			path: []string{types.QuerySnapshot, idStr},
			assert: func(t *testing.T, bz []byte) {
				var ms []orgtypes.Member
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &ms))
				assert.Len(t, ms, 2)
			},
		},
		"params": {
			path: []string{types.QueryParams},
			assert: func(t *testing.T, bz []byte) {
				var p types.Params
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &p))
				assert.Equal(t, types.DefaultParams(), p)
			},
		},
		"unknown proposal": {
			path:   []string{types.QueryProposal, "999"},
			expErr: tbtypes.ErrNotFound,
		},
		"missing id": {
			path:   []string{types.QueryBallots},
			expErr: tbtypes.ErrInvalidInput,
		},
		"invalid id": {
			path:   []string{types.QuerySnapshot, "foo"},
			expErr: tbtypes.ErrInvalidInput,
		},
		"unknown endpoint": {
			path:   []string{"foo"},
			expErr: sdkerrors.ErrUnknownRequest,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			bz, gotErr := q(ctx, spec.path, abci.RequestQuery{})
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			spec.assert(t, bz)
		})
	}
}
