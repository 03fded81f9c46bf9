package keeper

import (
	"testing"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
)

func TestLegacyQuerier(t *testing.T) {
	ctx, keepers := CreateTestInput(t)
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, ctx, keepers, alice, 100)
	bountyID := postBounty(t, ctx, keepers, alice, 100, 0)
	subID := submit(t, ctx, keepers, bountyID, bob, 40)
	q := NewLegacyQuerier(keepers.BountyKeeper, types.ModuleCdc)

	specs := map[string]struct {
		path   []string
		expErr error
		assert func(t *testing.T, bz []byte)
	}{
		"bounty": {
			path: []string{types.QueryBounty, "1"},
			assert: func(t *testing.T, bz []byte) {
				var b types.Bounty
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &b))
				assert.Equal(t, bountyID, b.ID)
				assert.Equal(t, types.BountyStateLive, b.State)
				assert.Equal(t, "100", b.TotalFundsReserved.String())
			},
		},
		"bounties": {
			path: []string{types.QueryBounties},
			assert: func(t *testing.T, bz []byte) {
				var bs []types.Bounty
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &bs))
				assert.Len(t, bs, 1)
			},
		},
		"submission": {
			path: []string{types.QuerySubmission, "1"},
			assert: func(t *testing.T, bz []byte) {
				var s types.Submission
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &s))
				assert.Equal(t, subID, s.ID)
				assert.Equal(t, bob, s.Submitter)
			},
		},
		"submissions of bounty": {
			path: []string{types.QuerySubmissions, "1"},
			assert: func(t *testing.T, bz []byte) {
				var ss []types.Submission
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &ss))
				require.Len(t, ss, 1)
				assert.Equal(t, subID, ss[0].ID)
			},
		},
		"params": {
			path: []string{types.QueryParams},
			assert: func(t *testing.T, bz []byte) {
				var got types.Params
				require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &got))
				assert.Equal(t, types.DefaultParams().MinDeposit.String(), got.MinDeposit.String())
			},
		},
		"unknown bounty":                {path: []string{types.QueryBounty, "2"}, expErr: tbtypes.ErrNotFound},
		"unknown submission":            {path: []string{types.QuerySubmission, "2"}, expErr: tbtypes.ErrNotFound},
		"submissions of unknown bounty": {path: []string{types.QuerySubmissions, "2"}, expErr: tbtypes.ErrNotFound},
		"invalid id":                    {path: []string{types.QueryBounty, "x"}, expErr: tbtypes.ErrInvalidInput},
		"missing id":                    {path: []string{types.QueryBounty}, expErr: tbtypes.ErrInvalidInput},
		"unknown endpoint":              {path: []string{"foo"}, expErr: sdkerrors.ErrUnknownRequest},
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
