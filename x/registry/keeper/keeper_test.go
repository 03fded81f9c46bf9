package keeper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/registry/types"
)

func TestNextID(t *testing.T) {
	ctx, k := CreateTestInput(t)

	for exp := uint64(1); exp <= 3; exp++ {
		got, err := k.NextID(ctx, types.KindBounty)
		require.NoError(t, err)
		assert.Equal(t, exp, got)
	}
	// sequences are independent
	got, err := k.NextID(ctx, types.KindOrganization)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)
	assert.Equal(t, uint64(4), k.PeekID(ctx, types.KindBounty))
	assert.Equal(t, uint64(1), k.PeekID(ctx, types.KindSubmission))
}

func TestNextIDErrors(t *testing.T) {
	specs := map[string]struct {
		kind   types.IDKind
		last   uint64
		expErr error
	}{
		"unknown kind": {
			kind:   types.IDKind("foo"),
			expErr: tbtypes.ErrInvalidInput,
		},
		"exhausted": {
			kind:   types.KindProposal,
			last:   math.MaxUint64,
			expErr: tbtypes.ErrOverflow,
		},
		"last before exhausted": {
			kind: types.KindProposal,
			last: math.MaxUint64 - 1,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, k := CreateTestInput(t)
			if spec.last != 0 {
				k.setLastID(ctx, spec.kind, spec.last)
			}
			got, gotErr := k.NextID(ctx, spec.kind)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, spec.last, k.lastID(ctx, spec.kind))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, uint64(math.MaxUint64), got)
		})
	}
}

func TestGenesisRoundTrip(t *testing.T) {
	ctx, k := CreateTestInput(t)
	for i := 0; i < 5; i++ {
		_, err := k.NextID(ctx, types.KindSubmission)
		require.NoError(t, err)
	}
	_, err := k.NextID(ctx, types.KindOrganization)
	require.NoError(t, err)

	exported := k.ExportGenesis(ctx)
	require.NoError(t, types.ValidateGenesis(exported))

	newCtx, newK := CreateTestInput(t)
	newK.InitGenesis(newCtx, exported)
	got, err := newK.NextID(newCtx, types.KindSubmission)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), got)
	assert.Equal(t, uint64(1), newK.PeekID(newCtx, types.KindBounty))
}
