package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

func TestGenesisExportImport(t *testing.T) {
	srcCtx, srcKeepers := CreateTestInput(t)
	k := srcKeepers.BountyKeeper
	alice, bob := RandomAddress(t), RandomAddress(t)
	Fund(t, srcCtx, srcKeepers, alice, 1000)
	first := postBounty(t, srcCtx, srcKeepers, alice, 100, 0)
	second := postBounty(t, srcCtx, srcKeepers, alice, 200, 0)
	require.NoError(t, k.ApproveSubmission(srcCtx, alice, submit(t, srcCtx, srcKeepers, first, bob, 30)))
	_, err := k.ReviewSubmission(srcCtx, alice, submit(t, srcCtx, srcKeepers, second, bob, 50), 0)
	require.NoError(t, err)
	submit(t, srcCtx, srcKeepers, second, bob, 10)

	exported := k.ExportGenesis(srcCtx)
	require.NoError(t, types.ValidateGenesis(*exported))
	assert.Len(t, exported.Bounties, 2)
	assert.Len(t, exported.Submissions, 3)
	bz, err := types.ModuleCdc.MarshalJSON(exported)
	require.NoError(t, err)

	var imported types.GenesisState
	require.NoError(t, types.ModuleCdc.UnmarshalJSON(bz, &imported))
	dstCtx, dstKeepers := CreateTestInput(t)
	dstKeepers.RegistryKeeper.InitGenesis(dstCtx, srcKeepers.RegistryKeeper.ExportGenesis(srcCtx))
	require.NoError(t, dstKeepers.BountyKeeper.InitGenesis(dstCtx, imported))

	reExported, err := types.ModuleCdc.MarshalJSON(dstKeepers.BountyKeeper.ExportGenesis(dstCtx))
	require.NoError(t, err)
	assert.JSONEq(t, string(bz), string(reExported))

	var got []types.Submission
	dstKeepers.BountyKeeper.IterateBountySubmissions(dstCtx, second, func(s types.Submission) bool {
		got = append(got, s)
		return false
	})
	assert.Len(t, got, 2, "bounty index restored")
}

func TestInitGenesisRequiresIssuedIDs(t *testing.T) {
	alice := RandomAddress(t)
	b := types.Bounty{
		ID:                 1,
		Depositer:          alice,
		TotalFundsReserved: sdk.NewInt(10),
		ContentHash:        TestContentHash(1),
		State:              types.BountyStateLive,
		SubmissionCount:    1,
	}
	s := types.Submission{
		ID:              1,
		BountyID:        1,
		Submitter:       alice,
		AmountRequested: sdk.NewInt(5),
		ContentHash:     TestContentHash(2),
		State:           types.SubmissionStateSubmitted,
	}

	specs := map[string]struct {
		issueBounty     bool
		issueSubmission bool
		expErr          error
	}{
		"ids issued":            {issueBounty: true, issueSubmission: true},
		"bounty not issued":     {issueSubmission: true, expErr: tbtypes.ErrInvalidInput},
		"submission not issued": {issueBounty: true, expErr: tbtypes.ErrInvalidInput},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateTestInput(t)
			if spec.issueBounty {
				_, err := keepers.RegistryKeeper.NextID(ctx, registrytypes.KindBounty)
				require.NoError(t, err)
			}
			if spec.issueSubmission {
				_, err := keepers.RegistryKeeper.NextID(ctx, registrytypes.KindSubmission)
				require.NoError(t, err)
			}
			gotErr := keepers.BountyKeeper.InitGenesis(ctx, types.GenesisState{
				Params:      types.DefaultParams(),
				Bounties:    []types.Bounty{b},
				Submissions: []types.Submission{s},
			})
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			_, ok := keepers.BountyKeeper.GetSubmission(ctx, 1)
			assert.True(t, ok)
		})
	}
}
