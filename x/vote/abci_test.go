package vote

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/vote/keeper"
	"github.com/confio/tbounty/x/vote/types"
)

func TestEndBlocker(t *testing.T) {
	ctx, keepers := keeper.CreateTestInput(t)
	alice, bob := orgkeeper.RandomAddress(t), orgkeeper.RandomAddress(t)
	orgID, err := keepers.OrgKeeper.Register(ctx, alice, []orgtypes.Member{orgtypes.NewMember(alice, 1), orgtypes.NewMember(bob, 1)}, orgtypes.Majority(), nil, tbtypes.ContentHash{}, 0)
	require.NoError(t, err)
	payload := types.ProposalPayload{BountyCancel: &types.BountyCancelPayload{BountyID: 1}}
	id, err := keepers.VoteKeeper.SubmitProposal(ctx, alice, orgID, types.ProposalKindBountyCancel, payload, ctx.BlockHeight()+1)
	require.NoError(t, err)

	EndBlocker(ctx, keepers.VoteKeeper)
	p, _ := keepers.VoteKeeper.GetProposal(ctx, id)
	assert.Equal(t, types.ProposalStatusOpen, p.Status)

	EndBlocker(ctx.WithBlockHeight(ctx.BlockHeight()+1), keepers.VoteKeeper)
	p, _ = keepers.VoteKeeper.GetProposal(ctx, id)
	assert.Equal(t, types.ProposalStatusFailed, p.Status)
}

func TestEndBlockerRecoversPanic(t *testing.T) {
	ctx, _ := keeper.CreateTestInput(t)
	assert.NotPanics(t, func() {
		EndBlocker(ctx, panickingKeeper{})
	})
}

type panickingKeeper struct{}

func (panickingKeeper) CloseAllExpired(ctx sdk.Context) {
	panic("testing")
}
