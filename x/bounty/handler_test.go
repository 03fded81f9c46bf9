package bounty

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confio/tbounty/x/bounty/keeper"
	"github.com/confio/tbounty/x/bounty/types"
)

// failingMsgServer runs the real transition and fails afterwards
type failingMsgServer struct {
	types.MsgServer
	err error
}

func (m failingMsgServer) PostBounty(ctx context.Context, msg *types.MsgPostBounty) (*types.MsgPostBountyResponse, error) {
	res, err := m.MsgServer.PostBounty(ctx, msg)
	if err != nil {
		return nil, err
	}
	return res, m.err
}

func TestHandlerIsAtomic(t *testing.T) {
	myErr := errors.New("testing")
	specs := map[string]struct {
		err       error
		expStored bool
		expFunds  int64
	}{
		"committed": {expStored: true, expFunds: 400},
		"reverted":  {err: myErr, expFunds: 500},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := keeper.CreateTestInput(t)
			alice := keeper.RandomAddress(t)
			keeper.Fund(t, ctx, keepers, alice, 500)
			h := newHandler(failingMsgServer{MsgServer: keeper.NewMsgServerImpl(keepers.BountyKeeper), err: spec.err})

			// when
			res, gotErr := h(ctx, &types.MsgPostBounty{
				Depositer:   alice.String(),
				Amount:      sdk.NewInt(100),
				ContentHash: keeper.TestContentHash(1),
			})

			// then
			if spec.err != nil {
				require.ErrorIs(t, gotErr, spec.err)
				assert.Nil(t, res)
			} else {
				require.NoError(t, gotErr)
				assert.NotEmpty(t, res.Events)
			}
			_, found := keepers.BountyKeeper.GetBounty(ctx, 1)
			assert.Equal(t, spec.expStored, found)
			assert.Equal(t, sdk.NewInt(spec.expFunds).String(), keeper.Balance(ctx, keepers, alice).String())
		})
	}
}
