package app

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"

	bountykeeper "github.com/confio/tbounty/x/bounty/keeper"
	escrowkeeper "github.com/confio/tbounty/x/escrow/keeper"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	votekeeper "github.com/confio/tbounty/x/vote/keeper"
)

// TestSupport exposes the app internals to tests of other packages
type TestSupport struct {
	t   *testing.T
	app *TbountyApp
}

func NewTestSupport(t *testing.T, app *TbountyApp) *TestSupport {
	return &TestSupport{t: t, app: app}
}

func (s TestSupport) BankKeeper() bankkeeper.Keeper {
	return s.app.bankKeeper
}

func (s TestSupport) OrgKeeper() orgkeeper.Keeper {
	return s.app.orgKeeper
}

func (s TestSupport) VoteKeeper() votekeeper.Keeper {
	return s.app.voteKeeper
}

func (s TestSupport) EscrowKeeper() escrowkeeper.Keeper {
	return s.app.escrowKeeper
}

func (s TestSupport) BountyKeeper() bountykeeper.Keeper {
	return s.app.bountyKeeper
}

// AssertInvariants fails the test when any registered invariant is broken
func (s TestSupport) AssertInvariants(ctx sdk.Context) {
	s.t.Helper()
	for _, route := range s.app.crisisKeeper.Routes() {
		if msg, broken := route.Invar(ctx); broken {
			s.t.Fatalf("broken invariant %s: %s", route.FullRoute(), msg)
		}
	}
}
