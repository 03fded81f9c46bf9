package types

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"

	orgtypes "github.com/confio/tbounty/x/org/types"
)

func TestTally(t *testing.T) {
	specs := map[string]struct {
		policy                  orgtypes.ThresholdPolicy
		yes, no, abstain, total uint64
		exp                     ProposalStatus
	}{
		"majority passes above half": {
			policy: orgtypes.Majority(), yes: 51, total: 100, exp: ProposalStatusPassed,
		},
		"majority open at half": {
			policy: orgtypes.Majority(), yes: 50, total: 100, exp: ProposalStatusOpen,
		},
		"majority passes odd total": {
			policy: orgtypes.Majority(), yes: 2, total: 3, exp: ProposalStatusPassed,
		},
		"majority fails at half no": {
			policy: orgtypes.Majority(), no: 50, total: 100, exp: ProposalStatusFailed,
		},
		"majority open below half no": {
			policy: orgtypes.Majority(), no: 49, total: 100, exp: ProposalStatusOpen,
		},
		"supermajority exclusive passes at 67 of 100": {
			policy: orgtypes.SuperMajority(2, 3), yes: 67, total: 100, exp: ProposalStatusPassed,
		},
		"supermajority exclusive open at 66 of 100": {
			policy: orgtypes.SuperMajority(2, 3), yes: 66, total: 100, exp: ProposalStatusOpen,
		},
		"supermajority exclusive open at exact boundary": {
			policy: orgtypes.SuperMajority(2, 3), yes: 66, total: 99, exp: ProposalStatusOpen,
		},
		"supermajority inclusive passes at exact boundary": {
			policy: orgtypes.InclusiveSuperMajority(2, 3), yes: 66, total: 99, exp: ProposalStatusPassed,
		},
		"supermajority inclusive open at 66 of 100": {
			policy: orgtypes.InclusiveSuperMajority(2, 3), yes: 66, total: 100, exp: ProposalStatusOpen,
		},
		"supermajority exclusive fails when 67 yes impossible": {
			policy: orgtypes.SuperMajority(2, 3), no: 34, total: 100, exp: ProposalStatusFailed,
		},
		"supermajority exclusive open with 33 no": {
			policy: orgtypes.SuperMajority(2, 3), no: 33, total: 100, exp: ProposalStatusOpen,
		},
		"supermajority exclusive fails at boundary no": {
			policy: orgtypes.SuperMajority(2, 3), no: 33, total: 99, exp: ProposalStatusFailed,
		},
		"supermajority inclusive open at boundary no": {
			policy: orgtypes.InclusiveSuperMajority(2, 3), no: 33, total: 99, exp: ProposalStatusOpen,
		},
		"inclusive supermajority of one open": {
			policy: orgtypes.InclusiveSuperMajority(1, 1), yes: 9, total: 10, exp: ProposalStatusOpen,
		},
		"inclusive supermajority of one passes with all": {
			policy: orgtypes.InclusiveSuperMajority(1, 1), yes: 10, total: 10, exp: ProposalStatusPassed,
		},
		"unanimous passes with all": {
			policy: orgtypes.Unanimous(), yes: 10, total: 10, exp: ProposalStatusPassed,
		},
		"unanimous open": {
			policy: orgtypes.Unanimous(), yes: 9, total: 10, exp: ProposalStatusOpen,
		},
		"unanimous fails on any no": {
			policy: orgtypes.Unanimous(), yes: 9, no: 1, total: 10, exp: ProposalStatusFailed,
		},
		"undefined policy never passes": {
			policy: orgtypes.ThresholdPolicy{}, yes: 10, total: 10, exp: ProposalStatusFailed,
		},
		"abstention does not count as yes": {
			policy: orgtypes.Majority(), yes: 50, abstain: 10, total: 100, exp: ProposalStatusOpen,
		},
		"abstention blocks like no": {
			policy: orgtypes.Majority(), no: 40, abstain: 10, total: 100, exp: ProposalStatusFailed,
		},
		"unanimous fails on abstention": {
			policy: orgtypes.Unanimous(), yes: 9, abstain: 1, total: 10, exp: ProposalStatusFailed,
		},
		"quorum not reached keeps open": {
			policy: orgtypes.Majority().WithQuorum(3, 4), yes: 60, total: 100, exp: ProposalStatusOpen,
		},
		"quorum reached with no votes": {
			policy: orgtypes.Majority().WithQuorum(3, 4), yes: 60, no: 15, total: 100, exp: ProposalStatusPassed,
		},
		"quorum reached with abstention": {
			policy: orgtypes.Majority().WithQuorum(3, 4), yes: 60, abstain: 15, total: 100, exp: ProposalStatusPassed,
		},
		"quorum one below": {
			policy: orgtypes.Majority().WithQuorum(3, 4), yes: 60, abstain: 14, total: 100, exp: ProposalStatusOpen,
		},
		"quorum does not fail early": {
			policy: orgtypes.Majority().WithQuorum(1, 1), yes: 51, total: 100, exp: ProposalStatusOpen,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			got := Tally(spec.policy, sdk.NewUint(spec.yes), sdk.NewUint(spec.no), sdk.NewUint(spec.abstain), sdk.NewUint(spec.total))
			assert.Equal(t, spec.exp, got)
		})
	}
}

func TestTallyMonotonic(t *testing.T) {
	// once passed, more yes shares never change the outcome
	policy := orgtypes.SuperMajority(2, 3)
	total := sdk.NewUint(100)
	passed := false
	for yes := uint64(0); yes <= 100; yes++ {
		got := Tally(policy, sdk.NewUint(yes), sdk.ZeroUint(), sdk.ZeroUint(), total)
		if passed {
			assert.Equal(t, ProposalStatusPassed, got, "yes=%d", yes)
		}
		passed = got == ProposalStatusPassed
	}
	assert.True(t, passed)
}
