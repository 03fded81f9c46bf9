package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	orgtypes "github.com/confio/tbounty/x/org/types"
)

// Tally evaluates a running vote against the snapshot total. It returns Passed once the yes
// shares meet the policy and the turnout meets the quorum, Failed once the no and abstaining
// shares make passing impossible, Open otherwise.
func Tally(policy orgtypes.ThresholdPolicy, yes, no, abstain, total sdk.Uint) ProposalStatus {
	turnout := yes.Add(no).Add(abstain)
	if passes(policy, yes, total) && quorumReached(policy, turnout, total) {
		return ProposalStatusPassed
	}
	// the best case for the proposal: every remaining share votes yes, so the quorum is met
	against := no.Add(abstain)
	if against.GT(total) || !passes(policy, total.Sub(against), total) {
		return ProposalStatusFailed
	}
	return ProposalStatusOpen
}

func quorumReached(policy orgtypes.ThresholdPolicy, turnout, total sdk.Uint) bool {
	if !policy.HasQuorum() {
		return true
	}
	return turnout.MulUint64(policy.QuorumDenominator).GTE(total.MulUint64(policy.QuorumNumerator))
}

func passes(policy orgtypes.ThresholdPolicy, yes, total sdk.Uint) bool {
	switch policy.Kind {
	case orgtypes.PolicyKindMajority:
		return yes.MulUint64(2).GT(total)
	case orgtypes.PolicyKindSuperMajority:
		lhs := yes.MulUint64(policy.Denominator)
		rhs := total.MulUint64(policy.Numerator)
		if policy.Inclusive {
			return lhs.GTE(rhs)
		}
		return lhs.GT(rhs)
	case orgtypes.PolicyKindUnanimous:
		return yes.Equal(total)
	default:
		return false
	}
}
