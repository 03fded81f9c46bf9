package types

import (
	"fmt"
	"strconv"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// PolicyKind selects the threshold rule an organization votes with
type PolicyKind int32

const (
	PolicyKindUndefined     PolicyKind = 0
	PolicyKindMajority      PolicyKind = 1
	PolicyKindSuperMajority PolicyKind = 2
	PolicyKindUnanimous     PolicyKind = 3
)

var policyKindNames = map[PolicyKind]string{
	PolicyKindUndefined:     "undefined",
	PolicyKindMajority:      "majority",
	PolicyKindSuperMajority: "supermajority",
	PolicyKindUnanimous:     "unanimous",
}

func (k PolicyKind) String() string {
	if s, ok := policyKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("policy(%d)", int32(k))
}

// ThresholdPolicy is the rule deciding which yes share total passes a proposal.
// Numerator and Denominator are only used by SuperMajority. Inclusive turns the strict
// SuperMajority comparison `yes*d > total*n` into `yes*d >= total*n`.
//
// An optional quorum is the fraction of the total that must have turned out (yes, no or
// abstain) before a proposal can pass. Zero values mean no quorum.
type ThresholdPolicy struct {
	Kind              PolicyKind `json:"kind" yaml:"kind"`
	Numerator         uint64     `json:"numerator,omitempty" yaml:"numerator"`
	Denominator       uint64     `json:"denominator,omitempty" yaml:"denominator"`
	Inclusive         bool       `json:"inclusive,omitempty" yaml:"inclusive"`
	QuorumNumerator   uint64     `json:"quorum_numerator,omitempty" yaml:"quorum_numerator"`
	QuorumDenominator uint64     `json:"quorum_denominator,omitempty" yaml:"quorum_denominator"`
}

func Majority() ThresholdPolicy {
	return ThresholdPolicy{Kind: PolicyKindMajority}
}

func SuperMajority(n, d uint64) ThresholdPolicy {
	return ThresholdPolicy{Kind: PolicyKindSuperMajority, Numerator: n, Denominator: d}
}

func InclusiveSuperMajority(n, d uint64) ThresholdPolicy {
	p := SuperMajority(n, d)
	p.Inclusive = true
	return p
}

func Unanimous() ThresholdPolicy {
	return ThresholdPolicy{Kind: PolicyKindUnanimous}
}

// WithQuorum returns a copy of the policy that requires a turnout of n/d of the total
func (p ThresholdPolicy) WithQuorum(n, d uint64) ThresholdPolicy {
	p.QuorumNumerator, p.QuorumDenominator = n, d
	return p
}

// HasQuorum returns true when a minimum turnout is required
func (p ThresholdPolicy) HasQuorum() bool {
	return p.QuorumDenominator != 0
}

// ValidateBasic checks the policy is one of the known rules with a fraction in (0, 1]
func (p ThresholdPolicy) ValidateBasic() error {
	if p.QuorumNumerator != 0 || p.QuorumDenominator != 0 {
		if p.QuorumNumerator == 0 || p.QuorumDenominator == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "quorum fraction must not be zero")
		}
		if p.QuorumNumerator > p.QuorumDenominator {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "quorum must not exceed 1")
		}
	}
	switch p.Kind {
	case PolicyKindMajority, PolicyKindUnanimous:
		if p.Numerator != 0 || p.Denominator != 0 || p.Inclusive {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "%s policy takes no fraction", p.Kind)
		}
		return nil
	case PolicyKindSuperMajority:
		if p.Numerator == 0 || p.Denominator == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "supermajority fraction must not be zero")
		}
		if p.Numerator > p.Denominator {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "supermajority fraction must not exceed 1")
		}
		if p.Numerator == p.Denominator && !p.Inclusive {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "exclusive supermajority of 1 can never pass")
		}
		return nil
	default:
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "unknown policy kind %d", p.Kind)
	}
}

func (p ThresholdPolicy) String() string {
	s := p.Kind.String()
	if p.Kind == PolicyKindSuperMajority {
		s = fmt.Sprintf("%s:%d/%d", p.Kind, p.Numerator, p.Denominator)
		if p.Inclusive {
			s += ":inclusive"
		}
	}
	if p.HasQuorum() {
		s += fmt.Sprintf(",quorum:%d/%d", p.QuorumNumerator, p.QuorumDenominator)
	}
	return s
}

// ParseThresholdPolicy reads the String representation: `majority`, `unanimous`,
// `supermajority:2/3` or `supermajority:2/3:inclusive`, each optionally followed by a
// turnout quorum like `,quorum:1/2`.
func ParseThresholdPolicy(s string) (ThresholdPolicy, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), ",", 2)
	p, err := parseRule(parts[0])
	if err != nil || len(parts) == 1 {
		return p, err
	}
	q := strings.TrimPrefix(parts[1], "quorum:")
	if q == parts[1] {
		return ThresholdPolicy{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "threshold policy %q", s)
	}
	n, d, ok := parseFraction(q)
	if !ok {
		return ThresholdPolicy{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "quorum %q", q)
	}
	p = p.WithQuorum(n, d)
	return p, p.ValidateBasic()
}

func parseFraction(s string) (uint64, uint64, bool) {
	frac := strings.Split(s, "/")
	if len(frac) != 2 {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(frac[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.ParseUint(frac[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return n, d, true
}

func parseRule(s string) (ThresholdPolicy, error) {
	parts := strings.Split(s, ":")
	switch parts[0] {
	case "majority":
		if len(parts) != 1 {
			break
		}
		return Majority(), nil
	case "unanimous":
		if len(parts) != 1 {
			break
		}
		return Unanimous(), nil
	case "supermajority":
		if len(parts) < 2 || len(parts) > 3 {
			break
		}
		n, d, ok := parseFraction(parts[1])
		if !ok {
			break
		}
		p := SuperMajority(n, d)
		if len(parts) == 3 {
			if parts[2] != "inclusive" {
				break
			}
			p.Inclusive = true
		}
		return p, p.ValidateBasic()
	}
	return ThresholdPolicy{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "threshold policy %q", s)
}
