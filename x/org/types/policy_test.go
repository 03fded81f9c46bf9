package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbtypes "github.com/confio/tbounty/types"
)

func TestThresholdPolicyValidateBasic(t *testing.T) {
	specs := map[string]struct {
		src    ThresholdPolicy
		expErr bool
	}{
		"majority":                       {src: Majority()},
		"unanimous":                      {src: Unanimous()},
		"supermajority":                  {src: SuperMajority(2, 3)},
		"inclusive supermajority":        {src: InclusiveSuperMajority(2, 3)},
		"inclusive supermajority of one": {src: InclusiveSuperMajority(1, 1)},
		"exclusive supermajority of one": {src: SuperMajority(1, 1), expErr: true},
		"supermajority zero numerator":   {src: SuperMajority(0, 3), expErr: true},
		"supermajority zero denominator": {src: SuperMajority(1, 0), expErr: true},
		"supermajority greater than one": {src: SuperMajority(4, 3), expErr: true},
		"majority with fraction":         {src: ThresholdPolicy{Kind: PolicyKindMajority, Numerator: 1, Denominator: 2}, expErr: true},
		"unanimous with inclusive flag":  {src: ThresholdPolicy{Kind: PolicyKindUnanimous, Inclusive: true}, expErr: true},
		"undefined":                      {src: ThresholdPolicy{}, expErr: true},
		"unknown kind":                   {src: ThresholdPolicy{Kind: 99}, expErr: true},
		"majority with quorum":           {src: Majority().WithQuorum(1, 3)},
		"quorum of one":                  {src: Unanimous().WithQuorum(1, 1)},
		"quorum zero numerator":          {src: Majority().WithQuorum(0, 3), expErr: true},
		"quorum zero denominator":        {src: Majority().WithQuorum(1, 0), expErr: true},
		"quorum greater than one":        {src: Majority().WithQuorum(4, 3), expErr: true},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			gotErr := spec.src.ValidateBasic()
			if spec.expErr {
				require.ErrorIs(t, gotErr, tbtypes.ErrInvalidInput)
				return
			}
			require.NoError(t, gotErr)
		})
	}
}

func TestParseThresholdPolicy(t *testing.T) {
	specs := map[string]struct {
		src    string
		exp    ThresholdPolicy
		expErr bool
	}{
		"majority":                {src: "majority", exp: Majority()},
		"unanimous mixed case":    {src: " Unanimous ", exp: Unanimous()},
		"supermajority":           {src: "supermajority:2/3", exp: SuperMajority(2, 3)},
		"inclusive supermajority": {src: "supermajority:2/3:inclusive", exp: InclusiveSuperMajority(2, 3)},
		"unknown suffix":          {src: "supermajority:2/3:foo", expErr: true},
		"missing fraction":        {src: "supermajority", expErr: true},
		"bad fraction":            {src: "supermajority:2-3", expErr: true},
		"invalid fraction":        {src: "supermajority:3/2", expErr: true},
		"majority with args":      {src: "majority:1/2", expErr: true},
		"empty":                   {src: "", expErr: true},
		"majority with quorum":    {src: "majority,quorum:1/2", exp: Majority().WithQuorum(1, 2)},
		"supermajority quorum":    {src: "supermajority:2/3:inclusive,quorum:3/4", exp: InclusiveSuperMajority(2, 3).WithQuorum(3, 4)},
		"quorum without prefix":   {src: "majority,1/2", expErr: true},
		"invalid quorum":          {src: "majority,quorum:3/2", expErr: true},
		"bad rule with quorum":    {src: "majority:1/2,quorum:1/2", expErr: true},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			got, gotErr := ParseThresholdPolicy(spec.src)
			if spec.expErr {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, spec.exp, got)
			// and back
			again, err := ParseThresholdPolicy(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
