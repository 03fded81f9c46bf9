package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

// vote params default values, in blocks
const (
	DefaultVotingPeriod    int64 = 100
	DefaultMaxVotingPeriod int64 = 100_000
)

var (
	KeyVotingPeriod    = []byte("VotingPeriod")
	KeyMaxVotingPeriod = []byte("MaxVotingPeriod")
)

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the vote module
type Params struct {
	// VotingPeriod is used when a proposal is submitted without an explicit expiry
	VotingPeriod int64 `json:"voting_period" yaml:"voting_period"`
	// MaxVotingPeriod caps the distance between submission and expiry
	MaxVotingPeriod int64 `json:"max_voting_period" yaml:"max_voting_period"`
}

// ParamKeyTable for vote module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// NewParams creates a new Params instance
func NewParams(votingPeriod, maxVotingPeriod int64) Params {
	return Params{VotingPeriod: votingPeriod, MaxVotingPeriod: maxVotingPeriod}
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return NewParams(DefaultVotingPeriod, DefaultMaxVotingPeriod)
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyVotingPeriod, &p.VotingPeriod, validatePeriod),
		paramtypes.NewParamSetPair(KeyMaxVotingPeriod, &p.MaxVotingPeriod, validatePeriod),
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate validate a set of params
func (p Params) Validate() error {
	if err := validatePeriod(p.VotingPeriod); err != nil {
		return sdkerrors.Wrap(err, "voting period")
	}
	if err := validatePeriod(p.MaxVotingPeriod); err != nil {
		return sdkerrors.Wrap(err, "max voting period")
	}
	if p.VotingPeriod > p.MaxVotingPeriod {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "voting period exceeds max voting period")
	}
	return nil
}

func validatePeriod(i interface{}) error {
	v, ok := i.(int64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v <= 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "must be positive")
	}
	return nil
}
