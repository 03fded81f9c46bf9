package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

var KeyMinDeposit = []byte("MinDeposit")

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the bounty module
type Params struct {
	// MinDeposit is the smallest amount a bounty can be posted with
	MinDeposit sdk.Int `json:"min_deposit" yaml:"min_deposit"`
}

// ParamKeyTable for bounty module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return Params{MinDeposit: sdk.OneInt()}
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyMinDeposit, &p.MinDeposit, validateMinDeposit),
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate validate a set of params
func (p Params) Validate() error {
	return validateMinDeposit(p.MinDeposit)
}

func validateMinDeposit(i interface{}) error {
	v, ok := i.(sdk.Int)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if !tbtypes.IsPositiveInt(v) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "min deposit must be positive")
	}
	return nil
}
