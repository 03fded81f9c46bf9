package globalfee

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"

	"github.com/confio/tbounty/x/globalfee/types"
)

var _ sdk.AnteDecorator = GlobalMinimumChainFeeDecorator{}

// paramSource is a read only subset of paramtypes.Subspace
type paramSource interface {
	Get(ctx sdk.Context, key []byte, ptr interface{})
	Has(ctx sdk.Context, key []byte) bool
}

// GlobalMinimumChainFeeDecorator rejects transactions paying less than the chain wide minimum gas prices.
// Unlike the node local min fee it also applies in deliverTx.
type GlobalMinimumChainFeeDecorator struct {
	paramSource paramSource
}

// NewGlobalMinimumChainFeeDecorator constructor
func NewGlobalMinimumChainFeeDecorator(paramSpace paramtypes.Subspace) GlobalMinimumChainFeeDecorator {
	if !paramSpace.HasKeyTable() {
		panic("paramspace was not set up via module")
	}
	return GlobalMinimumChainFeeDecorator{paramSource: paramSpace}
}

// AnteHandle checks the tx fee against the minimum gas prices times the gas limit
func (g GlobalMinimumChainFeeDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	if simulate || !g.paramSource.Has(ctx, types.ParamStoreKeyMinGasPrices) {
		return next(ctx, tx, simulate)
	}
	feeTx, ok := tx.(sdk.FeeTx)
	if !ok {
		return ctx, sdkerrors.Wrap(sdkerrors.ErrTxDecode, "tx must be a sdk FeeTx")
	}
	var minGasPrices sdk.DecCoins
	g.paramSource.Get(ctx, types.ParamStoreKeyMinGasPrices, &minGasPrices)
	if minGasPrices.IsZero() {
		return next(ctx, tx, simulate)
	}
	if required := RequiredFees(minGasPrices, feeTx.GetGas()); !feeTx.GetFee().IsAnyGTE(required) {
		return ctx, sdkerrors.Wrapf(sdkerrors.ErrInsufficientFee, "got: %s required: %s", feeTx.GetFee(), required)
	}
	return next(ctx, tx, simulate)
}

// RequiredFees is ceil(minGasPrice * gasLimit) per denom
func RequiredFees(minGasPrices sdk.DecCoins, gas uint64) sdk.Coins {
	glDec := sdk.NewDec(int64(gas))
	r := make(sdk.Coins, len(minGasPrices))
	for i, gp := range minGasPrices {
		r[i] = sdk.NewCoin(gp.Denom, gp.Amount.Mul(glDec).Ceil().RoundInt())
	}
	return r.Sort()
}
