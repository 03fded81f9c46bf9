package globalfee

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/x/auth/legacy/legacytx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confio/tbounty/x/globalfee/types"
)

func TestGlobalMinimumChainFeeAnteHandler(t *testing.T) {
	specs := map[string]struct {
		setupStore func(s *paramSourceMock)
		fee        sdk.Coins
		gas        uint64
		simulate   bool
		expErr     *sdkerrors.Error
	}{
		"no param set": {
			setupStore: func(s *paramSourceMock) {},
			fee:        sdk.NewCoins(),
			gas:        100,
		},
		"empty min prices": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.DecCoins{}) },
			fee:        sdk.NewCoins(),
			gas:        100,
		},
		"fee equals required": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.NewDecCoins(sdk.NewDecCoinFromDec("utbounty", sdk.NewDecWithPrec(5, 1)))) },
			fee:        sdk.NewCoins(sdk.NewInt64Coin("utbounty", 50)),
			gas:        100,
		},
		"fee rounds up": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.NewDecCoins(sdk.NewDecCoinFromDec("utbounty", sdk.NewDecWithPrec(5, 1)))) },
			fee:        sdk.NewCoins(sdk.NewInt64Coin("utbounty", 50)),
			gas:        101,
			expErr:     sdkerrors.ErrInsufficientFee,
		},
		"any denom is enough": {
			setupStore: func(s *paramSourceMock) {
				s.set(sdk.NewDecCoins(sdk.NewInt64DecCoin("alx", 1), sdk.NewInt64DecCoin("utbounty", 1)))
			},
			fee: sdk.NewCoins(sdk.NewInt64Coin("utbounty", 100)),
			gas: 100,
		},
		"fee too low": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.NewDecCoins(sdk.NewInt64DecCoin("utbounty", 1))) },
			fee:        sdk.NewCoins(sdk.NewInt64Coin("utbounty", 99)),
			gas:        100,
			expErr:     sdkerrors.ErrInsufficientFee,
		},
		"wrong denom": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.NewDecCoins(sdk.NewInt64DecCoin("utbounty", 1))) },
			fee:        sdk.NewCoins(sdk.NewInt64Coin("alx", 1000)),
			gas:        100,
			expErr:     sdkerrors.ErrInsufficientFee,
		},
		"simulation skips check": {
			setupStore: func(s *paramSourceMock) { s.set(sdk.NewDecCoins(sdk.NewInt64DecCoin("utbounty", 1))) },
			fee:        sdk.NewCoins(),
			gas:        100,
			simulate:   true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			src := &paramSourceMock{}
			spec.setupStore(src)
			decorator := GlobalMinimumChainFeeDecorator{paramSource: src}
			tx := legacytx.StdTx{Fee: legacytx.NewStdFee(spec.gas, spec.fee)}

			var nextCalled bool
			next := func(ctx sdk.Context, tx sdk.Tx, simulate bool) (sdk.Context, error) {
				nextCalled = true
				return ctx, nil
			}
			_, gotErr := decorator.AnteHandle(sdk.Context{}, tx, spec.simulate, next)
			if spec.expErr != nil {
				require.Error(t, gotErr)
				assert.True(t, spec.expErr.Is(gotErr), "got %s", gotErr)
				assert.False(t, nextCalled)
				return
			}
			require.NoError(t, gotErr)
			assert.True(t, nextCalled)
		})
	}
}

type paramSourceMock struct {
	prices *sdk.DecCoins
}

func (m *paramSourceMock) set(p sdk.DecCoins) {
	m.prices = &p
}

func (m paramSourceMock) Get(_ sdk.Context, key []byte, ptr interface{}) {
	if string(key) != string(types.ParamStoreKeyMinGasPrices) {
		panic("unexpected key")
	}
	*(ptr.(*sdk.DecCoins)) = *m.prices
}

func (m paramSourceMock) Has(_ sdk.Context, key []byte) bool {
	return string(key) == string(types.ParamStoreKeyMinGasPrices) && m.prices != nil
}
