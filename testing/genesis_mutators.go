package testing

import (
	"encoding/json"
	"fmt"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

// SetGlobalMinFee set the passed coins to the global minimum fee
func SetGlobalMinFee(t *testing.T, fees ...sdk.DecCoin) GenesisMutator {
	return func(genesis []byte) []byte {
		t.Helper()
		coins := sdk.NewDecCoins(fees...)
		require.NoError(t, coins.Validate())
		val, err := json.Marshal(coins)
		require.NoError(t, err)
		state, err := sjson.SetRawBytes(genesis, "app_state.globalfee.params.minimum_gas_prices", val)
		require.NoError(t, err)
		return state
	}
}

// SetVotingPeriod sets the default voting period of new proposals in seconds
func SetVotingPeriod(t *testing.T, seconds int64) GenesisMutator {
	return func(genesis []byte) []byte {
		t.Helper()
		state, err := sjson.SetRawBytes(genesis, "app_state.vote.params.voting_period", []byte(fmt.Sprintf(`"%d"`, seconds)))
		require.NoError(t, err)
		return state
	}
}

// SetBountyMinDeposit sets the minimum amount a bounty must be posted with
func SetBountyMinDeposit(t *testing.T, amount int64) GenesisMutator {
	return func(genesis []byte) []byte {
		t.Helper()
		state, err := sjson.SetBytes(genesis, "app_state.bounty.params.min_deposit", sdk.NewInt(amount).String())
		require.NoError(t, err)
		return state
	}
}
