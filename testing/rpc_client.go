package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	client "github.com/tendermint/tendermint/rpc/client/http"
	tmtypes "github.com/tendermint/tendermint/types"
)

// RPCClient queries a node via the tendermint RPC endpoint.
type RPCClient struct {
	client *client.HTTP
	t      *testing.T
}

func NewRPCClient(t *testing.T, addr string) RPCClient {
	httpClient, err := client.New(addr, "/websocket")
	require.NoError(t, err)
	return RPCClient{client: httpClient, t: t}
}

// Validators returns the active validator set at the latest height
func (r RPCClient) Validators() []*tmtypes.Validator {
	v, err := r.client.Validators(context.Background(), nil, nil, nil)
	require.NoError(r.t, err)
	return v.Validators
}

// ValidatorPowers returns the voting power by validator consensus address
func (r RPCClient) ValidatorPowers() map[string]int64 {
	powers := make(map[string]int64)
	for _, v := range r.Validators() {
		powers[v.Address.String()] = v.VotingPower
	}
	return powers
}
