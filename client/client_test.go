package client

import (
	"context"
	"net/http/httptest"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/bytes"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/tbounty/internal/content"
	tbtypes "github.com/confio/tbounty/types"
	bountytypes "github.com/confio/tbounty/x/bounty/types"
)

func TestBroadcast(t *testing.T) {
	specs := map[string]struct {
		result *ctypes.ResultBroadcastTx
		expErr error
	}{
		"accepted": {
			result: &ctypes.ResultBroadcastTx{Hash: bytes.HexBytes{0x1}, Data: []byte("data")},
		},
		"tbounty error": {
			result: resultFromErr(sdkerrors.Wrap(tbtypes.ErrBountyClosed, "bounty 1")),
			expErr: tbtypes.ErrBountyClosed,
		},
		"sdk error": {
			result: resultFromErr(sdkerrors.ErrOutOfGas),
			expErr: sdkerrors.ErrOutOfGas,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			rpc := &rpcMock{broadcastResult: spec.result}
			c := NewWithRPC(rpc, nil)
			got, gotErr := c.Broadcast(context.Background(), []byte("tx"))
			assert.Equal(t, tmtypes.Tx("tx"), rpc.lastTx)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, "01", got.Hash)
			assert.Equal(t, []byte("data"), got.Data)
		})
	}
}

func TestQueryBounty(t *testing.T) {
	b := bountytypes.Bounty{
		ID:                 7,
		Depositer:          sdk.AccAddress(make([]byte, 20)),
		TotalFundsReserved: sdk.NewInt(100),
		ContentHash:        content.Sum([]byte("terms")),
		State:              bountytypes.BountyStateFunded,
	}
	bz, err := bountytypes.ModuleCdc.MarshalJSON(b)
	require.NoError(t, err)

	specs := map[string]struct {
		response abci.ResponseQuery
		expErr   error
	}{
		"found": {
			response: abci.ResponseQuery{Value: bz},
		},
		"not found": {
			response: queryResultFromErr(sdkerrors.Wrap(tbtypes.ErrNotFound, "bounty 7")),
			expErr:   tbtypes.ErrNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			rpc := &rpcMock{queryResponse: spec.response}
			got, gotErr := NewWithRPC(rpc, nil).Bounty(context.Background(), 7)
			assert.Equal(t, "custom/bounty/bounty/7", rpc.lastPath)
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, b.ID, got.ID)
			assert.Equal(t, b.ContentHash, got.ContentHash)
			assert.Equal(t, "100", got.TotalFundsReserved.String())
		})
	}
}

func TestResolveContent(t *testing.T) {
	store := content.NewStore(dbm.NewMemDB(), 1024)
	srv := httptest.NewServer(content.NewHandler(store, zerolog.Nop()))
	defer srv.Close()
	c := NewWithRPC(&rpcMock{}, content.NewResolver(srv.URL, srv.Client()))

	h, err := c.UploadContent(context.Background(), []byte("milestone"))
	require.NoError(t, err)
	got, err := c.ResolveContent(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, []byte("milestone"), got)
}

func resultFromErr(err error) *ctypes.ResultBroadcastTx {
	codespace, code, log := sdkerrors.ABCIInfo(err, false)
	return &ctypes.ResultBroadcastTx{Codespace: codespace, Code: code, Log: log}
}

func queryResultFromErr(err error) abci.ResponseQuery {
	codespace, code, log := sdkerrors.ABCIInfo(err, false)
	return abci.ResponseQuery{Codespace: codespace, Code: code, Log: log}
}

// rpcMock records the last request and returns canned results
type rpcMock struct {
	rpcclient.ABCIClient
	broadcastResult *ctypes.ResultBroadcastTx
	queryResponse   abci.ResponseQuery
	lastTx          tmtypes.Tx
	lastPath        string
}

func (m *rpcMock) BroadcastTxSync(_ context.Context, tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	m.lastTx = tx
	return m.broadcastResult, nil
}

func (m *rpcMock) ABCIQuery(_ context.Context, path string, _ bytes.HexBytes) (*ctypes.ResultABCIQuery, error) {
	m.lastPath = path
	return &ctypes.ResultABCIQuery{Response: m.queryResponse}, nil
}
