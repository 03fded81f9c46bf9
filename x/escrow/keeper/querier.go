package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/escrow/types"
)

// NewLegacyQuerier serves the escrow state under custom/escrow/<endpoint>/<args>
func NewLegacyQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, _ abci.RequestQuery) ([]byte, error) {
		var rsp interface{}
		switch path[0] {
		case types.QueryEntry:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected bounty id")
			}
			id, err := strconv.ParseUint(path[1], 10, 64)
			if err != nil {
				return nil, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "bounty id %q", path[1])
			}
			e, ok := k.GetEntry(ctx, id)
			if !ok {
				return nil, sdkerrors.Wrapf(tbtypes.ErrNotFound, "escrow of bounty %d", id)
			}
			rsp = e
		case types.QueryEntries:
			var es []types.Entry
			k.IterateEntries(ctx, func(e types.Entry) bool {
				es = append(es, e)
				return false
			})
			rsp = es
		case types.QueryTotals:
			rsp = k.Totals(ctx)
		case types.QueryParams:
			rsp = k.GetParams(ctx)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown escrow query endpoint: %s", path[0])
		}
		return codec.MarshalJSONIndent(legacyQuerierCdc, rsp)
	}
}
