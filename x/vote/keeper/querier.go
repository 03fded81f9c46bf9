package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/vote/types"
)

// NewLegacyQuerier serves the vote state under custom/vote/<endpoint>/<args>
func NewLegacyQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, _ abci.RequestQuery) ([]byte, error) {
		var rsp interface{}
		switch path[0] {
		case types.QueryParams:
			rsp = k.GetParams(ctx)
		case types.QueryProposals:
			var ps []types.Proposal
			k.IterateProposals(ctx, func(p types.Proposal) bool {
				ps = append(ps, p)
				return false
			})
			rsp = ps
		case types.QueryProposal, types.QueryBallots, types.QuerySnapshot:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected proposal id")
			}
			id, err := strconv.ParseUint(path[1], 10, 64)
			if err != nil {
				return nil, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal id %q", path[1])
			}
			p, ok := k.GetProposal(ctx, id)
			if !ok {
				return nil, sdkerrors.Wrapf(tbtypes.ErrNotFound, "proposal %d", id)
			}
			switch path[0] {
			case types.QueryProposal:
				rsp = p
			case types.QueryBallots:
				var bs []types.Ballot
				k.IterateBallots(ctx, id, func(b types.Ballot) bool {
					bs = append(bs, b)
					return false
				})
				rsp = bs
			default:
				var ms []orgtypes.Member
				k.IterateSnapshot(ctx, id, func(m orgtypes.Member) bool {
					ms = append(ms, m)
					return false
				})
				rsp = ms
			}
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown vote query endpoint: %s", path[0])
		}
		return codec.MarshalJSONIndent(legacyQuerierCdc, rsp)
	}
}
