package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
)

// NewLegacyQuerier serves the bounty state under custom/bounty/<endpoint>/<args>
func NewLegacyQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, _ abci.RequestQuery) ([]byte, error) {
		var rsp interface{}
		switch path[0] {
		case types.QueryBounty:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected bounty id")
			}
			id, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			if rsp, err = k.getBounty(ctx, id); err != nil {
				return nil, err
			}
		case types.QueryBounties:
			bounties := make([]types.Bounty, 0)
			k.IterateBounties(ctx, func(b types.Bounty) bool {
				bounties = append(bounties, b)
				return false
			})
			rsp = bounties
		case types.QuerySubmission:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected submission id")
			}
			id, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			s, ok := k.GetSubmission(ctx, id)
			if !ok {
				return nil, sdkerrors.Wrapf(tbtypes.ErrNotFound, "submission %d", id)
			}
			rsp = s
		case types.QuerySubmissions:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected bounty id")
			}
			id, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			if _, err := k.getBounty(ctx, id); err != nil {
				return nil, err
			}
			submissions := make([]types.Submission, 0)
			k.IterateBountySubmissions(ctx, id, func(s types.Submission) bool {
				submissions = append(submissions, s)
				return false
			})
			rsp = submissions
		case types.QueryParams:
			rsp = k.GetParams(ctx)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown bounty query endpoint: %s", path[0])
		}
		return codec.MarshalJSONIndent(legacyQuerierCdc, rsp)
	}
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "id %q", s)
	}
	return id, nil
}
