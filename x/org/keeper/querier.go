package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
)

// NewLegacyQuerier serves the org state under custom/org/<endpoint>/<args>
func NewLegacyQuerier(k Keeper, legacyQuerierCdc *codec.LegacyAmino) sdk.Querier {
	return func(ctx sdk.Context, path []string, _ abci.RequestQuery) ([]byte, error) {
		var rsp interface{}
		switch path[0] {
		case types.QueryOrganization:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected org id")
			}
			orgID, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			if rsp, err = k.getOrganization(ctx, orgID); err != nil {
				return nil, err
			}
		case types.QueryOrganizations:
			var orgs []types.Organization
			k.IterateOrganizations(ctx, func(org types.Organization) bool {
				orgs = append(orgs, org)
				return false
			})
			rsp = orgs
		case types.QueryMembers:
			if len(path) != 2 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected org id")
			}
			orgID, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			if !k.HasOrganization(ctx, orgID) {
				return nil, sdkerrors.Wrapf(tbtypes.ErrNotFound, "org %d", orgID)
			}
			rsp = k.GetMembers(ctx, orgID)
		case types.QueryShares:
			if len(path) != 3 {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expected org id and address")
			}
			orgID, err := parseID(path[1])
			if err != nil {
				return nil, err
			}
			addr, err := sdk.AccAddressFromBech32(path[2])
			if err != nil {
				return nil, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "address")
			}
			total, err := k.TotalShares(ctx, orgID)
			if err != nil {
				return nil, err
			}
			rsp = types.QuerySharesResponse{OrgID: orgID, Address: addr, Shares: k.SharesOf(ctx, orgID, addr), TotalShares: total}
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown org query endpoint: %s", path[0])
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
