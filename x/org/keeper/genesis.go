package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// InitGenesis restores organizations with their share tables. The genesis state must be
// validated before. Organization ids must have been issued by the registry already.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	next := k.registry.PeekID(ctx, registrytypes.KindOrganization)
	for _, o := range data.Organizations {
		if o.Organization.ID >= next {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d not issued by registry, next id %d", o.Organization.ID, next)
		}
		k.setOrganization(ctx, o.Organization)
		for _, m := range o.Members {
			k.setShares(ctx, o.Organization.ID, m.Address, m.Shares)
		}
	}
	return nil
}

// ExportGenesis dumps all organizations with their share tables
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	var r types.GenesisState
	k.IterateOrganizations(ctx, func(org types.Organization) bool {
		r.Organizations = append(r.Organizations, types.GenesisOrganization{
			Organization: org,
			Members:      k.GetMembers(ctx, org.ID),
		})
		return false
	})
	return &r
}
