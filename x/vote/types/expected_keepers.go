package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// IDRegistry issues proposal ids
type IDRegistry interface {
	NextID(ctx sdk.Context, kind registrytypes.IDKind) (uint64, error)
	PeekID(ctx sdk.Context, kind registrytypes.IDKind) uint64
}

// OrgKeeper provides the share tables proposals are voted with
type OrgKeeper interface {
	GetOrganization(ctx sdk.Context, orgID uint64) (orgtypes.Organization, bool)
	IterateMembers(ctx sdk.Context, orgID uint64, cb func(m orgtypes.Member) bool)
}
