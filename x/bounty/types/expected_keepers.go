package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// IDRegistry issues bounty and submission ids
type IDRegistry interface {
	NextID(ctx sdk.Context, kind registrytypes.IDKind) (uint64, error)
	PeekID(ctx sdk.Context, kind registrytypes.IDKind) uint64
}

// OrgKeeper resolves sponsoring organizations
type OrgKeeper interface {
	GetOrganization(ctx sdk.Context, orgID uint64) (orgtypes.Organization, bool)
	SharesOf(ctx sdk.Context, orgID uint64, addr sdk.AccAddress) sdk.Uint
}

// VoteKeeper opens and reads the proposals governing sponsored bounties
type VoteKeeper interface {
	SubmitProposal(
		ctx sdk.Context,
		proposer sdk.AccAddress,
		orgID uint64,
		kind votetypes.ProposalKind,
		payload votetypes.ProposalPayload,
		expiry int64,
	) (uint64, error)
	GetProposal(ctx sdk.Context, proposalID uint64) (votetypes.Proposal, bool)
}

// EscrowKeeper holds the bounty funds
type EscrowKeeper interface {
	Reserve(ctx sdk.Context, bountyID uint64, from sdk.AccAddress, amount sdk.Int) error
	ReleaseTo(ctx sdk.Context, bountyID uint64, recipient sdk.AccAddress, amount sdk.Int) error
	RefundRemainder(ctx sdk.Context, bountyID uint64) (sdk.Int, error)
	ReservedBalance(ctx sdk.Context, bountyID uint64) sdk.Int
}
