package org

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// proposalKeeper is a subset of the org Keeper that is needed to apply passed org changes
type proposalKeeper interface {
	ApplyMembershipChange(ctx sdk.Context, orgID uint64, changes []orgtypes.ShareDelta) error
	SetThresholdPolicy(ctx sdk.Context, orgID uint64, policy orgtypes.ThresholdPolicy) error
	DeactivateByProposal(ctx sdk.Context, orgID uint64) error
}

// NewProposalHandler creates the executor for passed OrgChange proposals. Share changes are
// applied first, then the new policy, then the deactivation.
func NewProposalHandler(k proposalKeeper) votetypes.Executor {
	return func(ctx sdk.Context, p votetypes.Proposal) error {
		c := p.Payload.OrgChange
		if p.Kind != votetypes.ProposalKindOrgChange || c == nil {
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "not an org change: %s", p.Kind)
		}
		if len(c.Changes) != 0 {
			if err := k.ApplyMembershipChange(ctx, p.OrgID, c.Changes); err != nil {
				return err
			}
		}
		if c.NewPolicy != nil {
			if err := k.SetThresholdPolicy(ctx, p.OrgID, *c.NewPolicy); err != nil {
				return err
			}
		}
		if c.Deactivate {
			return k.DeactivateByProposal(ctx, p.OrgID)
		}
		return nil
	}
}
