package bounty

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// proposalKeeper is a subset of the bounty Keeper that is needed to apply passed org decisions
type proposalKeeper interface {
	ApproveSubmissionByOrg(ctx sdk.Context, orgID uint64, proposalID uint64, submissionID uint64) error
	PayoutByOrg(ctx sdk.Context, orgID uint64, bountyID uint64, recipient sdk.AccAddress, amount sdk.Int) error
	CancelBountyByOrg(ctx sdk.Context, orgID uint64, bountyID uint64) (sdk.Int, error)
}

// NewProposalHandler creates the executor for passed MilestoneApproval, Payout and BountyCancel
// proposals. The proposing org must sponsor the bounty that is acted on.
func NewProposalHandler(k proposalKeeper) votetypes.Executor {
	return func(ctx sdk.Context, p votetypes.Proposal) error {
		switch {
		case p.Kind == votetypes.ProposalKindMilestoneApproval && p.Payload.MilestoneApproval != nil:
			return k.ApproveSubmissionByOrg(ctx, p.OrgID, p.ID, p.Payload.MilestoneApproval.SubmissionID)
		case p.Kind == votetypes.ProposalKindPayout && p.Payload.Payout != nil:
			c := p.Payload.Payout
			return k.PayoutByOrg(ctx, p.OrgID, c.BountyID, c.Recipient, c.Amount)
		case p.Kind == votetypes.ProposalKindBountyCancel && p.Payload.BountyCancel != nil:
			_, err := k.CancelBountyByOrg(ctx, p.OrgID, p.Payload.BountyCancel.BountyID)
			return err
		default:
			return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "not a bounty proposal: %s", p.Kind)
		}
	}
}
