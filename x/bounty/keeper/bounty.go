package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// PostBounty creates a bounty and reserves its funds from the depositer. A non zero org id
// names the sponsoring organization that governs approvals, payouts and cancellation.
func (k Keeper) PostBounty(
	ctx sdk.Context,
	depositer sdk.AccAddress,
	amount sdk.Int,
	contentHash tbtypes.ContentHash,
	orgID uint64,
) (bountyID uint64, err error) {
	if !tbtypes.IsPositiveInt(amount) {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount must be positive")
	}
	if min := k.GetParams(ctx).MinDeposit; amount.LT(min) {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "amount below min deposit of %s", min)
	}
	if contentHash.Empty() {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "content hash")
	}
	if orgID != 0 {
		org, ok := k.orgKeeper.GetOrganization(ctx, orgID)
		if !ok {
			return 0, sdkerrors.Wrapf(tbtypes.ErrNotFound, "org %d", orgID)
		}
		if !org.Active {
			return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d inactive", orgID)
		}
	}

	err = tbtypes.Atomic(ctx, func(ctx sdk.Context) error {
		id, err := k.registry.NextID(ctx, registrytypes.KindBounty)
		if err != nil {
			return err
		}
		b := types.Bounty{
			ID:                 id,
			Depositer:          depositer,
			OrgID:              orgID,
			TotalFundsReserved: sdk.ZeroInt(),
			ContentHash:        contentHash,
			State:              types.BountyStateProposed,
		}
		if err := k.escrowKeeper.Reserve(ctx, id, depositer, amount); err != nil {
			return err
		}
		b.TotalFundsReserved = amount
		b.State = types.BountyStateFunded
		k.setBounty(ctx, b)

		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypePostBounty,
			sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyOrgID, strconv.FormatUint(orgID, 10)),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyContentHash, contentHash.String()),
		))
		bountyID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	ModuleLogger(ctx).Info("bounty posted", "bounty_id", bountyID, "org_id", orgID, "amount", amount.String())
	return bountyID, nil
}

// FundBounty adds to the reserve of a bounty that is not closed. Only the depositer can fund.
// Returns the new reserve.
func (k Keeper) FundBounty(ctx sdk.Context, depositer sdk.AccAddress, bountyID uint64, amount sdk.Int) (sdk.Int, error) {
	b, err := k.getOpenBounty(ctx, bountyID)
	if err != nil {
		return sdk.ZeroInt(), err
	}
	if !b.Depositer.Equals(depositer) {
		return sdk.ZeroInt(), sdkerrors.Wrap(tbtypes.ErrUnauthorized, "only the depositer can fund")
	}
	if err := k.escrowKeeper.Reserve(ctx, bountyID, depositer, amount); err != nil {
		return sdk.ZeroInt(), err
	}
	b.TotalFundsReserved = b.TotalFundsReserved.Add(amount)
	k.setBounty(ctx, b)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeFundBounty,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bountyID, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyRemaining, b.TotalFundsReserved.String()),
	))
	return b.TotalFundsReserved, nil
}

// SubmitMilestone records a claim against the remaining reserve of a bounty
func (k Keeper) SubmitMilestone(
	ctx sdk.Context,
	bountyID uint64,
	submitter sdk.AccAddress,
	amountRequested sdk.Int,
	contentHash tbtypes.ContentHash,
) (uint64, error) {
	b, err := k.getOpenBounty(ctx, bountyID)
	if err != nil {
		return 0, err
	}
	if err := sdk.VerifyAddressFormat(submitter); err != nil {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submitter")
	}
	if !tbtypes.IsPositiveInt(amountRequested) {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount requested must be positive")
	}
	if amountRequested.GT(b.TotalFundsReserved) {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "amount requested %s exceeds remaining %s", amountRequested, b.TotalFundsReserved)
	}
	if contentHash.Empty() {
		return 0, sdkerrors.Wrap(tbtypes.ErrInvalidInput, "content hash")
	}

	id, err := k.registry.NextID(ctx, registrytypes.KindSubmission)
	if err != nil {
		return 0, err
	}
	k.setSubmission(ctx, types.Submission{
		ID:              id,
		BountyID:        bountyID,
		Submitter:       submitter,
		AmountRequested: amountRequested,
		ContentHash:     contentHash,
		State:           types.SubmissionStateSubmitted,
	})
	b.SubmissionCount++
	if b.State == types.BountyStateFunded {
		b.State = types.BountyStateLive
	}
	k.setBounty(ctx, b)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSubmitMilestone,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bountyID, 10)),
		sdk.NewAttribute(types.AttributeKeySubmissionID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, amountRequested.String()),
		sdk.NewAttribute(types.AttributeKeyContentHash, contentHash.String()),
	))
	return id, nil
}

// ReviewSubmission moves a submission under review. The depositer reviews submissions to an
// unsponsored bounty. For a sponsored bounty any member of the org can start the review, which
// opens a milestone approval proposal naming the submission. Returns the proposal id or zero.
func (k Keeper) ReviewSubmission(ctx sdk.Context, caller sdk.AccAddress, submissionID uint64, expiry int64) (uint64, error) {
	s, b, err := k.getOpenSubmission(ctx, submissionID)
	if err != nil {
		return 0, err
	}
	if s.State != types.SubmissionStateSubmitted {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "submission %d is %s", submissionID, s.State)
	}
	var proposalID uint64
	if b.IsSponsored() {
		payload := votetypes.ProposalPayload{MilestoneApproval: &votetypes.MilestoneApprovalPayload{SubmissionID: submissionID}}
		proposalID, err = k.voteKeeper.SubmitProposal(ctx, caller, b.OrgID, votetypes.ProposalKindMilestoneApproval, payload, expiry)
		if err != nil {
			return 0, err
		}
	} else if !b.Depositer.Equals(caller) {
		return 0, sdkerrors.Wrap(tbtypes.ErrUnauthorized, "only the depositer can review")
	}

	s.State = types.SubmissionStateUnderReview
	s.ProposalID = proposalID
	k.setSubmission(ctx, s)
	b.UnderReviewCount++
	k.setBounty(ctx, b)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReviewSubmission,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(b.ID, 10)),
		sdk.NewAttribute(types.AttributeKeySubmissionID, strconv.FormatUint(submissionID, 10)),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(proposalID, 10)),
	))
	return proposalID, nil
}

// ApproveSubmission is the depositer's direct approval of a submission to an unsponsored
// bounty. Submissions to sponsored bounties are approved by a passed milestone approval proposal.
func (k Keeper) ApproveSubmission(ctx sdk.Context, caller sdk.AccAddress, submissionID uint64) error {
	s, b, err := k.getSubmissionWithBounty(ctx, submissionID)
	if err != nil {
		return err
	}
	if b.IsSponsored() {
		return sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is governed by org %d", b.ID, b.OrgID)
	}
	if !b.Depositer.Equals(caller) {
		return sdkerrors.Wrap(tbtypes.ErrUnauthorized, "only the depositer can approve")
	}
	return k.approve(ctx, b, s)
}

// ApproveSubmissionByOrg approves a submission on behalf of the sponsoring org. Only the
// proposal opened when the submission was put under review can approve it.
func (k Keeper) ApproveSubmissionByOrg(ctx sdk.Context, orgID uint64, proposalID uint64, submissionID uint64) error {
	s, b, err := k.getSubmissionWithBounty(ctx, submissionID)
	if err != nil {
		return err
	}
	if b.OrgID != orgID {
		return sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is not sponsored by org %d", b.ID, orgID)
	}
	if s.State != types.SubmissionStateUnderReview || s.ProposalID != proposalID {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "submission %d is not under review by proposal %d", s.ID, proposalID)
	}
	return k.approve(ctx, b, s)
}

func (k Keeper) approve(ctx sdk.Context, b types.Bounty, s types.Submission) error {
	if s.State.IsFinal() {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "submission %d is %s", s.ID, s.State)
	}
	if b.IsClosed() {
		return sdkerrors.Wrapf(tbtypes.ErrBountyClosed, "bounty %d", b.ID)
	}
	if err := k.escrowKeeper.ReleaseTo(ctx, b.ID, s.Submitter, s.AmountRequested); err != nil {
		return err
	}
	if s.State == types.SubmissionStateUnderReview {
		b.UnderReviewCount--
	}
	s.State = types.SubmissionStateApproved
	k.setSubmission(ctx, s)
	b.TotalFundsReserved = b.TotalFundsReserved.Sub(s.AmountRequested)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeApproveSubmission,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(b.ID, 10)),
		sdk.NewAttribute(types.AttributeKeySubmissionID, strconv.FormatUint(s.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, s.AmountRequested.String()),
		sdk.NewAttribute(types.AttributeKeyRemaining, b.TotalFundsReserved.String()),
	))
	ModuleLogger(ctx).Info("submission approved", "bounty_id", b.ID, "submission_id", s.ID, "amount", s.AmountRequested.String())

	if b.TotalFundsReserved.IsZero() {
		k.close(ctx, &b, sdk.ZeroInt())
	}
	k.setBounty(ctx, b)
	return nil
}

// RejectSubmission rejects an open submission without moving funds. The depositer can always
// reject. For a sponsored bounty any org member can reject once the review proposal failed.
func (k Keeper) RejectSubmission(ctx sdk.Context, caller sdk.AccAddress, submissionID uint64) error {
	s, b, err := k.getOpenSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	if s.State.IsFinal() {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "submission %d is %s", submissionID, s.State)
	}
	if !b.Depositer.Equals(caller) && !k.reviewFailed(ctx, b, s, caller) {
		return sdkerrors.Wrap(tbtypes.ErrUnauthorized, "caller can not reject")
	}
	k.reject(ctx, &b, &s)
	k.setSubmission(ctx, s)
	k.setBounty(ctx, b)
	return nil
}

// reviewFailed returns true when caller is a member of the sponsoring org and the review
// proposal of the submission failed
func (k Keeper) reviewFailed(ctx sdk.Context, b types.Bounty, s types.Submission, caller sdk.AccAddress) bool {
	if !b.IsSponsored() || s.ProposalID == 0 {
		return false
	}
	if k.orgKeeper.SharesOf(ctx, b.OrgID, caller).IsZero() {
		return false
	}
	p, ok := k.voteKeeper.GetProposal(ctx, s.ProposalID)
	return ok && p.Status == votetypes.ProposalStatusFailed
}

func (k Keeper) reject(ctx sdk.Context, b *types.Bounty, s *types.Submission) {
	if s.State == types.SubmissionStateUnderReview {
		b.UnderReviewCount--
	}
	s.State = types.SubmissionStateRejected
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRejectSubmission,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(b.ID, 10)),
		sdk.NewAttribute(types.AttributeKeySubmissionID, strconv.FormatUint(s.ID, 10)),
	))
}

// CancelBounty closes an unsponsored bounty on request of the depositer and refunds the
// remaining reserve. Returns the refunded amount.
func (k Keeper) CancelBounty(ctx sdk.Context, caller sdk.AccAddress, bountyID uint64) (sdk.Int, error) {
	b, err := k.getBounty(ctx, bountyID)
	if err != nil {
		return sdk.ZeroInt(), err
	}
	if b.IsSponsored() {
		return sdk.ZeroInt(), sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is governed by org %d", b.ID, b.OrgID)
	}
	if !b.Depositer.Equals(caller) {
		return sdk.ZeroInt(), sdkerrors.Wrap(tbtypes.ErrUnauthorized, "only the depositer can cancel")
	}
	return k.cancel(ctx, b)
}

// CancelBountyByOrg cancels a bounty on behalf of the sponsoring org
func (k Keeper) CancelBountyByOrg(ctx sdk.Context, orgID uint64, bountyID uint64) (sdk.Int, error) {
	b, err := k.getBounty(ctx, bountyID)
	if err != nil {
		return sdk.ZeroInt(), err
	}
	if b.OrgID != orgID {
		return sdk.ZeroInt(), sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is not sponsored by org %d", b.ID, orgID)
	}
	return k.cancel(ctx, b)
}

func (k Keeper) cancel(ctx sdk.Context, b types.Bounty) (sdk.Int, error) {
	if b.IsClosed() {
		return sdk.ZeroInt(), sdkerrors.Wrapf(tbtypes.ErrBountyClosed, "bounty %d", b.ID)
	}
	if b.UnderReviewCount != 0 {
		return sdk.ZeroInt(), sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "bounty %d has %d submissions under review", b.ID, b.UnderReviewCount)
	}
	refunded, err := k.escrowKeeper.RefundRemainder(ctx, b.ID)
	if err != nil {
		return sdk.ZeroInt(), err
	}
	b.TotalFundsReserved = sdk.ZeroInt()
	k.close(ctx, &b, refunded)
	k.setBounty(ctx, b)
	return refunded, nil
}

// PayoutByOrg releases part of a sponsored bounty's reserve to any recipient on behalf of the
// sponsoring org
func (k Keeper) PayoutByOrg(ctx sdk.Context, orgID uint64, bountyID uint64, recipient sdk.AccAddress, amount sdk.Int) error {
	b, err := k.getOpenBounty(ctx, bountyID)
	if err != nil {
		return err
	}
	if b.OrgID != orgID {
		return sdkerrors.Wrapf(tbtypes.ErrUnauthorized, "bounty %d is not sponsored by org %d", b.ID, orgID)
	}
	if err := k.escrowKeeper.ReleaseTo(ctx, bountyID, recipient, amount); err != nil {
		return err
	}
	b.TotalFundsReserved = b.TotalFundsReserved.Sub(amount)
	ModuleLogger(ctx).Info("bounty payout", "bounty_id", b.ID, "recipient", recipient.String(), "amount", amount.String())
	if b.TotalFundsReserved.IsZero() {
		k.close(ctx, &b, sdk.ZeroInt())
	}
	k.setBounty(ctx, b)
	return nil
}

// close marks the bounty closed and rejects every submission still open
func (k Keeper) close(ctx sdk.Context, b *types.Bounty, refunded sdk.Int) {
	var open []types.Submission
	k.IterateBountySubmissions(ctx, b.ID, func(s types.Submission) bool {
		if !s.State.IsFinal() {
			open = append(open, s)
		}
		return false
	})
	for i := range open {
		k.reject(ctx, b, &open[i])
		k.setSubmission(ctx, open[i])
	}
	b.State = types.BountyStateClosed

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCloseBounty,
		sdk.NewAttribute(types.AttributeKeyBountyID, strconv.FormatUint(b.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyRefunded, refunded.String()),
	))
	ModuleLogger(ctx).Info("bounty closed", "bounty_id", b.ID, "refunded", refunded.String(), "rejected", len(open))
}

func (k Keeper) getBounty(ctx sdk.Context, bountyID uint64) (types.Bounty, error) {
	b, ok := k.GetBounty(ctx, bountyID)
	if !ok {
		return types.Bounty{}, sdkerrors.Wrapf(tbtypes.ErrNotFound, "bounty %d", bountyID)
	}
	return b, nil
}

func (k Keeper) getOpenBounty(ctx sdk.Context, bountyID uint64) (types.Bounty, error) {
	b, err := k.getBounty(ctx, bountyID)
	if err != nil {
		return b, err
	}
	if b.IsClosed() {
		return b, sdkerrors.Wrapf(tbtypes.ErrBountyClosed, "bounty %d", bountyID)
	}
	return b, nil
}

func (k Keeper) getSubmissionWithBounty(ctx sdk.Context, submissionID uint64) (types.Submission, types.Bounty, error) {
	s, ok := k.GetSubmission(ctx, submissionID)
	if !ok {
		return s, types.Bounty{}, sdkerrors.Wrapf(tbtypes.ErrNotFound, "submission %d", submissionID)
	}
	b, err := k.getBounty(ctx, s.BountyID)
	return s, b, err
}

func (k Keeper) getOpenSubmission(ctx sdk.Context, submissionID uint64) (types.Submission, types.Bounty, error) {
	s, b, err := k.getSubmissionWithBounty(ctx, submissionID)
	if err != nil {
		return s, b, err
	}
	if b.IsClosed() {
		return s, b, sdkerrors.Wrapf(tbtypes.ErrBountyClosed, "bounty %d", b.ID)
	}
	return s, b, nil
}
