package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	"github.com/confio/tbounty/x/vote/types"
)

// SubmitProposal opens a proposal in an organization. The org's share table, total and policy
// are copied into the proposal. An expiry of zero selects the default voting period.
func (k Keeper) SubmitProposal(
	ctx sdk.Context,
	proposer sdk.AccAddress,
	orgID uint64,
	kind types.ProposalKind,
	payload types.ProposalPayload,
	expiry int64,
) (uint64, error) {
	org, ok := k.orgKeeper.GetOrganization(ctx, orgID)
	if !ok {
		return 0, sdkerrors.Wrapf(tbtypes.ErrNotFound, "org %d", orgID)
	}
	if !org.Active {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "org %d inactive", orgID)
	}
	if err := payload.ValidateBasic(); err != nil {
		return 0, err
	}
	if payload.Kind() != kind {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "payload is not a %s", kind)
	}
	if !k.router.HasRoute(kind) {
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "no executor for %s", kind)
	}

	params := k.GetParams(ctx)
	height := ctx.BlockHeight()
	if expiry == 0 {
		expiry = height + params.VotingPeriod
	}
	switch {
	case expiry <= height:
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "expiry %d not after current height %d", expiry, height)
	case expiry-height > params.MaxVotingPeriod:
		return 0, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "voting period exceeds max of %d blocks", params.MaxVotingPeriod)
	}

	var snapshot []orgtypes.Member
	proposerShares := sdk.ZeroUint()
	k.orgKeeper.IterateMembers(ctx, orgID, func(m orgtypes.Member) bool {
		snapshot = append(snapshot, m)
		if m.Address.Equals(proposer) {
			proposerShares = m.Shares
		}
		return false
	})
	if proposerShares.IsZero() {
		return 0, sdkerrors.Wrap(tbtypes.ErrUnauthorized, "proposer holds no shares")
	}

	id, err := k.registry.NextID(ctx, registrytypes.KindProposal)
	if err != nil {
		return 0, err
	}
	p := types.Proposal{
		ID:            id,
		OrgID:         orgID,
		Kind:          kind,
		Payload:       payload,
		Proposer:      proposer,
		YesShares:     sdk.ZeroUint(),
		NoShares:      sdk.ZeroUint(),
		AbstainShares: sdk.ZeroUint(),
		TotalSnapshot: org.TotalShares,
		Policy:        org.Policy,
		Expiry:        expiry,
		Status:        types.ProposalStatusOpen,
		SubmittedAt:   height,
	}
	k.setProposal(ctx, p)
	for _, m := range snapshot {
		k.setSnapshotShares(ctx, id, m.Address, m.Shares)
	}
	k.insertExpiryQueue(ctx, expiry, id)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSubmitProposal,
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(types.AttributeKeyOrgID, strconv.FormatUint(orgID, 10)),
		sdk.NewAttribute(types.AttributeKeyKind, kind.String()),
		sdk.NewAttribute(types.AttributeKeyExpiry, strconv.FormatInt(expiry, 10)),
	))
	ModuleLogger(ctx).Info("proposal submitted", "proposal_id", id, "org_id", orgID, "kind", kind.String(), "expiry", expiry)
	return id, nil
}

// CastVote adds the voter's snapshot shares to the yes or no side. The proposal resolves on
// this call when the tally passes the policy or passing has become impossible.
func (k Keeper) CastVote(ctx sdk.Context, proposalID uint64, voter sdk.AccAddress, support bool) (types.VoteResult, error) {
	return k.castBallot(ctx, proposalID, voter, support, false)
}

// Abstain adds the voter's snapshot shares to the turnout without taking a side. This can
// resolve a proposal that only waited for its quorum, or fail one that can no longer pass.
func (k Keeper) Abstain(ctx sdk.Context, proposalID uint64, voter sdk.AccAddress) (types.VoteResult, error) {
	return k.castBallot(ctx, proposalID, voter, false, true)
}

func (k Keeper) castBallot(ctx sdk.Context, proposalID uint64, voter sdk.AccAddress, support, abstain bool) (types.VoteResult, error) {
	p, ok := k.GetProposal(ctx, proposalID)
	if !ok {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrNotFound, "proposal %d", proposalID)
	}
	if _, voted := k.GetBallot(ctx, proposalID, voter); voted {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrAlreadyVoted, "proposal %d", proposalID)
	}
	if !p.IsOpen() {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrProposalClosed, "proposal %d is %s", proposalID, p.Status)
	}
	if ctx.BlockHeight() >= p.Expiry {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrProposalClosed, "proposal %d expired at %d", proposalID, p.Expiry)
	}
	shares := k.SnapshotSharesOf(ctx, proposalID, voter)
	if shares.IsZero() {
		return types.VoteResult{}, sdkerrors.Wrap(tbtypes.ErrUnauthorized, "voter held no shares at submission")
	}

	switch {
	case abstain:
		p.AbstainShares = p.Abstained().Add(shares)
	case support:
		p.YesShares = p.YesShares.Add(shares)
	default:
		p.NoShares = p.NoShares.Add(shares)
	}
	k.setBallot(ctx, proposalID, types.Ballot{Voter: voter, Support: support, Abstain: abstain, Shares: shares})
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeVote,
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(proposalID, 10)),
		sdk.NewAttribute(types.AttributeKeyVoter, voter.String()),
		sdk.NewAttribute(types.AttributeKeySupport, strconv.FormatBool(support)),
		sdk.NewAttribute(types.AttributeKeyAbstain, strconv.FormatBool(abstain)),
	))

	if status := p.Tally(); status != types.ProposalStatusOpen {
		k.resolve(ctx, &p, status)
	}
	k.setProposal(ctx, p)
	return p.Result(), nil
}

// CloseExpired fails an open proposal whose expiry height was reached. Closing an already
// resolved proposal returns the stored result.
func (k Keeper) CloseExpired(ctx sdk.Context, proposalID uint64) (types.VoteResult, error) {
	p, ok := k.GetProposal(ctx, proposalID)
	if !ok {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrNotFound, "proposal %d", proposalID)
	}
	if !p.IsOpen() {
		return p.Result(), nil
	}
	if ctx.BlockHeight() < p.Expiry {
		return types.VoteResult{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d open until %d", proposalID, p.Expiry)
	}
	k.resolve(ctx, &p, types.ProposalStatusFailed)
	k.setProposal(ctx, p)
	return p.Result(), nil
}

// Execute runs the executor registered for the kind of a passed proposal. A proposal is
// executed at most once, a failing executor leaves it unexecuted.
func (k Keeper) Execute(ctx sdk.Context, proposalID uint64) error {
	p, ok := k.GetProposal(ctx, proposalID)
	if !ok {
		return sdkerrors.Wrapf(tbtypes.ErrNotFound, "proposal %d", proposalID)
	}
	if p.Status != types.ProposalStatusPassed {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d is %s", proposalID, p.Status)
	}
	if p.Executed {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "proposal %d already executed", proposalID)
	}
	handler := k.router.GetRoute(p.Kind)
	if err := tbtypes.Atomic(ctx, func(ctx sdk.Context) error { return handler(ctx, p) }); err != nil {
		return sdkerrors.Wrapf(err, "execute proposal %d", proposalID)
	}
	p.Executed = true
	k.setProposal(ctx, p)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeExecuteProposal,
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(proposalID, 10)),
		sdk.NewAttribute(types.AttributeKeyKind, p.Kind.String()),
	))
	ModuleLogger(ctx).Info("proposal executed", "proposal_id", proposalID, "kind", p.Kind.String())
	return nil
}

func (k Keeper) resolve(ctx sdk.Context, p *types.Proposal, status types.ProposalStatus) {
	p.Status = status
	k.removeExpiryQueue(ctx, p.Expiry, p.ID)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProposalResult,
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyStatus, status.String()),
		sdk.NewAttribute(types.AttributeKeyYesShares, p.YesShares.String()),
		sdk.NewAttribute(types.AttributeKeyNoShares, p.NoShares.String()),
	))
	ModuleLogger(ctx).Info("proposal resolved", "proposal_id", p.ID, "status", status.String(),
		"yes", p.YesShares.String(), "no", p.NoShares.String(), "total", p.TotalSnapshot.String())
}

// CloseAllExpired closes every open proposal whose expiry height is reached. Called at the
// end of each block.
func (k Keeper) CloseAllExpired(ctx sdk.Context) {
	for _, e := range k.expiredQueueEntries(ctx, ctx.BlockHeight()) {
		if _, err := k.CloseExpired(ctx, e.proposalID); err != nil {
			ModuleLogger(ctx).Error("close expired proposal", "proposal_id", e.proposalID, "cause", err)
			k.removeExpiryQueue(ctx, e.expiry, e.proposalID)
		}
	}
}
