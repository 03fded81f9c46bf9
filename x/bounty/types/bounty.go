package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

// BountyState is the lifecycle state of a bounty. Closed is terminal.
type BountyState int32

const (
	BountyStateUndefined BountyState = 0
	// BountyStateProposed exists only until the first reservation succeeds
	BountyStateProposed BountyState = 1
	BountyStateFunded   BountyState = 2
	BountyStateLive     BountyState = 3
	BountyStateClosed   BountyState = 4
)

func (s BountyState) String() string {
	switch s {
	case BountyStateProposed:
		return "proposed"
	case BountyStateFunded:
		return "funded"
	case BountyStateLive:
		return "live"
	case BountyStateClosed:
		return "closed"
	default:
		return "undefined"
	}
}

// SubmissionState is the lifecycle state of a submission. Approved and Rejected are terminal.
type SubmissionState int32

const (
	SubmissionStateUndefined   SubmissionState = 0
	SubmissionStateSubmitted   SubmissionState = 1
	SubmissionStateUnderReview SubmissionState = 2
	SubmissionStateApproved    SubmissionState = 3
	SubmissionStateRejected    SubmissionState = 4
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionStateSubmitted:
		return "submitted"
	case SubmissionStateUnderReview:
		return "under_review"
	case SubmissionStateApproved:
		return "approved"
	case SubmissionStateRejected:
		return "rejected"
	default:
		return "undefined"
	}
}

// IsFinal returns true for approved and rejected submissions
func (s SubmissionState) IsFinal() bool {
	return s == SubmissionStateApproved || s == SubmissionStateRejected
}

// Bounty is a funded task. TotalFundsReserved mirrors the escrow entry of the bounty and shrinks
// with every payout. A bounty with a sponsoring org is governed by that org's proposals.
type Bounty struct {
	ID                 uint64              `json:"id" yaml:"id"`
	Depositer          sdk.AccAddress      `json:"depositer" yaml:"depositer"`
	OrgID              uint64              `json:"org_id,omitempty" yaml:"org_id"`
	TotalFundsReserved sdk.Int             `json:"total_funds_reserved" yaml:"total_funds_reserved"`
	ContentHash        tbtypes.ContentHash `json:"content_hash" yaml:"content_hash"`
	State              BountyState         `json:"state" yaml:"state"`
	SubmissionCount    uint64              `json:"submission_count" yaml:"submission_count"`
	UnderReviewCount   uint64              `json:"under_review_count" yaml:"under_review_count"`
}

func (b Bounty) String() string {
	out, _ := yaml.Marshal(b)
	return string(out)
}

// IsSponsored returns true when an organization governs the bounty
func (b Bounty) IsSponsored() bool {
	return b.OrgID != 0
}

func (b Bounty) IsClosed() bool {
	return b.State == BountyStateClosed
}

// ValidateBasic checks a stored bounty is well formed
func (b Bounty) ValidateBasic() error {
	if b.ID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
	}
	if err := sdk.VerifyAddressFormat(b.Depositer); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer")
	}
	if b.TotalFundsReserved.IsNil() || b.TotalFundsReserved.IsNegative() {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "total funds reserved")
	}
	switch b.State {
	case BountyStateFunded, BountyStateLive, BountyStateClosed:
	default:
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "state %s", b.State)
	}
	if b.UnderReviewCount > b.SubmissionCount {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "more submissions under review than submitted")
	}
	return nil
}

// Submission is a claim against a bounty's reserve
type Submission struct {
	ID              uint64              `json:"id" yaml:"id"`
	BountyID        uint64              `json:"bounty_id" yaml:"bounty_id"`
	Submitter       sdk.AccAddress      `json:"submitter" yaml:"submitter"`
	AmountRequested sdk.Int             `json:"amount_requested" yaml:"amount_requested"`
	ContentHash     tbtypes.ContentHash `json:"content_hash" yaml:"content_hash"`
	State           SubmissionState     `json:"state" yaml:"state"`
	// ProposalID is the milestone approval proposal opened on review of a sponsored bounty
	ProposalID uint64 `json:"proposal_id,omitempty" yaml:"proposal_id"`
}

func (s Submission) String() string {
	out, _ := yaml.Marshal(s)
	return string(out)
}

// ValidateBasic checks a stored submission is well formed
func (s Submission) ValidateBasic() error {
	if s.ID == 0 || s.BountyID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "id")
	}
	if err := sdk.VerifyAddressFormat(s.Submitter); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submitter")
	}
	if !tbtypes.IsPositiveInt(s.AmountRequested) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount requested")
	}
	if s.State == SubmissionStateUndefined || s.State > SubmissionStateRejected {
		return sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "state %s", s.State)
	}
	return nil
}
