package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
)

// Transition names, versioned so that the argument encoding can evolve
const (
	TypeMsgPostBounty        = "post_bounty/v1"
	TypeMsgFundBounty        = "fund_bounty/v1"
	TypeMsgSubmitMilestone   = "submit_milestone/v1"
	TypeMsgReviewSubmission  = "review_submission/v1"
	TypeMsgApproveSubmission = "approve_submission/v1"
	TypeMsgRejectSubmission  = "reject_submission/v1"
	TypeMsgCancelBounty      = "cancel_bounty/v1"
)

var (
	_ sdk.Msg = &MsgPostBounty{}
	_ sdk.Msg = &MsgFundBounty{}
	_ sdk.Msg = &MsgSubmitMilestone{}
	_ sdk.Msg = &MsgReviewSubmission{}
	_ sdk.Msg = &MsgApproveSubmission{}
	_ sdk.Msg = &MsgRejectSubmission{}
	_ sdk.Msg = &MsgCancelBounty{}
)

// MsgPostBounty creates a bounty and reserves its funds from the signer.
// OrgID zero posts an unsponsored bounty controlled by the depositer.
type MsgPostBounty struct {
	Depositer   string              `json:"depositer" yaml:"depositer"`
	Amount      sdk.Int             `json:"amount" yaml:"amount"`
	ContentHash tbtypes.ContentHash `json:"content_hash" yaml:"content_hash"`
	OrgID       uint64              `json:"org_id,omitempty" yaml:"org_id"`
}

func (msg *MsgPostBounty) Reset()         { *msg = MsgPostBounty{} }
func (msg *MsgPostBounty) ProtoMessage()  {}
func (msg MsgPostBounty) String() string { return toYaml(msg) }

// Route implements the LegacyMsg interface.
func (msg MsgPostBounty) Route() string { return RouterKey }

// Type implements the LegacyMsg interface.
func (msg MsgPostBounty) Type() string { return TypeMsgPostBounty }

// GetSigners returns the depositer
func (msg MsgPostBounty) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Depositer)}
}

// GetSignBytes returns the message bytes to sign over.
func (msg MsgPostBounty) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface.
func (msg MsgPostBounty) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositer); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer address")
	}
	if !tbtypes.IsPositiveInt(msg.Amount) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount")
	}
	if msg.ContentHash.Empty() {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "content hash")
	}
	return nil
}

// MsgPostBountyResponse is the receipt of a posted bounty
type MsgPostBountyResponse struct {
	BountyID uint64 `json:"bounty_id"`
}

// MsgFundBounty tops up the reserve of an open bounty. Only the depositer can fund.
type MsgFundBounty struct {
	Depositer string  `json:"depositer" yaml:"depositer"`
	BountyID  uint64  `json:"bounty_id" yaml:"bounty_id"`
	Amount    sdk.Int `json:"amount" yaml:"amount"`
}

func (msg *MsgFundBounty) Reset()         { *msg = MsgFundBounty{} }
func (msg *MsgFundBounty) ProtoMessage()  {}
func (msg MsgFundBounty) String() string { return toYaml(msg) }
func (msg MsgFundBounty) Route() string  { return RouterKey }
func (msg MsgFundBounty) Type() string   { return TypeMsgFundBounty }

func (msg MsgFundBounty) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Depositer)}
}

func (msg MsgFundBounty) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgFundBounty) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositer); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "depositer address")
	}
	if msg.BountyID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
	}
	if !tbtypes.IsPositiveInt(msg.Amount) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount")
	}
	return nil
}

// MsgFundBountyResponse reports the new reserve
type MsgFundBountyResponse struct {
	TotalFundsReserved sdk.Int `json:"total_funds_reserved"`
}

// MsgSubmitMilestone claims part of a bounty's reserve for delivered work
type MsgSubmitMilestone struct {
	Submitter       string              `json:"submitter" yaml:"submitter"`
	BountyID        uint64              `json:"bounty_id" yaml:"bounty_id"`
	AmountRequested sdk.Int             `json:"amount_requested" yaml:"amount_requested"`
	ContentHash     tbtypes.ContentHash `json:"content_hash" yaml:"content_hash"`
}

func (msg *MsgSubmitMilestone) Reset()         { *msg = MsgSubmitMilestone{} }
func (msg *MsgSubmitMilestone) ProtoMessage()  {}
func (msg MsgSubmitMilestone) String() string { return toYaml(msg) }
func (msg MsgSubmitMilestone) Route() string  { return RouterKey }
func (msg MsgSubmitMilestone) Type() string   { return TypeMsgSubmitMilestone }

func (msg MsgSubmitMilestone) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Submitter)}
}

func (msg MsgSubmitMilestone) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgSubmitMilestone) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Submitter); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submitter address")
	}
	if msg.BountyID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
	}
	if !tbtypes.IsPositiveInt(msg.AmountRequested) {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount requested")
	}
	if msg.ContentHash.Empty() {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "content hash")
	}
	return nil
}

// MsgSubmitMilestoneResponse is the receipt of a submission
type MsgSubmitMilestoneResponse struct {
	SubmissionID uint64 `json:"submission_id"`
}

// MsgReviewSubmission moves a submission under review. For a sponsored bounty this opens the
// milestone approval proposal in the sponsoring org. Expiry zero selects the default period.
type MsgReviewSubmission struct {
	Caller       string `json:"caller" yaml:"caller"`
	SubmissionID uint64 `json:"submission_id" yaml:"submission_id"`
	Expiry       int64  `json:"expiry,omitempty" yaml:"expiry"`
}

func (msg *MsgReviewSubmission) Reset()         { *msg = MsgReviewSubmission{} }
func (msg *MsgReviewSubmission) ProtoMessage()  {}
func (msg MsgReviewSubmission) String() string { return toYaml(msg) }
func (msg MsgReviewSubmission) Route() string  { return RouterKey }
func (msg MsgReviewSubmission) Type() string   { return TypeMsgReviewSubmission }

func (msg MsgReviewSubmission) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Caller)}
}

func (msg MsgReviewSubmission) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgReviewSubmission) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller address")
	}
	if msg.SubmissionID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submission id")
	}
	if msg.Expiry < 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expiry")
	}
	return nil
}

// MsgReviewSubmissionResponse carries the proposal id, zero for unsponsored bounties
type MsgReviewSubmissionResponse struct {
	ProposalID uint64 `json:"proposal_id,omitempty"`
}

// MsgApproveSubmission is the depositer's direct approval of a submission to an unsponsored bounty
type MsgApproveSubmission struct {
	Caller       string `json:"caller" yaml:"caller"`
	SubmissionID uint64 `json:"submission_id" yaml:"submission_id"`
}

func (msg *MsgApproveSubmission) Reset()         { *msg = MsgApproveSubmission{} }
func (msg *MsgApproveSubmission) ProtoMessage()  {}
func (msg MsgApproveSubmission) String() string { return toYaml(msg) }
func (msg MsgApproveSubmission) Route() string  { return RouterKey }
func (msg MsgApproveSubmission) Type() string   { return TypeMsgApproveSubmission }

func (msg MsgApproveSubmission) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Caller)}
}

func (msg MsgApproveSubmission) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgApproveSubmission) ValidateBasic() error {
	return validateCallerAndID(msg.Caller, msg.SubmissionID, "submission id")
}

// MsgApproveSubmissionResponse is the empty receipt of an approval
type MsgApproveSubmissionResponse struct{}

// MsgRejectSubmission rejects a submission without moving funds
type MsgRejectSubmission struct {
	Caller       string `json:"caller" yaml:"caller"`
	SubmissionID uint64 `json:"submission_id" yaml:"submission_id"`
}

func (msg *MsgRejectSubmission) Reset()         { *msg = MsgRejectSubmission{} }
func (msg *MsgRejectSubmission) ProtoMessage()  {}
func (msg MsgRejectSubmission) String() string { return toYaml(msg) }
func (msg MsgRejectSubmission) Route() string  { return RouterKey }
func (msg MsgRejectSubmission) Type() string   { return TypeMsgRejectSubmission }

func (msg MsgRejectSubmission) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Caller)}
}

func (msg MsgRejectSubmission) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgRejectSubmission) ValidateBasic() error {
	return validateCallerAndID(msg.Caller, msg.SubmissionID, "submission id")
}

// MsgRejectSubmissionResponse is the empty receipt of a rejection
type MsgRejectSubmissionResponse struct{}

// MsgCancelBounty closes an unsponsored bounty and refunds the remaining reserve
type MsgCancelBounty struct {
	Caller   string `json:"caller" yaml:"caller"`
	BountyID uint64 `json:"bounty_id" yaml:"bounty_id"`
}

func (msg *MsgCancelBounty) Reset()         { *msg = MsgCancelBounty{} }
func (msg *MsgCancelBounty) ProtoMessage()  {}
func (msg MsgCancelBounty) String() string { return toYaml(msg) }
func (msg MsgCancelBounty) Route() string  { return RouterKey }
func (msg MsgCancelBounty) Type() string   { return TypeMsgCancelBounty }

func (msg MsgCancelBounty) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Caller)}
}

func (msg MsgCancelBounty) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgCancelBounty) ValidateBasic() error {
	return validateCallerAndID(msg.Caller, msg.BountyID, "bounty id")
}

// MsgCancelBountyResponse reports the refunded amount
type MsgCancelBountyResponse struct {
	Refunded sdk.Int `json:"refunded"`
}

func validateCallerAndID(caller string, id uint64, idName string) error {
	if _, err := sdk.AccAddressFromBech32(caller); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "caller address")
	}
	if id == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, idName)
	}
	return nil
}

func mustAccAddress(s string) sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func toYaml(o interface{}) string {
	out, _ := yaml.Marshal(o)
	return string(out)
}

// MsgServer is the bounty module msg service
type MsgServer interface {
	PostBounty(context.Context, *MsgPostBounty) (*MsgPostBountyResponse, error)
	FundBounty(context.Context, *MsgFundBounty) (*MsgFundBountyResponse, error)
	SubmitMilestone(context.Context, *MsgSubmitMilestone) (*MsgSubmitMilestoneResponse, error)
	ReviewSubmission(context.Context, *MsgReviewSubmission) (*MsgReviewSubmissionResponse, error)
	ApproveSubmission(context.Context, *MsgApproveSubmission) (*MsgApproveSubmissionResponse, error)
	RejectSubmission(context.Context, *MsgRejectSubmission) (*MsgRejectSubmissionResponse, error)
	CancelBounty(context.Context, *MsgCancelBounty) (*MsgCancelBountyResponse, error)
}
