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
	TypeMsgSubmitProposal  = "submit_proposal/v1"
	TypeMsgVote            = "vote/v1"
	TypeMsgCloseExpired    = "close_expired/v1"
	TypeMsgExecuteProposal = "execute_proposal/v1"
)

var (
	_ sdk.Msg = &MsgSubmitProposal{}
	_ sdk.Msg = &MsgVote{}
	_ sdk.Msg = &MsgCloseExpired{}
	_ sdk.Msg = &MsgExecuteProposal{}
)

// MsgSubmitProposal opens a proposal in an organization the proposer holds shares of.
// Expiry is a block height, zero selects the default voting period.
type MsgSubmitProposal struct {
	Proposer string          `json:"proposer" yaml:"proposer"`
	OrgID    uint64          `json:"org_id" yaml:"org_id"`
	Payload  ProposalPayload `json:"payload" yaml:"payload"`
	Expiry   int64           `json:"expiry,omitempty" yaml:"expiry"`
}

func (msg *MsgSubmitProposal) Reset()         { *msg = MsgSubmitProposal{} }
func (msg *MsgSubmitProposal) ProtoMessage()  {}
func (msg MsgSubmitProposal) String() string { return toYaml(msg) }

// Route implements the LegacyMsg interface.
func (msg MsgSubmitProposal) Route() string { return RouterKey }

// Type implements the LegacyMsg interface.
func (msg MsgSubmitProposal) Type() string { return TypeMsgSubmitProposal }

// GetSigners returns the proposer
func (msg MsgSubmitProposal) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Proposer)}
}

// GetSignBytes returns the message bytes to sign over.
func (msg MsgSubmitProposal) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface.
func (msg MsgSubmitProposal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Proposer); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposer address")
	}
	if msg.OrgID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "org id")
	}
	if msg.Expiry < 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "expiry")
	}
	// milestone approvals are opened by putting the submission under review
	if msg.Payload.Kind() == ProposalKindMilestoneApproval {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "milestone approval must be opened by a submission review")
	}
	return msg.Payload.ValidateBasic()
}

// MsgSubmitProposalResponse returns the id of the new proposal
type MsgSubmitProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
}

// MsgVote casts the voter's snapshot shares for or against a proposal, or as an abstention
type MsgVote struct {
	Voter      string `json:"voter" yaml:"voter"`
	ProposalID uint64 `json:"proposal_id" yaml:"proposal_id"`
	Support    bool   `json:"support" yaml:"support"`
	Abstain    bool   `json:"abstain,omitempty" yaml:"abstain"`
}

func (msg *MsgVote) Reset()         { *msg = MsgVote{} }
func (msg *MsgVote) ProtoMessage()  {}
func (msg MsgVote) String() string { return toYaml(msg) }
func (msg MsgVote) Route() string  { return RouterKey }
func (msg MsgVote) Type() string   { return TypeMsgVote }

func (msg MsgVote) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Voter)}
}

func (msg MsgVote) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgVote) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Voter); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "voter address")
	}
	if msg.ProposalID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposal id")
	}
	if msg.Abstain && msg.Support {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "abstention can not support")
	}
	return nil
}

// MsgVoteResponse is the tally after the vote
type MsgVoteResponse struct {
	Result VoteResult `json:"result"`
}

// MsgCloseExpired resolves a proposal whose expiry height was reached. Anyone can send it.
type MsgCloseExpired struct {
	Sender     string `json:"sender" yaml:"sender"`
	ProposalID uint64 `json:"proposal_id" yaml:"proposal_id"`
}

func (msg *MsgCloseExpired) Reset()         { *msg = MsgCloseExpired{} }
func (msg *MsgCloseExpired) ProtoMessage()  {}
func (msg MsgCloseExpired) String() string { return toYaml(msg) }
func (msg MsgCloseExpired) Route() string  { return RouterKey }
func (msg MsgCloseExpired) Type() string   { return TypeMsgCloseExpired }

func (msg MsgCloseExpired) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Sender)}
}

func (msg MsgCloseExpired) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgCloseExpired) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sender address")
	}
	if msg.ProposalID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposal id")
	}
	return nil
}

// MsgCloseExpiredResponse is the final tally
type MsgCloseExpiredResponse struct {
	Result VoteResult `json:"result"`
}

// MsgExecuteProposal applies the effect of a passed proposal. Anyone can send it.
type MsgExecuteProposal struct {
	Sender     string `json:"sender" yaml:"sender"`
	ProposalID uint64 `json:"proposal_id" yaml:"proposal_id"`
}

func (msg *MsgExecuteProposal) Reset()         { *msg = MsgExecuteProposal{} }
func (msg *MsgExecuteProposal) ProtoMessage()  {}
func (msg MsgExecuteProposal) String() string { return toYaml(msg) }
func (msg MsgExecuteProposal) Route() string  { return RouterKey }
func (msg MsgExecuteProposal) Type() string   { return TypeMsgExecuteProposal }

func (msg MsgExecuteProposal) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Sender)}
}

func (msg MsgExecuteProposal) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgExecuteProposal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sender address")
	}
	if msg.ProposalID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "proposal id")
	}
	return nil
}

// MsgExecuteProposalResponse is the empty receipt of an execution
type MsgExecuteProposalResponse struct{}

// MsgServer is the vote module msg service
type MsgServer interface {
	SubmitProposal(context.Context, *MsgSubmitProposal) (*MsgSubmitProposalResponse, error)
	Vote(context.Context, *MsgVote) (*MsgVoteResponse, error)
	CloseExpired(context.Context, *MsgCloseExpired) (*MsgCloseExpiredResponse, error)
	ExecuteProposal(context.Context, *MsgExecuteProposal) (*MsgExecuteProposalResponse, error)
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
