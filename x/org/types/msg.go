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
	TypeMsgRegisterOrg   = "register_org/v1"
	TypeMsgDeactivateOrg = "deactivate_org/v1"
	TypeMsgDonate        = "donate/v1"
)

var (
	_ sdk.Msg = &MsgRegisterOrg{}
	_ sdk.Msg = &MsgDeactivateOrg{}
	_ sdk.Msg = &MsgDonate{}
)

// MsgMember is a founding member as submitted by a client
type MsgMember struct {
	Address string   `json:"address" yaml:"address"`
	Shares  sdk.Uint `json:"shares" yaml:"shares"`
}

// MsgRegisterOrg registers a new organization with its founding share table.
// The signer becomes the controller.
type MsgRegisterOrg struct {
	Controller   string              `json:"controller" yaml:"controller"`
	Sudo         string              `json:"sudo,omitempty" yaml:"sudo"`
	Members      []MsgMember         `json:"members" yaml:"members"`
	Policy       ThresholdPolicy     `json:"policy" yaml:"policy"`
	Constitution tbtypes.ContentHash `json:"constitution" yaml:"constitution"`
	Parent       uint64              `json:"parent,omitempty" yaml:"parent"`
}

// NewMsgRegisterOrg constructor
func NewMsgRegisterOrg(controller sdk.AccAddress, members []Member, policy ThresholdPolicy) *MsgRegisterOrg {
	msgMembers := make([]MsgMember, len(members))
	for i, m := range members {
		msgMembers[i] = MsgMember{Address: m.Address.String(), Shares: m.Shares}
	}
	return &MsgRegisterOrg{
		Controller: controller.String(),
		Members:    msgMembers,
		Policy:     policy,
	}
}

func (msg *MsgRegisterOrg) Reset()         { *msg = MsgRegisterOrg{} }
func (msg *MsgRegisterOrg) ProtoMessage()  {}
func (msg MsgRegisterOrg) String() string { return toYaml(msg) }

// Route implements the LegacyMsg interface.
func (msg MsgRegisterOrg) Route() string { return RouterKey }

// Type implements the LegacyMsg interface.
func (msg MsgRegisterOrg) Type() string { return TypeMsgRegisterOrg }

// GetSigners returns the controller
func (msg MsgRegisterOrg) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Controller)}
}

// GetSignBytes returns the message bytes to sign over.
func (msg MsgRegisterOrg) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface.
func (msg MsgRegisterOrg) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "controller address")
	}
	if msg.Sudo != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Sudo); err != nil {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sudo address")
		}
	}
	if _, err := msg.GetMembers(); err != nil {
		return err
	}
	return msg.Policy.ValidateBasic()
}

// GetMembers converts and validates the founding members
func (msg MsgRegisterOrg) GetMembers() ([]Member, error) {
	members := make([]Member, len(msg.Members))
	for i, m := range msg.Members {
		addr, err := sdk.AccAddressFromBech32(m.Address)
		if err != nil {
			return nil, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "member %d address", i)
		}
		members[i] = Member{Address: addr, Shares: m.Shares}
	}
	if _, err := ValidateMembers(members); err != nil {
		return nil, err
	}
	return members, nil
}

// MsgRegisterOrgResponse is the receipt of a registration
type MsgRegisterOrgResponse struct {
	OrgID uint64 `json:"org_id"`
}

// MsgDeactivateOrg marks an organization inactive. Only the sudo account may send it.
type MsgDeactivateOrg struct {
	Sudo  string `json:"sudo" yaml:"sudo"`
	OrgID uint64 `json:"org_id" yaml:"org_id"`
}

func (msg *MsgDeactivateOrg) Reset()         { *msg = MsgDeactivateOrg{} }
func (msg *MsgDeactivateOrg) ProtoMessage()  {}
func (msg MsgDeactivateOrg) String() string { return toYaml(msg) }
func (msg MsgDeactivateOrg) Route() string  { return RouterKey }
func (msg MsgDeactivateOrg) Type() string   { return TypeMsgDeactivateOrg }

func (msg MsgDeactivateOrg) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Sudo)}
}

func (msg MsgDeactivateOrg) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgDeactivateOrg) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sudo); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sudo address")
	}
	if msg.OrgID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "org id")
	}
	return nil
}

// MsgDonate transfers an amount to the members of an organization, either proportional to
// their shares or in equal parts. The rounding remainder goes to RemainderRecipient.
type MsgDonate struct {
	Sender             string   `json:"sender" yaml:"sender"`
	OrgID              uint64   `json:"org_id" yaml:"org_id"`
	Amount             sdk.Coin `json:"amount" yaml:"amount"`
	RemainderRecipient string   `json:"remainder_recipient" yaml:"remainder_recipient"`
	Weighted           bool     `json:"weighted" yaml:"weighted"`
}

func (msg *MsgDonate) Reset()         { *msg = MsgDonate{} }
func (msg *MsgDonate) ProtoMessage()  {}
func (msg MsgDonate) String() string { return toYaml(msg) }
func (msg MsgDonate) Route() string  { return RouterKey }
func (msg MsgDonate) Type() string   { return TypeMsgDonate }

func (msg MsgDonate) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Sender)}
}

func (msg MsgDonate) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

func (msg MsgDonate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "sender address")
	}
	if _, err := sdk.AccAddressFromBech32(msg.RemainderRecipient); err != nil {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "remainder recipient address")
	}
	if msg.OrgID == 0 {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "org id")
	}
	if !msg.Amount.IsValid() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount")
	}
	return nil
}

// MsgDonateResponse reports how the donation was split
type MsgDonateResponse struct {
	ToMembers sdk.Coin `json:"to_members"`
	Remainder sdk.Coin `json:"remainder"`
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

// MsgServer is the org module msg service
type MsgServer interface {
	RegisterOrg(context.Context, *MsgRegisterOrg) (*MsgRegisterOrgResponse, error)
	DeactivateOrg(context.Context, *MsgDeactivateOrg) (*MsgDeactivateOrgResponse, error)
	Donate(context.Context, *MsgDonate) (*MsgDonateResponse, error)
}

// MsgDeactivateOrgResponse is the empty receipt of a deactivation
type MsgDeactivateOrgResponse struct{}
