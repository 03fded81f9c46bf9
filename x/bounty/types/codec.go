package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// RegisterLegacyAminoCodec registers the bounty messages for amino JSON signing and tx encoding
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgPostBounty{}, "bounty/MsgPostBounty", nil)
	cdc.RegisterConcrete(&MsgFundBounty{}, "bounty/MsgFundBounty", nil)
	cdc.RegisterConcrete(&MsgSubmitMilestone{}, "bounty/MsgSubmitMilestone", nil)
	cdc.RegisterConcrete(&MsgReviewSubmission{}, "bounty/MsgReviewSubmission", nil)
	cdc.RegisterConcrete(&MsgApproveSubmission{}, "bounty/MsgApproveSubmission", nil)
	cdc.RegisterConcrete(&MsgRejectSubmission{}, "bounty/MsgRejectSubmission", nil)
	cdc.RegisterConcrete(&MsgCancelBounty{}, "bounty/MsgCancelBounty", nil)
}

// ModuleCdc encodes the module state, genesis and sign bytes
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	cryptocodec.RegisterCrypto(ModuleCdc)
}
