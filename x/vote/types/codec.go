package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// RegisterLegacyAminoCodec registers the vote messages for amino JSON signing and tx encoding
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgSubmitProposal{}, "vote/MsgSubmitProposal", nil)
	cdc.RegisterConcrete(&MsgVote{}, "vote/MsgVote", nil)
	cdc.RegisterConcrete(&MsgCloseExpired{}, "vote/MsgCloseExpired", nil)
	cdc.RegisterConcrete(&MsgExecuteProposal{}, "vote/MsgExecuteProposal", nil)
}

// ModuleCdc encodes the module state, genesis and sign bytes
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	cryptocodec.RegisterCrypto(ModuleCdc)
}
