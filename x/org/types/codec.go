package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// RegisterLegacyAminoCodec registers the org messages for amino JSON signing and tx encoding
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgRegisterOrg{}, "org/MsgRegisterOrg", nil)
	cdc.RegisterConcrete(&MsgDeactivateOrg{}, "org/MsgDeactivateOrg", nil)
	cdc.RegisterConcrete(&MsgDonate{}, "org/MsgDonate", nil)
}

// ModuleCdc encodes the module state, genesis and sign bytes
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	cryptocodec.RegisterCrypto(ModuleCdc)
}
