package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// ModuleCdc encodes the module state and genesis. Escrow has no messages.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	cryptocodec.RegisterCrypto(ModuleCdc)
}
