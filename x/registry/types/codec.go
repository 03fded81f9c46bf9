package types

import "github.com/cosmos/cosmos-sdk/codec"

// ModuleCdc encodes the registry genesis
var ModuleCdc = codec.NewLegacyAmino()
