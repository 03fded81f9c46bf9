package app

import (
	"github.com/cosmos/cosmos-sdk/std"

	appparams "github.com/confio/tbounty/app/params"
)

// MakeEncodingConfig creates a new EncodingConfig with all modules registered.
// The StdTx type comes with the auth module's amino registrations.
func MakeEncodingConfig() appparams.EncodingConfig {
	encodingConfig := appparams.MakeEncodingConfig()
	std.RegisterLegacyAminoCodec(encodingConfig.Amino)
	std.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	ModuleBasics.RegisterLegacyAminoCodec(encodingConfig.Amino)
	ModuleBasics.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	return encodingConfig
}
