package app

import (
	"encoding/json"

	crisistypes "github.com/cosmos/cosmos-sdk/x/crisis/types"
	"github.com/tidwall/sjson"

	escrowtypes "github.com/confio/tbounty/x/escrow/types"
)

// GenesisState of the blockchain is represented here as a map of raw json
// messages key'd by a identifier string.
// The identifier is used to determine which module genesis information belongs
// to so it may be appropriately routed during init chain.
// Within this application default genesis information is retrieved from
// the ModuleBasicManager which populates json from each BasicModule
// object provided to it during init.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default state for the application.
// The crisis fee is charged in the escrow denom instead of the sdk default.
func NewDefaultGenesisState() GenesisState {
	encodingConfig := MakeEncodingConfig()
	gs := ModuleBasics.DefaultGenesis(encodingConfig.Marshaler)
	crisisGenesis, err := sjson.SetBytes(gs[crisistypes.ModuleName], "constant_fee.denom", escrowtypes.DefaultDenom)
	if err != nil {
		panic(err)
	}
	gs[crisistypes.ModuleName] = crisisGenesis
	return gs
}
