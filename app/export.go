package app

import (
	"encoding/json"
	"path/filepath"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// ExportAppStateAndValidators exports the state of the application for a genesis
// file.
func (app *TbountyApp) ExportAppStateAndValidators(
	forZeroHeight bool, _ []string,
) (servertypes.ExportedApp, error) {
	if forZeroHeight {
		panic("zero height export not supported")
	}
	ctx := app.NewContext(true, tmproto.Header{Height: app.LastBlockHeight()})

	// We export at last height + 1, because that's the height at which
	// Tendermint will start InitChain.
	height := app.LastBlockHeight() + 1
	genState := app.mm.ExportGenesis(ctx, app.appCodec)
	appState, err := json.MarshalIndent(genState, "", "  ")
	if err != nil {
		return servertypes.ExportedApp{}, err
	}

	validators, err := app.genesisValidators()
	if err != nil {
		return servertypes.ExportedApp{}, err
	}
	return servertypes.ExportedApp{
		AppState:        appState,
		Validators:      validators,
		Height:          height,
		ConsensusParams: app.BaseApp.GetConsensusParams(ctx),
	}, nil
}

// genesisValidators returns the validator set of the node's genesis file. There is no staking,
// the set never changes after genesis.
func (app *TbountyApp) genesisValidators() ([]tmtypes.GenesisValidator, error) {
	doc, err := tmtypes.GenesisDocFromFile(filepath.Join(app.homePath, "config", "genesis.json"))
	if err != nil {
		return nil, sdkerrors.Wrap(err, "genesis validators")
	}
	return doc.Validators, nil
}
