package main

import (
	"bytes"
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/server"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	"github.com/spf13/cobra"
	tmtypes "github.com/tendermint/tendermint/types"
)

const flagPower = "power"

// AddGenesisValidatorCmd adds the node's consensus key to the validator set of genesis.json.
// There is no staking, the genesis validators stay the validator set of the chain.
func AddGenesisValidatorCmd(defaultNodeHome string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-genesis-validator",
		Short: "Add this node's consensus key as validator to genesis.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx := client.GetClientContextFromCmd(cmd)
			config := server.GetServerContextFromCmd(cmd).Config
			config.SetRoot(clientCtx.HomeDir)

			power, err := cmd.Flags().GetInt64(flagPower)
			if err != nil {
				return err
			}
			_, valPubKey, err := genutil.InitializeNodeValidatorFiles(config)
			if err != nil {
				return err
			}
			tmPubKey, err := cryptocodec.ToTmPubKeyInterface(valPubKey)
			if err != nil {
				return err
			}

			genFile := config.GenesisFile()
			genDoc, err := tmtypes.GenesisDocFromFile(genFile)
			if err != nil {
				return fmt.Errorf("failed to read genesis doc: %w", err)
			}
			val := tmtypes.GenesisValidator{
				Address: tmPubKey.Address(),
				PubKey:  tmPubKey,
				Power:   power,
				Name:    config.Moniker,
			}
			if genDoc.Validators, err = addValidator(genDoc.Validators, val); err != nil {
				return err
			}
			if err := genutil.ExportGenesisFile(genDoc, genFile); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr())
			logger.Info().Str("address", val.Address.String()).Int64("power", power).Msg("validator added")
			return nil
		},
	}
	cmd.Flags().String(flags.FlagHome, defaultNodeHome, "The application home directory")
	cmd.Flags().Int64(flagPower, 10, "Voting power of the validator")
	return cmd
}

func addValidator(vals []tmtypes.GenesisValidator, val tmtypes.GenesisValidator) ([]tmtypes.GenesisValidator, error) {
	if val.Power <= 0 {
		return nil, fmt.Errorf("power must be positive: %d", val.Power)
	}
	for _, v := range vals {
		if bytes.Equal(v.Address, val.Address) {
			return nil, fmt.Errorf("validator %s already in genesis", val.Address)
		}
	}
	return append(vals, val), nil
}
