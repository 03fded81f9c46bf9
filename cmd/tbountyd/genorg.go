package main

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	tmtypes "github.com/tendermint/tendermint/types"

	orgcli "github.com/confio/tbounty/x/org/client/cli"
	orgtypes "github.com/confio/tbounty/x/org/types"
	registrytypes "github.com/confio/tbounty/x/registry/types"
)

const (
	orgsPath      = orgtypes.ModuleName + ".organizations"
	sequencesPath = registrytypes.ModuleName + ".sequences"
)

// AddGenesisOrgCmd registers an organization in genesis.json. The org id is taken from the
// registry sequence which is bumped accordingly.
func AddGenesisOrgCmd(defaultNodeHome string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-genesis-org [controller] [address:shares]...",
		Short: "Add an organization to genesis.json",
		Long: `Add an active organization with its founding share table to genesis.json.

Example:
$ tbountyd add-genesis-org tbounty1... tbounty1...:60 tbounty1...:40 --policy supermajority:2/3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := client.GetClientContextFromCmd(cmd)
			config := server.GetServerContextFromCmd(cmd).Config
			config.SetRoot(clientCtx.HomeDir)

			controller, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("controller: %w", err)
			}
			members, err := orgcli.ParseMembers(args[1:])
			if err != nil {
				return err
			}
			policyStr, _ := cmd.Flags().GetString(orgcli.FlagPolicy)
			policy, err := orgtypes.ParseThresholdPolicy(policyStr)
			if err != nil {
				return err
			}

			genFile := config.GenesisFile()
			genDoc, err := tmtypes.GenesisDocFromFile(genFile)
			if err != nil {
				return fmt.Errorf("failed to read genesis doc: %w", err)
			}
			appState, orgID, err := addGenesisOrg(genDoc.AppState, controller, members, policy)
			if err != nil {
				return err
			}
			genDoc.AppState = appState
			if err := genutil.ExportGenesisFile(genDoc, genFile); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr())
			logger.Info().Uint64("org_id", orgID).Int("members", len(members)).Msg("organization added")
			return nil
		},
	}
	cmd.Flags().String(flags.FlagHome, defaultNodeHome, "The application home directory")
	cmd.Flags().String(orgcli.FlagPolicy, "majority", "Vote threshold policy: majority, unanimous or supermajority:n/d[:inclusive]")
	return cmd
}

// addGenesisOrg appends the organization to the org genesis and moves the registry org sequence.
// Both module sections are validated afterwards.
func addGenesisOrg(appState []byte, controller sdk.AccAddress, members []orgtypes.Member, policy orgtypes.ThresholdPolicy) ([]byte, uint64, error) {
	total, err := orgtypes.ValidateMembers(members)
	if err != nil {
		return nil, 0, err
	}
	if err := policy.ValidateBasic(); err != nil {
		return nil, 0, err
	}

	seqIdx, lastID := -1, uint64(0)
	for i, s := range gjson.GetBytes(appState, sequencesPath).Array() {
		if s.Get("kind").String() == string(registrytypes.KindOrganization) {
			seqIdx, lastID = i, s.Get("last_id").Uint()
			break
		}
	}
	orgID := lastID + 1

	org := orgtypes.GenesisOrganization{
		Organization: orgtypes.Organization{
			ID:          orgID,
			Controller:  controller,
			Policy:      policy,
			TotalShares: total,
			Active:      true,
		},
		Members: members,
	}
	orgJSON, err := orgtypes.ModuleCdc.MarshalJSON(org)
	if err != nil {
		return nil, 0, err
	}
	if appState, err = appendRaw(appState, orgsPath, orgJSON); err != nil {
		return nil, 0, err
	}

	if seqIdx < 0 {
		var seqJSON []byte
		if seqJSON, err = registrytypes.ModuleCdc.MarshalJSON(registrytypes.Sequence{Kind: registrytypes.KindOrganization, LastID: orgID}); err != nil {
			return nil, 0, err
		}
		appState, err = appendRaw(appState, sequencesPath, seqJSON)
	} else {
		// amino JSON encodes uint64 as string
		appState, err = sjson.SetBytes(appState, fmt.Sprintf("%s.%d.last_id", sequencesPath, seqIdx), strconv.FormatUint(orgID, 10))
	}
	if err != nil {
		return nil, 0, err
	}
	return appState, orgID, validateOrgGenesis(appState)
}

// appendRaw adds a json element to the array at path, a missing or null array is created
func appendRaw(doc []byte, path string, raw []byte) ([]byte, error) {
	if !gjson.GetBytes(doc, path).IsArray() {
		return sjson.SetRawBytes(doc, path, append(append([]byte("["), raw...), ']'))
	}
	return sjson.SetRawBytes(doc, path+".-1", raw)
}

func validateOrgGenesis(appState []byte) error {
	var orgGenesis orgtypes.GenesisState
	if err := orgtypes.ModuleCdc.UnmarshalJSON([]byte(gjson.GetBytes(appState, orgtypes.ModuleName).Raw), &orgGenesis); err != nil {
		return err
	}
	if err := orgtypes.ValidateGenesis(orgGenesis); err != nil {
		return err
	}
	var registryGenesis registrytypes.GenesisState
	if err := registrytypes.ModuleCdc.UnmarshalJSON([]byte(gjson.GetBytes(appState, registrytypes.ModuleName).Raw), &registryGenesis); err != nil {
		return err
	}
	return registrytypes.ValidateGenesis(registryGenesis)
}
