package main

// DONTCOVER

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/server"
	srvconfig "github.com/cosmos/cosmos-sdk/server/config"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	"github.com/spf13/cobra"
	tmconfig "github.com/tendermint/tendermint/config"
	tmos "github.com/tendermint/tendermint/libs/os"
	tmrand "github.com/tendermint/tendermint/libs/rand"
	"github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"

	"github.com/confio/tbounty/app"
	escrowtypes "github.com/confio/tbounty/x/escrow/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
)

var (
	flagNodeDirPrefix     = "node-dir-prefix"
	flagNumValidators     = "v"
	flagOutputDir         = "output-dir"
	flagNodeDaemonHome    = "node-daemon-home"
	flagStartingIPAddress = "starting-ip-address"
	// custom flags
	flagCommitTimeout = "commit-timeout"
	flagSingleHost    = "single-host"
)

// get cmd to initialize all files for tendermint testnet and application
func testnetCmd(mbm module.BasicManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testnet",
		Short: "Initialize files for a tbounty testnet",
		Long: `testnet will create "v" number of directories and populate each with
necessary files (private validator, genesis, config, etc.).

Every node key is funded and all of them are members of a founding organization.
Note, strict routability for addresses is turned off in the config file.

Example:
	tbountyd testnet --v 4 --output-dir ./output --starting-ip-address 192.168.10.2
	`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			serverCtx := server.GetServerContextFromCmd(cmd)
			config := serverCtx.Config

			outputDir, _ := cmd.Flags().GetString(flagOutputDir)
			keyringBackend, _ := cmd.Flags().GetString(flags.FlagKeyringBackend)
			chainID, _ := cmd.Flags().GetString(flags.FlagChainID)
			minGasPrices, _ := cmd.Flags().GetString(server.FlagMinGasPrices)
			nodeDirPrefix, _ := cmd.Flags().GetString(flagNodeDirPrefix)
			nodeDaemonHome, _ := cmd.Flags().GetString(flagNodeDaemonHome)
			startingIPAddress, _ := cmd.Flags().GetString(flagStartingIPAddress)
			numValidators, _ := cmd.Flags().GetInt(flagNumValidators)
			algo, _ := cmd.Flags().GetString(flags.FlagKeyAlgorithm)

			config.Consensus.TimeoutCommit, err = cmd.Flags().GetDuration(flagCommitTimeout)
			if err != nil {
				return err
			}
			singleMachine, err := cmd.Flags().GetBool(flagSingleHost)
			if err != nil {
				return err
			}

			return InitTestnet(
				clientCtx, cmd, config, mbm, outputDir, chainID, minGasPrices,
				nodeDirPrefix, nodeDaemonHome, startingIPAddress, keyringBackend, algo, numValidators,
				singleMachine,
			)
		},
	}

	cmd.Flags().Int(flagNumValidators, 4, "Number of validators to initialize the testnet with")
	cmd.Flags().StringP(flagOutputDir, "o", "./mytestnet", "Directory to store initialization data for the testnet")
	cmd.Flags().String(flagNodeDirPrefix, "node", "Prefix the directory name for each node with (node results in node0, node1, ...)")
	cmd.Flags().String(flagNodeDaemonHome, "tbounty", "Home directory of the node's daemon configuration")
	cmd.Flags().String(flagStartingIPAddress, "192.168.0.1", "Starting IP address (192.168.0.1 results in persistent peers list ID0@192.168.0.1:46656, ID1@192.168.0.2:46656, ...)")
	cmd.Flags().String(flags.FlagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	cmd.Flags().String(server.FlagMinGasPrices, fmt.Sprintf("0.000006%s", escrowtypes.DefaultDenom), "Minimum gas prices to accept for transactions; All fees in a tx must meet this minimum (e.g. 0.01utbounty)")
	cmd.Flags().String(flags.FlagKeyringBackend, flags.DefaultKeyringBackend, "Select keyring's backend (os|file|test)")
	cmd.Flags().String(flags.FlagKeyAlgorithm, string(hd.Secp256k1Type), "Key signing algorithm to generate keys for")
	cmd.Flags().Duration(flagCommitTimeout, 5*time.Second, "Time to wait after a block commit before starting on the new height")
	cmd.Flags().Bool(flagSingleHost, false, "Cluster runs on a single host machine with different ports")
	return cmd
}

const nodeDirPerm = 0755

// InitTestnet Initialize the testnet
func InitTestnet(
	clientCtx client.Context,
	cmd *cobra.Command,
	nodeConfig *tmconfig.Config,
	mbm module.BasicManager,
	outputDir, chainID, minGasPrices, nodeDirPrefix, nodeDaemonHome, startingIPAddress, keyringBackend, algoStr string,
	numValidators int, singleMachine bool,
) error {
	if chainID == "" {
		chainID = "chain-" + tmrand.NewRand().Str(6)
	}

	nodeIDs := make([]string, numValidators)
	appConfig := srvconfig.DefaultConfig()
	appConfig.MinGasPrices = minGasPrices
	appConfig.API.Enable = true

	var (
		genAccounts   []authtypes.GenesisAccount
		genBalances   []banktypes.Balance
		genValidators []types.GenesisValidator
		orgMembers    []orgtypes.Member
		genFiles      []string
	)
	const (
		rpcPort     = 26657
		apiPort     = 1317
		grpcPort    = 9090
		grpcWebPort = 8090
	)
	p2pPortStart := 26656

	inBuf := bufio.NewReader(cmd.InOrStdin())
	// generate private keys, node IDs and the genesis validator set
	for i := 0; i < numValidators; i++ {
		var portOffset int
		if singleMachine {
			portOffset = i
			p2pPortStart = 16656 // use different start point to not conflict with rpc port
			nodeConfig.P2P.AddrBookStrict = false
			nodeConfig.P2P.PexReactor = false
			nodeConfig.P2P.AllowDuplicateIP = true
		}

		nodeDirName := fmt.Sprintf("%s%d", nodeDirPrefix, i)
		nodeDir := filepath.Join(outputDir, nodeDirName, nodeDaemonHome)

		nodeConfig.SetRoot(nodeDir)
		nodeConfig.Moniker = nodeDirName
		appConfig.API.Address = fmt.Sprintf("tcp://0.0.0.0:%d", apiPort+portOffset)
		appConfig.GRPC.Address = fmt.Sprintf("0.0.0.0:%d", grpcPort+portOffset)
		appConfig.GRPCWeb.Address = fmt.Sprintf("0.0.0.0:%d", grpcWebPort+portOffset)

		if err := os.MkdirAll(filepath.Join(nodeDir, "config"), nodeDirPerm); err != nil {
			_ = os.RemoveAll(outputDir)
			return err
		}

		nodeID, valPubKey, err := genutil.InitializeNodeValidatorFiles(nodeConfig)
		if err != nil {
			_ = os.RemoveAll(outputDir)
			return err
		}
		nodeIDs[i] = nodeID
		tmPubKey, err := cryptocodec.ToTmPubKeyInterface(valPubKey)
		if err != nil {
			return err
		}
		genValidators = append(genValidators, types.GenesisValidator{
			Address: tmPubKey.Address(),
			PubKey:  tmPubKey,
			Power:   10,
			Name:    nodeDirName,
		})
		genFiles = append(genFiles, nodeConfig.GenesisFile())

		kb, err := keyring.New(sdk.KeyringServiceName(), keyringBackend, nodeDir, inBuf)
		if err != nil {
			return err
		}
		keyringAlgos, _ := kb.SupportedAlgorithms()
		algo, err := keyring.NewSigningAlgoFromString(algoStr, keyringAlgos)
		if err != nil {
			return err
		}
		addr, secret, err := server.GenerateSaveCoinKey(kb, nodeDirName, true, algo)
		if err != nil {
			_ = os.RemoveAll(outputDir)
			return err
		}

		cliPrint, err := json.Marshal(map[string]string{"secret": secret})
		if err != nil {
			return err
		}
		// save private key seed words
		if err := writeFile(fmt.Sprintf("%v.json", "key_seed"), nodeDir, cliPrint); err != nil {
			return err
		}

		accTokens := sdk.TokensFromConsensusPower(1000, sdk.DefaultPowerReduction)
		genBalances = append(genBalances, banktypes.Balance{
			Address: addr.String(),
			Coins:   sdk.NewCoins(sdk.NewCoin(escrowtypes.DefaultDenom, accTokens)),
		})
		genAccounts = append(genAccounts, authtypes.NewBaseAccount(addr, nil, 0, 0))
		orgMembers = append(orgMembers, orgtypes.NewMember(addr, uint64(numValidators-i))) // unique shares

		srvconfig.WriteConfigFile(filepath.Join(nodeDir, "config/app.toml"), appConfig)
	}

	appState, err := initGenesisState(clientCtx, mbm, genAccounts, genBalances, orgMembers)
	if err != nil {
		return err
	}

	genTime := tmtime.Now()
	for i := 0; i < numValidators; i++ {
		var portOffset int
		if singleMachine {
			portOffset = i
		}
		nodeDirName := fmt.Sprintf("%s%d", nodeDirPrefix, i)
		nodeConfig.SetRoot(filepath.Join(outputDir, nodeDirName, nodeDaemonHome))
		nodeConfig.Moniker = nodeDirName
		nodeConfig.RPC.ListenAddress = fmt.Sprintf("tcp://0.0.0.0:%d", rpcPort+portOffset)
		nodeConfig.P2P.ListenAddress = fmt.Sprintf("tcp://0.0.0.0:%d", p2pPortStart+portOffset)
		nodeConfig.P2P.PersistentPeers, err = persistentPeers(nodeIDs, i, startingIPAddress, p2pPortStart, singleMachine)
		if err != nil {
			return err
		}
		tmconfig.WriteConfigFile(filepath.Join(nodeConfig.RootDir, "config", "config.toml"), nodeConfig)

		genDoc := types.GenesisDoc{
			ChainID:     chainID,
			GenesisTime: genTime,
			AppState:    appState,
			Validators:  genValidators,
		}
		if err := genDoc.SaveAs(genFiles[i]); err != nil {
			return err
		}
	}

	cmd.PrintErrf("Successfully initialized %d node directories\n", numValidators)
	return nil
}

// initGenesisState funds the node accounts and registers them as founding organization
func initGenesisState(
	clientCtx client.Context,
	mbm module.BasicManager,
	genAccounts []authtypes.GenesisAccount,
	genBalances []banktypes.Balance,
	orgMembers []orgtypes.Member,
) (json.RawMessage, error) {
	appGenState := app.NewDefaultGenesisState()

	// set the accounts in the genesis state
	var authGenState authtypes.GenesisState
	clientCtx.Codec.MustUnmarshalJSON(appGenState[authtypes.ModuleName], &authGenState)
	accounts, err := authtypes.PackAccounts(genAccounts)
	if err != nil {
		return nil, err
	}
	authGenState.Accounts = accounts
	appGenState[authtypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(&authGenState)

	// set the balances in the genesis state
	var bankGenState banktypes.GenesisState
	clientCtx.Codec.MustUnmarshalJSON(appGenState[banktypes.ModuleName], &bankGenState)
	var total sdk.Coins
	for _, v := range genBalances {
		total = total.Add(v.Coins...)
	}
	bankGenState.Supply = bankGenState.Supply.Add(total...)
	bankGenState.Balances = banktypes.SanitizeGenesisBalances(genBalances)
	appGenState[banktypes.ModuleName] = clientCtx.Codec.MustMarshalJSON(&bankGenState)

	appGenStateJSON, err := json.MarshalIndent(appGenState, "", "  ")
	if err != nil {
		return nil, err
	}
	if appGenStateJSON, _, err = addGenesisOrg(appGenStateJSON, orgMembers[0].Address, orgMembers, orgtypes.Majority()); err != nil {
		return nil, err
	}
	var final map[string]json.RawMessage
	if err := json.Unmarshal(appGenStateJSON, &final); err != nil {
		return nil, err
	}
	return appGenStateJSON, mbm.ValidateGenesis(clientCtx.Codec, clientCtx.TxConfig, final)
}

func persistentPeers(nodeIDs []string, self int, startingIPAddr string, p2pPortStart int, singleMachine bool) (string, error) {
	var peers []string
	for i, id := range nodeIDs {
		if i == self {
			continue
		}
		ip := "127.0.0.1"
		port := p2pPortStart + i
		if !singleMachine {
			var err error
			if ip, err = getIP(i, startingIPAddr); err != nil {
				return "", err
			}
			port = p2pPortStart
		}
		peers = append(peers, fmt.Sprintf("%s@%s:%d", id, ip, port))
	}
	return strings.Join(peers, ","), nil
}

func getIP(i int, startingIPAddr string) (ip string, err error) {
	if len(startingIPAddr) == 0 {
		ip, err = server.ExternalIP()
		if err != nil {
			return "", err
		}
		return ip, nil
	}
	return calculateIP(startingIPAddr, i)
}

func calculateIP(ip string, i int) (string, error) {
	ipv4 := net.ParseIP(ip).To4()
	if ipv4 == nil {
		return "", fmt.Errorf("%v: non ipv4 address", ip)
	}

	for j := 0; j < i; j++ {
		ipv4[3]++
	}

	return ipv4.String(), nil
}

func writeFile(name string, dir string, contents []byte) error {
	file := filepath.Join(dir, name)
	if err := tmos.EnsureDir(dir, 0755); err != nil {
		return err
	}
	return tmos.WriteFile(file, contents, 0644)
}
