package app

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/grpc/tmservice"
	"github.com/cosmos/cosmos-sdk/client/rpc"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/server/api"
	"github.com/cosmos/cosmos-sdk/server/config"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/auth/ante"
	authrest "github.com/cosmos/cosmos-sdk/x/auth/client/rest"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/bank"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/cosmos-sdk/x/crisis"
	crisiskeeper "github.com/cosmos/cosmos-sdk/x/crisis/keeper"
	crisistypes "github.com/cosmos/cosmos-sdk/x/crisis/types"
	"github.com/cosmos/cosmos-sdk/x/params"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/spf13/cast"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	tmos "github.com/tendermint/tendermint/libs/os"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/tbounty/x/bounty"
	bountykeeper "github.com/confio/tbounty/x/bounty/keeper"
	bountytypes "github.com/confio/tbounty/x/bounty/types"
	"github.com/confio/tbounty/x/escrow"
	escrowkeeper "github.com/confio/tbounty/x/escrow/keeper"
	escrowtypes "github.com/confio/tbounty/x/escrow/types"
	"github.com/confio/tbounty/x/globalfee"
	"github.com/confio/tbounty/x/org"
	orgkeeper "github.com/confio/tbounty/x/org/keeper"
	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/registry"
	registrykeeper "github.com/confio/tbounty/x/registry/keeper"
	registrytypes "github.com/confio/tbounty/x/registry/types"
	"github.com/confio/tbounty/x/vote"
	votekeeper "github.com/confio/tbounty/x/vote/keeper"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

const appName = "TbountyApp"

// FlagSimulationGasLimit is the app option key for the max gas of a simulated tx
const FlagSimulationGasLimit = "tbounty.simulation_gas_limit"

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// ModuleBasics defines the module BasicManager is in charge of setting up basic,
	// non-dependant module elements, such as codec registration
	// and genesis verification.
	ModuleBasics = module.NewBasicManager(
		auth.AppModuleBasic{},
		bank.AppModuleBasic{},
		params.AppModuleBasic{},
		crisis.AppModuleBasic{},
		registry.AppModuleBasic{},
		org.AppModuleBasic{},
		vote.AppModuleBasic{},
		escrow.AppModuleBasic{},
		bounty.AppModuleBasic{},
		globalfee.AppModuleBasic{},
	)

	// module account permissions
	maccPerms = map[string][]string{
		authtypes.FeeCollectorName: nil,
		escrowtypes.ModuleName:     nil,
	}
)

var (
	_ servertypes.Application = (*TbountyApp)(nil)
)

// TbountyApp extended ABCI application
type TbountyApp struct {
	*baseapp.BaseApp
	legacyAmino       *codec.LegacyAmino
	appCodec          codec.Codec
	interfaceRegistry types.InterfaceRegistry

	invCheckPeriod uint
	homePath       string

	// keys to access the substores
	keys  map[string]*sdk.KVStoreKey
	tkeys map[string]*sdk.TransientStoreKey

	// keepers
	accountKeeper  authkeeper.AccountKeeper
	bankKeeper     bankkeeper.Keeper
	crisisKeeper   crisiskeeper.Keeper
	paramsKeeper   paramskeeper.Keeper
	registryKeeper registrykeeper.Keeper
	orgKeeper      orgkeeper.Keeper
	voteKeeper     votekeeper.Keeper
	escrowKeeper   escrowkeeper.Keeper
	bountyKeeper   bountykeeper.Keeper

	// the module manager
	mm *module.Manager

	configurator module.Configurator
}

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".tbounty")
}

// NewTbountyApp returns a reference to an initialized TbountyApp.
func NewTbountyApp(
	logger log.Logger,
	db dbm.DB,
	traceStore io.Writer,
	loadLatest bool,
	skipGenesisInvariants bool,
	homePath string,
	invCheckPeriod uint,
	appOpts servertypes.AppOptions,
	baseAppOptions ...func(*baseapp.BaseApp),
) *TbountyApp {
	encodingConfig := MakeEncodingConfig()
	appCodec, legacyAmino := encodingConfig.Marshaler, encodingConfig.Amino
	interfaceRegistry := encodingConfig.InterfaceRegistry

	bApp := baseapp.NewBaseApp(appName, logger, db, encodingConfig.TxConfig.TxDecoder(), baseAppOptions...)
	bApp.SetCommitMultiStoreTracer(traceStore)
	bApp.SetVersion(version.Version)
	bApp.SetInterfaceRegistry(interfaceRegistry)

	keys := sdk.NewKVStoreKeys(
		authtypes.StoreKey, banktypes.StoreKey, paramstypes.StoreKey,
		registrytypes.StoreKey, orgtypes.StoreKey, votetypes.StoreKey,
		escrowtypes.StoreKey, bountytypes.StoreKey,
	)
	tkeys := sdk.NewTransientStoreKeys(paramstypes.TStoreKey)

	app := &TbountyApp{
		BaseApp:           bApp,
		legacyAmino:       legacyAmino,
		appCodec:          appCodec,
		interfaceRegistry: interfaceRegistry,
		invCheckPeriod:    invCheckPeriod,
		homePath:          homePath,
		keys:              keys,
		tkeys:             tkeys,
	}

	app.paramsKeeper = initParamsKeeper(appCodec, legacyAmino, keys[paramstypes.StoreKey], tkeys[paramstypes.TStoreKey])

	// set the BaseApp's parameter store
	bApp.SetParamStore(app.paramsKeeper.Subspace(baseapp.Paramspace).WithKeyTable(paramskeeper.ConsensusParamsKeyTable()))

	app.accountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		keys[authtypes.StoreKey],
		app.getSubspace(authtypes.ModuleName),
		authtypes.ProtoBaseAccount,
		maccPerms,
	)
	app.bankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		keys[banktypes.StoreKey],
		app.accountKeeper,
		app.getSubspace(banktypes.ModuleName),
		app.ModuleAccountAddrs(),
	)
	app.crisisKeeper = crisiskeeper.NewKeeper(
		app.getSubspace(crisistypes.ModuleName),
		invCheckPeriod,
		app.bankKeeper,
		authtypes.FeeCollectorName,
	)

	app.registryKeeper = registrykeeper.NewKeeper(keys[registrytypes.StoreKey])
	app.orgKeeper = orgkeeper.NewKeeper(orgtypes.ModuleCdc, keys[orgtypes.StoreKey], app.registryKeeper, app.bankKeeper)
	app.escrowKeeper = escrowkeeper.NewKeeper(
		escrowtypes.ModuleCdc,
		keys[escrowtypes.StoreKey],
		app.getSubspace(escrowtypes.ModuleName),
		app.accountKeeper,
		app.bankKeeper,
	)

	// the bounty executors need the bounty keeper which depends on the vote keeper.
	// Routes are added before the router is sealed below.
	voteRouter := votetypes.NewRouter()
	voteRouter.AddRoute(votetypes.ProposalKindOrgChange, org.NewProposalHandler(app.orgKeeper))
	app.voteKeeper = votekeeper.NewKeeper(
		votetypes.ModuleCdc,
		keys[votetypes.StoreKey],
		app.getSubspace(votetypes.ModuleName),
		app.registryKeeper,
		app.orgKeeper,
		voteRouter,
	)
	app.bountyKeeper = bountykeeper.NewKeeper(
		bountytypes.ModuleCdc,
		keys[bountytypes.StoreKey],
		app.getSubspace(bountytypes.ModuleName),
		app.registryKeeper,
		app.orgKeeper,
		app.voteKeeper,
		app.escrowKeeper,
	)
	bountyExecutor := bounty.NewProposalHandler(app.bountyKeeper)
	voteRouter.AddRoute(votetypes.ProposalKindMilestoneApproval, bountyExecutor).
		AddRoute(votetypes.ProposalKindPayout, bountyExecutor).
		AddRoute(votetypes.ProposalKindBountyCancel, bountyExecutor)
	voteRouter.Seal()

	app.mm = module.NewManager(
		auth.NewAppModule(appCodec, app.accountKeeper, nil),
		bank.NewAppModule(appCodec, app.bankKeeper, app.accountKeeper),
		params.NewAppModule(app.paramsKeeper),
		crisis.NewAppModule(&app.crisisKeeper, skipGenesisInvariants),
		registry.NewAppModule(app.registryKeeper),
		org.NewAppModule(app.orgKeeper),
		vote.NewAppModule(app.voteKeeper),
		escrow.NewAppModule(app.escrowKeeper),
		bounty.NewAppModule(app.bountyKeeper),
		globalfee.NewAppModule(app.getSubspace(globalfee.ModuleName)),
	)

	app.mm.SetOrderBeginBlockers(
		authtypes.ModuleName,
		banktypes.ModuleName,
		paramstypes.ModuleName,
		registrytypes.ModuleName,
		orgtypes.ModuleName,
		votetypes.ModuleName,
		escrowtypes.ModuleName,
		bountytypes.ModuleName,
		globalfee.ModuleName,
		crisistypes.ModuleName,
	)
	// expired proposals are failed before the invariants are asserted
	app.mm.SetOrderEndBlockers(
		authtypes.ModuleName,
		banktypes.ModuleName,
		paramstypes.ModuleName,
		registrytypes.ModuleName,
		orgtypes.ModuleName,
		escrowtypes.ModuleName,
		bountytypes.ModuleName,
		globalfee.ModuleName,
		votetypes.ModuleName,
		crisistypes.ModuleName,
	)

	// NOTE: the registry must be initialized before any module checking its ids against
	// the issued ones. The crisis module must come last so that the invariants run on the
	// full genesis state.
	app.mm.SetOrderInitGenesis(
		authtypes.ModuleName,
		banktypes.ModuleName,
		paramstypes.ModuleName,
		registrytypes.ModuleName,
		orgtypes.ModuleName,
		votetypes.ModuleName,
		escrowtypes.ModuleName,
		bountytypes.ModuleName,
		globalfee.ModuleName,
		crisistypes.ModuleName,
	)

	app.mm.RegisterInvariants(&app.crisisKeeper)
	app.mm.RegisterRoutes(app.Router(), app.QueryRouter(), encodingConfig.Amino)
	app.configurator = module.NewConfigurator(app.appCodec, app.MsgServiceRouter(), app.GRPCQueryRouter())
	app.mm.RegisterServices(app.configurator)

	// initialize stores
	app.MountKVStores(keys)
	app.MountTransientStores(tkeys)

	// initialize BaseApp
	app.SetInitChainer(app.InitChainer)
	app.SetBeginBlocker(app.BeginBlocker)
	app.SetEndBlocker(app.EndBlocker)

	var simulationGasLimit *sdk.Gas
	if limit := cast.ToUint64(appOpts.Get(FlagSimulationGasLimit)); limit != 0 {
		simulationGasLimit = &limit
	}
	app.SetAnteHandler(NewAnteHandler(
		app.accountKeeper,
		app.bankKeeper,
		ante.DefaultSigVerificationGasConsumer,
		encodingConfig.TxConfig.SignModeHandler(),
		app.getSubspace(globalfee.ModuleName),
		simulationGasLimit,
	))

	if loadLatest {
		if err := app.LoadLatestVersion(); err != nil {
			tmos.Exit(err.Error())
		}
	}
	return app
}

// Name returns the name of the App
func (app *TbountyApp) Name() string { return app.BaseApp.Name() }

// BeginBlocker application updates every begin block
func (app *TbountyApp) BeginBlocker(ctx sdk.Context, req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	return app.mm.BeginBlock(ctx, req)
}

// EndBlocker application updates every end block
func (app *TbountyApp) EndBlocker(ctx sdk.Context, req abci.RequestEndBlock) abci.ResponseEndBlock {
	return app.mm.EndBlock(ctx, req)
}

// InitChainer application update at chain initialization. The validator set is static,
// it is taken from the genesis document and handed back unchanged.
func (app *TbountyApp) InitChainer(ctx sdk.Context, req abci.RequestInitChain) abci.ResponseInitChain {
	var genesisState GenesisState
	if err := json.Unmarshal(req.AppStateBytes, &genesisState); err != nil {
		panic(err)
	}
	res := app.mm.InitGenesis(ctx, app.appCodec, genesisState)
	res.Validators = req.Validators
	return res
}

// LoadHeight loads a particular height
func (app *TbountyApp) LoadHeight(height int64) error {
	return app.LoadVersion(height)
}

// ModuleAccountAddrs returns all the app's module account addresses.
func (app *TbountyApp) ModuleAccountAddrs() map[string]bool {
	modAccAddrs := make(map[string]bool)
	for acc := range maccPerms {
		modAccAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	return modAccAddrs
}

// LegacyAmino returns the app's amino codec. Transactions and the module state of the ledger
// modules are amino encoded.
func (app *TbountyApp) LegacyAmino() *codec.LegacyAmino {
	return app.legacyAmino
}

// AppCodec returns the app's proto codec used for the sdk modules.
func (app *TbountyApp) AppCodec() codec.Codec {
	return app.appCodec
}

// InterfaceRegistry returns the app's InterfaceRegistry
func (app *TbountyApp) InterfaceRegistry() types.InterfaceRegistry {
	return app.interfaceRegistry
}

func (app *TbountyApp) getSubspace(moduleName string) paramstypes.Subspace {
	subspace, ok := app.paramsKeeper.GetSubspace(moduleName)
	if !ok {
		panic("unknown subspace: " + moduleName)
	}
	return subspace
}

// RegisterAPIRoutes registers all application module routes with the provided
// API server.
func (app *TbountyApp) RegisterAPIRoutes(apiSvr *api.Server, _ config.APIConfig) {
	clientCtx := apiSvr.ClientCtx
	rpc.RegisterRoutes(clientCtx, apiSvr.Router)
	authrest.RegisterTxRoutes(clientCtx, apiSvr.Router)
	authtx.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)
	tmservice.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)

	ModuleBasics.RegisterRESTRoutes(clientCtx, apiSvr.Router)
	ModuleBasics.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)
}

// RegisterTxService implements the Application.RegisterTxService method.
func (app *TbountyApp) RegisterTxService(clientCtx client.Context) {
	authtx.RegisterTxService(app.BaseApp.GRPCQueryRouter(), clientCtx, app.BaseApp.Simulate, app.interfaceRegistry)
}

// RegisterTendermintService implements the Application.RegisterTendermintService method.
func (app *TbountyApp) RegisterTendermintService(clientCtx client.Context) {
	tmservice.RegisterTendermintService(app.BaseApp.GRPCQueryRouter(), clientCtx, app.interfaceRegistry)
}

// GetMaccPerms returns a copy of the module account permissions
func GetMaccPerms() map[string][]string {
	dupMaccPerms := make(map[string][]string)
	for k, v := range maccPerms {
		dupMaccPerms[k] = v
	}
	return dupMaccPerms
}

// initParamsKeeper init params keeper and its subspaces
func initParamsKeeper(appCodec codec.BinaryCodec, legacyAmino *codec.LegacyAmino, key, tkey sdk.StoreKey) paramskeeper.Keeper {
	paramsKeeper := paramskeeper.NewKeeper(appCodec, legacyAmino, key, tkey)

	paramsKeeper.Subspace(authtypes.ModuleName)
	paramsKeeper.Subspace(banktypes.ModuleName)
	paramsKeeper.Subspace(crisistypes.ModuleName)
	paramsKeeper.Subspace(votetypes.ModuleName)
	paramsKeeper.Subspace(escrowtypes.ModuleName)
	paramsKeeper.Subspace(bountytypes.ModuleName)
	paramsKeeper.Subspace(globalfee.ModuleName)

	return paramsKeeper
}
