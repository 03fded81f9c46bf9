package testing

import (
	"bufio"
	"container/ring"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	client "github.com/tendermint/tendermint/rpc/client/http"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	"github.com/tendermint/tendermint/types"

	escrowtypes "github.com/confio/tbounty/x/escrow/types"
)

const daemon = "tbountyd"

var (
	workDir         string
	defaultWaitTime = 30 * time.Second
)

// SystemUnderTest is a local tbountyd cluster created with `tbountyd testnet`
type SystemUnderTest struct {
	blockListener *EventListener
	currentHeight int64
	chainID       string
	outputDir     string
	blockTime     time.Duration
	rpcAddr       string
	nodesCount    int
	minGasPrice   string
	cleanupFn     []CleanupFn
	outBuff       *ring.Ring
	errBuff       *ring.Ring
	out           io.Writer
	verbose       bool
}

func NewSystemUnderTest(verbose bool, nodesCount int, blockTime time.Duration) *SystemUnderTest {
	return &SystemUnderTest{
		chainID:     "testing",
		outputDir:   "./testnet",
		blockTime:   blockTime,
		rpcAddr:     "tcp://localhost:26657",
		nodesCount:  nodesCount,
		minGasPrice: "0.000006" + escrowtypes.DefaultDenom,
		outBuff:     ring.New(100),
		errBuff:     ring.New(100),
		out:         os.Stdout,
		verbose:     verbose,
	}
}

// SetupChain writes the node homes and keeps a copy of the generated genesis for resets
func (s *SystemUnderTest) SetupChain() {
	s.Log("Setup chain\n")
	out, err := s.daemonCmd(
		"testnet",
		"--chain-id="+s.chainID,
		"--output-dir="+s.outputDir,
		"--v="+strconv.Itoa(s.nodesCount),
		"--keyring-backend=test",
		"--commit-timeout="+s.blockTime.String(),
		"--minimum-gas-prices="+s.minGasPrice,
		"--starting-ip-address", "", // empty to use host systems
		"--single-host",
	).CombinedOutput()
	if err != nil {
		panic(fmt.Sprintf("unexpected error :%#+v, output: %s", err, string(out)))
	}
	s.Log(string(out))

	genesis, err := os.ReadFile(s.genesisFile(0))
	if err != nil {
		panic(fmt.Sprintf("read genesis: %#+v", err))
	}
	if err := os.WriteFile(s.genesisFile(0)+".orig", genesis, 0o600); err != nil {
		panic(fmt.Sprintf("backup genesis: %#+v", err))
	}
}

// StartChain starts all nodes and tracks the block height until the chain is stopped
func (s *SystemUnderTest) StartChain(t *testing.T) {
	s.Log("Start chain\n")
	s.forEachNodesExecAsync(t, "start", "--trace", "--log_level=info")
	s.awaitChainUp(t)

	t.Log("Start new block listener")
	s.blockListener = NewEventListener(t, s.rpcAddr)
	s.cleanupFn = append(s.cleanupFn,
		s.blockListener.Subscribe("tm.event='NewBlock'", func(e ctypes.ResultEvent) (more bool) {
			newBlock, ok := e.Data.(types.EventDataNewBlock)
			require.True(t, ok, "unexpected type %T", e.Data)
			atomic.StoreInt64(&s.currentHeight, newBlock.Block.Height)
			return true
		}),
	)
}

// awaitChainUp polls the node0 status until the first block was committed
func (s *SystemUnderTest) awaitChainUp(t *testing.T) {
	t.Log("Await chain starts")
	ctx, done := context.WithTimeout(context.Background(), defaultWaitTime)
	defer done()

	for {
		if height, ok := s.latestHeight(ctx); ok && height > 0 {
			t.Logf("Node started. Current block: %d\n", height)
			atomic.StoreInt64(&s.currentHeight, height)
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for chain start: %s", defaultWaitTime)
		case <-time.After(s.blockTime):
		}
	}
}

func (s *SystemUnderTest) latestHeight(ctx context.Context) (int64, bool) {
	con, err := client.New(s.rpcAddr, "/websocket")
	if err != nil {
		return 0, false
	}
	result, err := con.Status(ctx)
	if err != nil {
		return 0, false
	}
	return result.SyncInfo.LatestBlockHeight, true
}

// StopChain stops the system under test and executes all registered cleanup callbacks
func (s *SystemUnderTest) StopChain() {
	s.Log("Stop chain\n")
	for _, c := range s.cleanupFn {
		c()
	}
	s.cleanupFn = nil
	cmd := exec.Command(locateExecutable("pkill"), "-15", daemon)
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		s.Logf("failed to stop chain: %s\n", err)
	}
	s.Log(string(out))
}

// ResetChain stops all nodes, restores the original genesis and clears the node state
func (s *SystemUnderTest) ResetChain(t *testing.T) {
	t.Log("Reset chain")
	s.StopChain()
	s.SetGenesis(t, s.genesisFile(0)+".orig")
	s.ForEachNodeExecAndWait(t, []string{"unsafe-reset-all"})
	atomic.StoreInt64(&s.currentHeight, 0)
}

// PrintBuffer prints the chain logs to the console
func (s *SystemUnderTest) PrintBuffer() {
	s.outBuff.Do(func(v interface{}) {
		if v != nil {
			fmt.Fprintf(s.out, "out> %s\n", v)
		}
	})
	fmt.Fprint(s.out, "8< chain err -----------------------------------------\n")
	s.errBuff.Do(func(v interface{}) {
		if v != nil {
			fmt.Fprintf(s.out, "err> %s\n", v)
		}
	})
}

// BuildNewBinary installs the tbountyd binary from the work dir sources
func (s *SystemUnderTest) BuildNewBinary() {
	s.Log("Install binaries\n")
	cmd := exec.Command(locateExecutable("go"), "install", "./cmd/"+daemon)
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#v : output: %s", err, string(out)))
	}
}

// CurrentHeight returns the last block height seen by the block listener
func (s *SystemUnderTest) CurrentHeight() int64 {
	return atomic.LoadInt64(&s.currentHeight)
}

// AwaitNextBlock waits until a block above the current height was committed
func (s *SystemUnderTest) AwaitNextBlock(t *testing.T) int64 {
	return s.AwaitBlockHeight(t, s.CurrentHeight()+1)
}

// AwaitBlockHeight waits until the given height was committed. Fails after twice the block time
// per missing block.
func (s *SystemUnderTest) AwaitBlockHeight(t *testing.T, height int64) int64 {
	t.Helper()
	missing := height - s.CurrentHeight()
	if missing < 1 {
		missing = 1
	}
	timeout := time.NewTimer(s.blockTime * 2 * time.Duration(missing))
	defer timeout.Stop()
	for {
		if got := s.CurrentHeight(); got >= height {
			return got
		}
		select {
		case <-timeout.C:
			t.Fatalf("Timeout - block %d not reached, current %d", height, s.CurrentHeight())
		case <-time.After(s.blockTime / 10):
		}
	}
}

// ModifyGenesisCLI executes the commands to modify the genesis
func (s *SystemUnderTest) ModifyGenesisCLI(t *testing.T, cmds ...[]string) {
	s.ForEachNodeExecAndWait(t, cmds...)
}

// GenesisMutator transforms the raw genesis document
type GenesisMutator func([]byte) []byte

// ModifyGenesisJSON applies the mutators to the node0 genesis and copies the result to all nodes
func (s *SystemUnderTest) ModifyGenesisJSON(t *testing.T, mutators ...GenesisMutator) {
	current, err := os.ReadFile(s.genesisFile(0))
	require.NoError(t, err)
	for _, m := range mutators {
		current = m(current)
	}
	out := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(out, current, 0o600))
	s.SetGenesis(t, out)
}

// SetGenesis copies the genesis file to all nodes
func (s *SystemUnderTest) SetGenesis(t *testing.T, srcPath string) {
	genesis, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	for i := 0; i < s.nodesCount; i++ {
		require.NoError(t, os.WriteFile(s.genesisFile(i), genesis, 0o600))
	}
}

// ForEachNodeExecAndWait runs the given tbountyd commands for all cluster nodes synchronously
func (s *SystemUnderTest) ForEachNodeExecAndWait(t *testing.T, cmds ...[]string) {
	s.withEachNodeHome(func(i int, home string) {
		for _, args := range cmds {
			args = append(args, "--home", home)
			s.Logf("Execute `%s %s`\n", daemon, strings.Join(args, " "))
			out, err := s.daemonCmd(args...).CombinedOutput()
			require.NoError(t, err, "node %d: %s", i, string(out))
			s.Logf("Result: %s\n", string(out))
		}
	})
}

// forEachNodesExecAsync runs the given tbountyd command for all cluster nodes and returns without waiting
func (s *SystemUnderTest) forEachNodesExecAsync(t *testing.T, args ...string) []func() error {
	r := make([]func() error, s.nodesCount)
	s.withEachNodeHome(func(i int, home string) {
		nodeArgs := append(append([]string{}, args...), "--home", home)
		s.Logf("Execute `%s %s`\n", daemon, strings.Join(nodeArgs, " "))
		cmd := s.daemonCmd(nodeArgs...)
		s.watchLogs(cmd)
		require.NoError(t, cmd.Start(), "node %d", i)
		r[i] = cmd.Wait
	})
	return r
}

func (s *SystemUnderTest) daemonCmd(args ...string) *exec.Cmd {
	cmd := exec.Command(locateExecutable(daemon), args...) //nolint:gosec
	cmd.Dir = workDir
	return cmd
}

func (s *SystemUnderTest) watchLogs(cmd *exec.Cmd) {
	errReader, err := cmd.StderrPipe()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#+v", err))
	}
	go appendToBuf(errReader, s.errBuff)

	outReader, err := cmd.StdoutPipe()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#+v", err))
	}
	go appendToBuf(outReader, s.outBuff)
}

func appendToBuf(r io.Reader, b *ring.Ring) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.Value = scanner.Text()
		b = b.Next()
	}
}

func (s *SystemUnderTest) withEachNodeHome(cb func(i int, home string)) {
	for i := 0; i < s.nodesCount; i++ {
		cb(i, s.nodePath(i))
	}
}

func (s *SystemUnderTest) nodePath(i int) string {
	return fmt.Sprintf("%s/node%d/tbounty", s.outputDir, i)
}

func (s *SystemUnderTest) genesisFile(i int) string {
	return filepath.Join(workDir, s.nodePath(i), "config", "genesis.json")
}

func (s *SystemUnderTest) Log(msg string) {
	if s.verbose {
		fmt.Fprint(s.out, msg)
	}
}

func (s *SystemUnderTest) Logf(msg string, args ...interface{}) {
	s.Log(fmt.Sprintf(msg, args...))
}

// locateExecutable looks up the binary on the OS path.
func locateExecutable(file string) string {
	path, err := exec.LookPath(file)
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#v", err))
	}
	if path == "" {
		panic(fmt.Sprintf("%q not found", file))
	}
	return path
}

type (
	CleanupFn     func()
	EventConsumer func(e ctypes.ResultEvent) (more bool)
)

// EventListener watches for events on the chain
type EventListener struct {
	t      *testing.T
	client *client.HTTP
}

// NewEventListener event listener
func NewEventListener(t *testing.T, rpcAddr string) *EventListener {
	httpClient, err := client.New(rpcAddr, "/websocket")
	require.NoError(t, err)
	require.NoError(t, httpClient.Start())
	return &EventListener{client: httpClient, t: t}
}

// Subscribe to receive events for a topic. The returned function unsubscribes.
// For query syntax See https://docs.cosmos.network/master/core/events.html#subscribing-to-events
func (l *EventListener) Subscribe(query string, cb EventConsumer) CleanupFn {
	ctx, done := context.WithCancel(context.Background())
	eventsChan, err := l.client.WSEvents.Subscribe(ctx, "testing", query)
	require.NoError(l.t, err)
	cleanup := func() {
		unsubCtx, cancel := context.WithTimeout(context.Background(), defaultWaitTime)
		defer cancel()
		_ = l.client.WSEvents.Unsubscribe(unsubCtx, "testing", query)
		done()
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-eventsChan:
				if !cb(e) {
					return
				}
			}
		}
	}()
	return cleanup
}
