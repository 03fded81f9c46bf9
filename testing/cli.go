package testing

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	"github.com/cosmos/cosmos-sdk/client/rpc"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/confio/tbounty/app"
	escrowtypes "github.com/confio/tbounty/x/escrow/types"
)

// TbountyCli wraps the command line interface
type TbountyCli struct {
	t             *testing.T
	nodeAddress   string
	chainID       string
	homeDir       string
	fees          string
	Debug         bool
	amino         *codec.LegacyAmino
	assertErrorFn func(t require.TestingT, err error, msgAndArgs ...interface{})
}

func NewTbountyCli(t *testing.T, sut *SystemUnderTest, verbose bool) *TbountyCli {
	return NewTbountyCliX(t, sut.rpcAddr, sut.chainID, filepath.Join(workDir, sut.nodePath(0)), verbose)
}

func NewTbountyCliX(t *testing.T, nodeAddress string, chainID string, homeDir string, debug bool) *TbountyCli {
	return &TbountyCli{
		t:             t,
		nodeAddress:   nodeAddress,
		chainID:       chainID,
		homeDir:       homeDir,
		fees:          "2" + escrowtypes.DefaultDenom,
		Debug:         debug,
		amino:         app.MakeEncodingConfig().Amino,
		assertErrorFn: require.NoError,
	}
}

// RunErrorAssert is custom type that is satisfies by testify matchers as well
type RunErrorAssert func(t require.TestingT, err error, msgAndArgs ...interface{})

// WithRunErrorMatcher assert function to ensure run command error value
func (c TbountyCli) WithRunErrorMatcher(f RunErrorAssert) TbountyCli {
	return TbountyCli{
		t:             c.t,
		nodeAddress:   c.nodeAddress,
		chainID:       c.chainID,
		homeDir:       c.homeDir,
		fees:          c.fees,
		Debug:         c.Debug,
		amino:         c.amino,
		assertErrorFn: f,
	}
}

func (c TbountyCli) WithNodeAddress(addr string) TbountyCli {
	return TbountyCli{
		t:             c.t,
		nodeAddress:   addr,
		chainID:       c.chainID,
		homeDir:       c.homeDir,
		fees:          c.fees,
		Debug:         c.Debug,
		amino:         c.amino,
		assertErrorFn: c.assertErrorFn,
	}
}

func (c TbountyCli) CustomCommand(args ...string) string {
	args = c.withTXFlags(args...)
	return c.run(args)
}

func (c TbountyCli) Keys(args ...string) string {
	args = c.withKeyringFlags(args...)
	return c.run(args)
}

func (c TbountyCli) CustomQuery(args ...string) string {
	args = c.withQueryFlags(args...)
	return c.run(args)
}

func (c TbountyCli) run(args []string) string {
	if c.Debug {
		c.t.Logf("+++ running `%s %s`", daemon, strings.Join(args, " "))
	}
	gotOut, gotErr := func() (out []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("recovered from panic: %v", r)
			}
		}()
		cmd := exec.Command(locateExecutable(daemon), args...) //nolint:gosec
		cmd.Dir = workDir
		return cmd.CombinedOutput()
	}()
	c.assertErrorFn(c.t, gotErr, string(gotOut))
	return string(gotOut)
}

func (c TbountyCli) withQueryFlags(args ...string) []string {
	args = append(args, "--output", "json")
	return c.withChainFlags(args...)
}

func (c TbountyCli) withTXFlags(args ...string) []string {
	args = append(args,
		"--broadcast-mode", "block",
		"--output", "json",
		"--yes",
	)
	if !hasFlag(args, "--fees") {
		args = append(args, "--fees", c.fees)
	}
	args = c.withKeyringFlags(args...)
	return c.withChainFlags(args...)
}

func (c TbountyCli) withKeyringFlags(args ...string) []string {
	r := append(args,
		"--home", c.homeDir,
		"--keyring-backend", "test",
	)
	for _, v := range args {
		if v == "-a" || v == "--address" { // show address only
			return r
		}
	}
	return append(r, "--output", "json")
}

func (c TbountyCli) withChainFlags(args ...string) []string {
	return append(args,
		"--node", c.nodeAddress,
		"--chain-id", c.chainID,
	)
}

// AddKey add key to default keyring. Returns address
func (c TbountyCli) AddKey(name string) string {
	cmd := c.withKeyringFlags("keys", "add", name, "--no-backup")
	out := c.run(cmd)
	addr := gjson.Get(out, "address").String()
	require.NotEmpty(c.t, addr, "got %q", out)
	return addr
}

// GetKeyAddr returns address
func (c TbountyCli) GetKeyAddr(name string) string {
	cmd := c.withKeyringFlags("keys", "show", name, "-a")
	out := c.run(cmd)
	addr := strings.Trim(out, "\n")
	require.NotEmpty(c.t, addr, "got %q", out)
	return addr
}

const defaultSrcAddr = "node0"

// FundAddress sends the token amount to the destination address
func (c TbountyCli) FundAddress(destAddr, amount string) string {
	require.NotEmpty(c.t, destAddr)
	require.NotEmpty(c.t, amount)
	cmd := []string{"tx", "bank", "send", defaultSrcAddr, destAddr, amount}
	rsp := c.run(c.withTXFlags(cmd...))
	RequireTxSuccess(c.t, rsp)
	return rsp
}

// PostBounty posts a bounty with the given amount from the key. Returns the bounty id
func (c TbountyCli) PostBounty(from string, amount int64, contentHash string, args ...string) uint64 {
	cmd := append([]string{"tx", "bounty", "post", strconv.FormatInt(amount, 10), contentHash, "--from", from}, args...)
	rsp := c.run(c.withTXFlags(cmd...))
	RequireTxSuccess(c.t, rsp)
	return eventAttrUint(c.t, rsp, "bounty_id")
}

// SubmitMilestone submits a milestone claim to a bounty. Returns the submission id
func (c TbountyCli) SubmitMilestone(from string, bountyID uint64, amount int64, contentHash string) uint64 {
	cmd := []string{"tx", "bounty", "submit", strconv.FormatUint(bountyID, 10), strconv.FormatInt(amount, 10), contentHash, "--from", from}
	rsp := c.run(c.withTXFlags(cmd...))
	RequireTxSuccess(c.t, rsp)
	return eventAttrUint(c.t, rsp, "submission_id")
}

// ApproveSubmission approves a submission by the bounty depositer. Returns the tx response
func (c TbountyCli) ApproveSubmission(from string, submissionID uint64) string {
	cmd := []string{"tx", "bounty", "approve", strconv.FormatUint(submissionID, 10), "--from", from}
	return c.run(c.withTXFlags(cmd...))
}

// Vote casts a yes or no vote on a proposal
func (c TbountyCli) Vote(from string, proposalID uint64, yes bool) string {
	option := "no"
	if yes {
		option = "yes"
	}
	cmd := []string{"tx", "vote", "vote", strconv.FormatUint(proposalID, 10), option, "--from", from}
	return c.run(c.withTXFlags(cmd...))
}

// QueryBounty returns the bounty as json
func (c TbountyCli) QueryBounty(bountyID uint64) string {
	return c.CustomQuery("q", "bounty", "bounty", strconv.FormatUint(bountyID, 10))
}

// QuerySubmission returns the milestone submission as json
func (c TbountyCli) QuerySubmission(submissionID uint64) string {
	return c.CustomQuery("q", "bounty", "submission", strconv.FormatUint(submissionID, 10))
}

// QueryProposal returns the proposal with its tally as json
func (c TbountyCli) QueryProposal(proposalID uint64) string {
	return c.CustomQuery("q", "vote", "proposal", strconv.FormatUint(proposalID, 10))
}

// QueryEscrowTotals returns the fund conservation counters as json
func (c TbountyCli) QueryEscrowTotals() string {
	return c.CustomQuery("q", "escrow", "totals")
}

// QueryOrganization returns the organization as json
func (c TbountyCli) QueryOrganization(orgID uint64) string {
	return c.CustomQuery("q", "org", "organization", strconv.FormatUint(orgID, 10))
}

// QueryBalances queries all balances for an account. Returns json response
// Example:`{"balances":[{"denom":"utbounty","amount":"400000003"}],"pagination":{}}`
func (c TbountyCli) QueryBalances(addr string) string {
	return c.CustomQuery("q", "bank", "balances", addr)
}

// QueryBalance returns balance amount for given denom.
// 0 when not found
func (c TbountyCli) QueryBalance(addr, denom string) int64 {
	raw := c.CustomQuery("q", "bank", "balances", addr, "--denom="+denom)
	require.Contains(c.t, raw, "amount", raw)
	return gjson.Get(raw, "amount").Int()
}

func (c TbountyCli) GetTendermintValidatorSet() rpc.ResultValidatorsOutput {
	args := []string{"q", "tendermint-validator-set"}
	got := c.run(c.withQueryFlags(args...))

	var res rpc.ResultValidatorsOutput
	require.NoError(c.t, c.amino.UnmarshalJSON([]byte(got), &res), got)
	return res
}

// IsInTendermintValset returns true when the given pub key is in the current active tendermint validator set
func (c TbountyCli) IsInTendermintValset(valPubKey cryptotypes.PubKey) (rpc.ResultValidatorsOutput, bool) {
	valResult := c.GetTendermintValidatorSet()
	var found bool
	for _, v := range valResult.Validators {
		if v.PubKey.Equals(valPubKey) {
			found = true
			break
		}
	}
	return valResult, found
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}

// eventAttrUint reads the first attribute with the given key from the tx response logs
func eventAttrUint(t *testing.T, rsp, key string) uint64 {
	t.Helper()
	vals := gjson.Get(rsp, fmt.Sprintf("logs.#.events.#.attributes.#(key=%s).value", key)).Array()
	require.NotEmpty(t, vals, rsp)
	for _, v := range vals[0].Array() {
		if v.String() != "" {
			return v.Uint()
		}
	}
	t.Fatalf("no %q attribute in %s", key, rsp)
	return 0
}

// RequireTxSuccess require the received response to contain the success code
func RequireTxSuccess(t *testing.T, got string) {
	t.Helper()
	code := gjson.Get(got, "code")
	details := gjson.Get(got, "raw_log").String()
	if len(details) == 0 {
		details = got
	}
	require.Equal(t, int64(0), code.Int(), "non success tx code : %s", details)
}

// RequireTxFailure require the received response to contain any failure code and the passed msgsgs
func RequireTxFailure(t *testing.T, got string, containsMsgs ...string) {
	t.Helper()
	code := gjson.Get(got, "code")
	rawLog := gjson.Get(got, "raw_log").String()
	require.NotEqual(t, int64(0), code.Int(), rawLog)
	for _, msg := range containsMsgs {
		require.Contains(t, rawLog, msg)
	}
}

var (
	// ErrOutOfGasMatcher requires error with out of gas message
	ErrOutOfGasMatcher RunErrorAssert = func(t require.TestingT, err error, args ...interface{}) {
		const oogMsg = "out of gas"
		expErrWithMsg(t, err, args, oogMsg)
	}
	// ErrTimeoutMatcher requires time out message
	ErrTimeoutMatcher RunErrorAssert = func(t require.TestingT, err error, args ...interface{}) {
		const expMsg = "timed out waiting for tx to be included in a block"
		expErrWithMsg(t, err, args, expMsg)
	}
	// ErrPostFailedMatcher requires post failed
	ErrPostFailedMatcher RunErrorAssert = func(t require.TestingT, err error, args ...interface{}) {
		const expMsg = "post failed"
		expErrWithMsg(t, err, args, expMsg)
	}
)

func expErrWithMsg(t require.TestingT, err error, args []interface{}, expMsg string) {
	require.Error(t, err, args)
	var found bool
	for _, v := range args {
		if strings.Contains(fmt.Sprintf("%s", v), expMsg) {
			found = true
			break
		}
	}
	require.True(t, found, "expected %q but got: %s", expMsg, args)
}
