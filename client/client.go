// Package client talks to a running tbounty node: it reads state through the legacy ABCI
// queriers, broadcasts signed transactions and resolves content references.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cosmos/cosmos-sdk/codec"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	rpchttp "github.com/tendermint/tendermint/rpc/client/http"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/confio/tbounty/internal/content"
	tbtypes "github.com/confio/tbounty/types"
	bountytypes "github.com/confio/tbounty/x/bounty/types"
	escrowtypes "github.com/confio/tbounty/x/escrow/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
	votetypes "github.com/confio/tbounty/x/vote/types"
)

// Client is a remote client of a tbounty node
type Client struct {
	rpc      rpcclient.ABCIClient
	resolver *content.Resolver
}

// New connects to the Tendermint RPC endpoint of a node, for example tcp://localhost:26657, and
// to the content service at contentURL
func New(nodeURI, contentURL string) (*Client, error) {
	rpc, err := rpchttp.New(nodeURI, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("rpc client: %w", err)
	}
	return NewWithRPC(rpc, content.NewResolver(contentURL, http.DefaultClient)), nil
}

// NewWithRPC constructor
func NewWithRPC(rpc rpcclient.ABCIClient, resolver *content.Resolver) *Client {
	return &Client{rpc: rpc, resolver: resolver}
}

// TxResult is the outcome of a broadcast transaction that passed CheckTx
type TxResult struct {
	Hash string
	Data []byte
	Log  string
}

// Broadcast submits a signed, encoded transaction and waits for CheckTx. A rejected transaction
// is returned as the registered error of its ABCI code when it is a tbounty error.
func (c *Client) Broadcast(ctx context.Context, txBytes []byte) (TxResult, error) {
	res, err := c.rpc.BroadcastTxSync(ctx, tmtypes.Tx(txBytes))
	if err != nil {
		return TxResult{}, err
	}
	if res.Code != 0 {
		return TxResult{}, abciError(res.Codespace, res.Code, res.Log)
	}
	return TxResult{Hash: res.Hash.String(), Data: res.Data, Log: res.Log}, nil
}

// Query reads a legacy querier endpoint: custom/<module>/<route>/<args...>
func (c *Client) Query(ctx context.Context, module, route string, args ...string) ([]byte, error) {
	path := strings.Join(append([]string{"custom", module, route}, args...), "/")
	res, err := c.rpc.ABCIQuery(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if !res.Response.IsOK() {
		return nil, abciError(res.Response.Codespace, res.Response.Code, res.Response.Log)
	}
	return res.Response.Value, nil
}

// Organization returns an organization by id
func (c *Client) Organization(ctx context.Context, orgID uint64) (orgtypes.Organization, error) {
	var org orgtypes.Organization
	err := c.queryInto(ctx, orgtypes.ModuleCdc, &org, orgtypes.QuerierRoute, orgtypes.QueryOrganization, id(orgID))
	return org, err
}

// Members returns the share table of an organization
func (c *Client) Members(ctx context.Context, orgID uint64) ([]orgtypes.Member, error) {
	var members []orgtypes.Member
	err := c.queryInto(ctx, orgtypes.ModuleCdc, &members, orgtypes.QuerierRoute, orgtypes.QueryMembers, id(orgID))
	return members, err
}

// Proposal returns a proposal by id
func (c *Client) Proposal(ctx context.Context, proposalID uint64) (votetypes.Proposal, error) {
	var p votetypes.Proposal
	err := c.queryInto(ctx, votetypes.ModuleCdc, &p, votetypes.QuerierRoute, votetypes.QueryProposal, id(proposalID))
	return p, err
}

// Bounty returns a bounty by id
func (c *Client) Bounty(ctx context.Context, bountyID uint64) (bountytypes.Bounty, error) {
	var b bountytypes.Bounty
	err := c.queryInto(ctx, bountytypes.ModuleCdc, &b, bountytypes.QuerierRoute, bountytypes.QueryBounty, id(bountyID))
	return b, err
}

// Submissions returns the submissions to a bounty
func (c *Client) Submissions(ctx context.Context, bountyID uint64) ([]bountytypes.Submission, error) {
	var s []bountytypes.Submission
	err := c.queryInto(ctx, bountytypes.ModuleCdc, &s, bountytypes.QuerierRoute, bountytypes.QuerySubmissions, id(bountyID))
	return s, err
}

// EscrowEntry returns the reservation held for a bounty
func (c *Client) EscrowEntry(ctx context.Context, bountyID uint64) (escrowtypes.Entry, error) {
	var e escrowtypes.Entry
	err := c.queryInto(ctx, escrowtypes.ModuleCdc, &e, escrowtypes.QuerierRoute, escrowtypes.QueryEntry, id(bountyID))
	return e, err
}

// ResolveContent fetches the content referenced by a hash and verifies its digest
func (c *Client) ResolveContent(ctx context.Context, h tbtypes.ContentHash) ([]byte, error) {
	return c.resolver.Fetch(ctx, h)
}

// UploadContent stores content at the content service and returns the reference to put on
// the ledger
func (c *Client) UploadContent(ctx context.Context, data []byte) (tbtypes.ContentHash, error) {
	return c.resolver.Upload(ctx, data)
}

func (c *Client) queryInto(ctx context.Context, cdc *codec.LegacyAmino, dst interface{}, module, route string, args ...string) error {
	bz, err := c.Query(ctx, module, route, args...)
	if err != nil {
		return err
	}
	if err := cdc.UnmarshalJSON(bz, dst); err != nil {
		return fmt.Errorf("decode %s/%s: %w", module, route, err)
	}
	return nil
}

// abciError maps a failed ABCI result to the registered tbounty error where possible
func abciError(codespace string, code uint32, log string) error {
	if kind := tbtypes.ErrorKindFromABCI(codespace, code); kind != nil {
		return sdkerrors.Wrap(kind, log)
	}
	return sdkerrors.ABCIError(codespace, code, log)
}

func id(v uint64) string {
	return strconv.FormatUint(v, 10)
}
