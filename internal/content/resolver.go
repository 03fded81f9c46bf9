package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	tbtypes "github.com/confio/tbounty/types"
)

// Resolver uploads and fetches content from a content service. Fetched bytes are only returned
// when they hash to the requested content hash.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewResolver constructor. A nil client selects http.DefaultClient.
func NewResolver(baseURL string, httpClient *http.Client) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Resolver{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: httpClient}
}

// Upload stores data at the service and returns its hash. The hash reported by the service must
// match the local digest.
func (r *Resolver) Upload(ctx context.Context, data []byte) (tbtypes.ContentHash, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.baseURL+"/content", bytes.NewReader(data))
	if err != nil {
		return tbtypes.ContentHash{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	rsp, err := r.httpClient.Do(req)
	if err != nil {
		return tbtypes.ContentHash{}, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusCreated {
		return tbtypes.ContentHash{}, responseError(rsp)
	}
	var body PutResponse
	if err := json.NewDecoder(rsp.Body).Decode(&body); err != nil {
		return tbtypes.ContentHash{}, fmt.Errorf("decode response: %w", err)
	}
	if want := Sum(data); body.Hash != want {
		return tbtypes.ContentHash{}, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "service reported hash %s, expected %s", body.Hash, want)
	}
	return body.Hash, nil
}

// Fetch returns the content stored under h
func (r *Resolver) Fetch(ctx context.Context, h tbtypes.ContentHash) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/content/"+h.String(), nil)
	if err != nil {
		return nil, err
	}
	rsp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return nil, responseError(rsp)
	}
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}
	if !Verify(h, data) {
		return nil, sdkerrors.Wrapf(tbtypes.ErrInvalidInput, "content does not match hash %s", h)
	}
	return data, nil
}

func responseError(rsp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(rsp.Body).Decode(&body)
	switch rsp.StatusCode {
	case http.StatusNotFound:
		return sdkerrors.Wrap(tbtypes.ErrNotFound, body.Error)
	case http.StatusBadRequest:
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, body.Error)
	default:
		return fmt.Errorf("content service: %s: %s", rsp.Status, body.Error)
	}
}
