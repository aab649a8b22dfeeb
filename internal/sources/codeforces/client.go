package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"cfdesk/internal/logger"
	"cfdesk/internal/utils"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://codeforces.com/api"

var (
	// ErrNetwork wraps transport and decode failures.
	ErrNetwork = errors.New("network failure")
	// ErrRemoteStatus means the endpoint was reachable but reported a
	// non-OK status; the wrapped message carries the remote comment.
	ErrRemoteStatus = errors.New("remote status failure")
)

// Client is a read-only JSON client for the remote problem catalog and
// submission status endpoints. No retry and no request timeout beyond
// the caller's context: recovery is always a fresh caller-initiated call.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  log,
	}
}

// FetchProblems retrieves the full remote problem list.
func (c *Client) FetchProblems(ctx context.Context) ([]WireProblem, error) {
	var result problemsResult
	if err := c.call(ctx, "/problemset.problems", nil, &result); err != nil {
		return nil, err
	}
	return result.Problems, nil
}

// FetchUserStatus retrieves the submission history of a handle,
// newest first as the remote orders it.
func (c *Client) FetchUserStatus(ctx context.Context, handle string) ([]WireSubmission, error) {
	var result []WireSubmission
	params := url.Values{"handle": {handle}}
	if err := c.call(ctx, "/user.status", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// call issues a GET, unwraps the status envelope and decodes result
// into out. Transport and decode problems surface as ErrNetwork, a
// FAILED envelope as ErrRemoteStatus.
func (c *Client) call(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	c.logger.Debug("remote fetch", logger.String("url", u))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer utils.Close(resp.Body)

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetwork, path, err)
	}

	if envelope.Status != statusOK {
		return fmt.Errorf("%w: %s", ErrRemoteStatus, envelope.Comment)
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("%w: decode %s result: %v", ErrNetwork, path, err)
	}
	return nil
}
