// Package tokenoracle queries the external token registry for ownership
// of origin tokens on the local chain.
package tokenoracle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client implements the registry.TokenOracle interface over the token
// registry's HTTP API.
type Client struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

// ownerResponse is the token registry's owner lookup payload.
type ownerResponse struct {
	Owner string `json:"owner"`
}

// NewClient creates a Resty-backed oracle client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
		log: log.With().Str("component", "token-oracle").Logger(),
	}
}

// OwnerOf resolves the owner of (contract, tokenID). A token unknown to
// the registry resolves to "" with no error; transport and server
// failures are returned to the caller.
func (c *Client) OwnerOf(ctx context.Context, contract, tokenID string) (string, error) {
	var owner ownerResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"contract": contract,
			"token":    tokenID,
		}).
		SetResult(&owner).
		Get("/v1/contracts/{contract}/tokens/{token}/owner")
	if err != nil {
		return "", fmt.Errorf("query token owner: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.IsError() {
		return "", fmt.Errorf("token oracle error: %d %s", resp.StatusCode(), resp.String())
	}

	c.log.Debug().Str("contract", contract).Str("token", tokenID).
		Str("owner", owner.Owner).Msg("resolved token owner")
	return owner.Owner, nil
}
