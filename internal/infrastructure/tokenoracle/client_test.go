package tokenoracle_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-registry/internal/infrastructure/tokenoracle"
)

func TestOwnerOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/contracts/0xabc/tokens/42/owner":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"owner": "0xowner1"}`))
		case "/v1/contracts/0xabc/tokens/404/owner":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := tokenoracle.NewClient(server.URL, 5*time.Second, zerolog.Nop())
	ctx := context.Background()

	owner, err := client.OwnerOf(ctx, "0xabc", "42")
	require.NoError(t, err)
	assert.Equal(t, "0xowner1", owner)

	// Unknown tokens resolve to no owner without an error.
	owner, err = client.OwnerOf(ctx, "0xabc", "404")
	require.NoError(t, err)
	assert.Empty(t, owner)

	// Server failures surface as errors so callers never mistake an
	// outage for a missing token.
	_, err = client.OwnerOf(ctx, "0xboom", "1")
	require.Error(t, err)
}

func TestOwnerOf_Unreachable(t *testing.T) {
	client := tokenoracle.NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())
	_, err := client.OwnerOf(context.Background(), "0xabc", "42")
	require.Error(t, err)
}
