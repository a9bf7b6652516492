package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/webhook"
)

func sampleEvent() domain.RegistrationEvent {
	return domain.RegistrationEvent{
		EventID:       "01J5ZV9WZB4R4T4Q6H0XKJ3N2M",
		MediaID:       7,
		Creator:       "alice",
		SchemaVersion: 1,
		Origin: &domain.OriginLink{
			TokenID:  "42",
			ChainID:  "1",
			Contract: "0xabc",
			Kind:     domain.OriginKindPrimary,
		},
		OccurredAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestNotifyRegistered_DeliversPayload(t *testing.T) {
	var received webhook.Payload
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := webhook.NewHTTPService([]string{server.URL}, zerolog.Nop())
	err := svc.NotifyRegistered(context.Background(), sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, webhook.EventRegistered, received.Event)
	assert.Equal(t, uint64(7), received.MediaID)
	assert.Equal(t, "alice", received.Creator)
	require.NotNil(t, received.Origin)
	assert.Equal(t, "0xabc", received.Origin.Contract)
	assert.Equal(t, "2026-03-14T09:26:53.000Z", received.OccurredAt)

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, webhook.EventRegistered, gotHeaders.Get("X-Registry-Event"))
	assert.Equal(t, "7", gotHeaders.Get("X-Registry-Media-ID"))
}

func TestNotifyRegistered_MultipleURLs(t *testing.T) {
	hits := make(chan string, 2)
	newServer := func(name string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits <- name
			w.WriteHeader(http.StatusAccepted)
		}))
	}
	first := newServer("first")
	defer first.Close()
	second := newServer("second")
	defer second.Close()

	svc := webhook.NewHTTPService([]string{first.URL, second.URL}, zerolog.Nop())
	err := svc.NotifyRegistered(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestNotifyRegistered_NoURLs(t *testing.T) {
	svc := webhook.NewHTTPService(nil, zerolog.Nop())
	err := svc.NotifyRegistered(context.Background(), sampleEvent())
	assert.NoError(t, err)
}
