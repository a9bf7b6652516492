package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	domain "media-registry/internal/domain/registry"
)

// HTTPService implements the registry.Notifier interface via HTTP POST.
// Delivery is best effort: the registry never rolls back on a failed
// notification.
type HTTPService struct {
	urls       []string
	httpClient *http.Client
	log        zerolog.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewHTTPService creates an HTTP-based notifier posting to urls.
func NewHTTPService(urls []string, log zerolog.Logger) *HTTPService {
	return &HTTPService{
		urls: urls,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:        log.With().Str("component", "webhook").Logger(),
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// NotifyRegistered posts the registration event to every configured URL.
// The first failing URL's error is returned after all URLs were tried.
func (s *HTTPService) NotifyRegistered(ctx context.Context, event domain.RegistrationEvent) error {
	if len(s.urls) == 0 {
		s.log.Debug().Uint64("media_id", event.MediaID).Msg("no webhook URLs configured, skipping notification")
		return nil
	}

	payload := buildPayload(event)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	var firstErr error
	for _, url := range s.urls {
		if err := s.send(ctx, url, payload, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *HTTPService) send(ctx context.Context, url string, payload Payload, body []byte) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create webhook request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "media-registry/1.0")
		req.Header.Set("X-Registry-Event", payload.Event)
		req.Header.Set("X-Registry-Media-ID", strconv.FormatUint(payload.MediaID, 10))

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("send webhook (attempt %d/%d): %w", attempt, s.maxRetries, err)
			s.log.Warn().Err(err).Str("url", url).Int("attempt", attempt).Msg("webhook delivery failed")
			if attempt < s.maxRetries {
				time.Sleep(s.retryDelay)
				continue
			}
			break
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("url", url).Int("status", resp.StatusCode).
				Uint64("media_id", payload.MediaID).Msg("webhook delivered")
			return nil
		}

		lastErr = fmt.Errorf("webhook returned status %d (attempt %d/%d)", resp.StatusCode, attempt, s.maxRetries)
		s.log.Warn().Int("status", resp.StatusCode).Str("url", url).Int("attempt", attempt).Msg("webhook delivery failed")
		if attempt < s.maxRetries {
			time.Sleep(s.retryDelay)
		}
	}
	return lastErr
}
