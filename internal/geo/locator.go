// Package geo abstracts the geolocation collaborator: a best-effort
// "current position or none" query with silent fallback to a default
// coordinate when the provider is unavailable.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rollnconnect/rollconnect/internal/models"
)

// Locator resolves the current position. Implementations return an
// error when no position is available; callers that need a coordinate
// no matter what wrap the locator with WithFallback.
type Locator interface {
	Current(ctx context.Context) (models.Position, error)
}

// Static always reports a fixed position. Used as the fallback
// coordinate and in tests.
type Static struct {
	Pos models.Position
}

// Current returns the fixed position.
func (s Static) Current(_ context.Context) (models.Position, error) {
	return s.Pos, nil
}

// HTTP queries a JSON endpoint for the current position. The endpoint
// is expected to respond with {"lat": <float>, "lng": <float>}.
type HTTP struct {
	Endpoint     string
	HighAccuracy bool
	Client       *http.Client
}

// NewHTTP creates an HTTP locator with a default client timeout.
func NewHTTP(endpoint string, highAccuracy bool) *HTTP {
	return &HTTP{
		Endpoint:     endpoint,
		HighAccuracy: highAccuracy,
		Client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches the position from the configured endpoint.
func (h *HTTP) Current(ctx context.Context) (models.Position, error) {
	endpoint := h.Endpoint
	if h.HighAccuracy {
		u, err := url.Parse(endpoint)
		if err != nil {
			return models.Position{}, fmt.Errorf("geo: parse endpoint: %w", err)
		}
		q := u.Query()
		q.Set("accuracy", "high")
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Position{}, fmt.Errorf("geo: build request: %w", err)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.Position{}, fmt.Errorf("geo: query position: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Position{}, fmt.Errorf("geo: provider status %d", resp.StatusCode)
	}

	var pos models.Position
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return models.Position{}, fmt.Errorf("geo: decode position: %w", err)
	}
	return pos, nil
}

// fallbackLocator tries the primary locator and silently falls back to
// a default coordinate on any failure. It never returns an error.
type fallbackLocator struct {
	primary Locator
	def     models.Position
}

// WithFallback wraps primary so that failures resolve to def instead
// of an error. Degrades the feature without blocking the rest of the
// app when the provider is absent.
func WithFallback(primary Locator, def models.Position) Locator {
	return fallbackLocator{primary: primary, def: def}
}

func (f fallbackLocator) Current(ctx context.Context) (models.Position, error) {
	if f.primary == nil {
		return f.def, nil
	}
	pos, err := f.primary.Current(ctx)
	if err != nil {
		return f.def, nil
	}
	return pos, nil
}
