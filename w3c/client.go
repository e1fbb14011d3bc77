// Package w3c talks to the W3Champions statistics endpoints.
package w3c

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint names used in errors, logs and metrics
const (
	EndpointGameModeStats  = "game-mode-stats"
	EndpointRaceVersusRace = "race-on-map-versus-race"
	EndpointOngoingMatch   = "ongoing-match"
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrMalformedPayload is returned when the body does not have the expected JSON shape
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNoOngoingMatch is returned when the player is not currently in a match
	ErrNoOngoingMatch = errors.New("no ongoing match")
)

// TransportError means the request never produced a response
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Config holds the endpoint settings
type Config struct {
	StatsHost string
	WebHost   string
	Gateway   int
	Season    int
}

// Client issues read-only GETs against the statistics service.
// Requests carry no timeout of their own; a slow endpoint stalls the caller.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new W3Champions client
func NewClient(cfg Config) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

// EncodePlayerID escapes a battle tag for use as a path segment ("Name#1234" -> "Name%231234")
func EncodePlayerID(id string) string {
	return url.PathEscape(id)
}

// DecodePlayerID reverses EncodePlayerID
func DecodePlayerID(encoded string) (string, error) {
	return url.PathUnescape(encoded)
}

func (c *Client) gameModeStatsURL(id string) string {
	return fmt.Sprintf("%s/api/players/%s/game-mode-stats?gateway=%d&season=%d",
		strings.TrimRight(c.config.StatsHost, "/"), EncodePlayerID(id), c.config.Gateway, c.config.Season)
}

func (c *Client) raceVersusRaceURL(id string) string {
	return fmt.Sprintf("%s/api/player-stats/%s/race-on-map-versus-race?season=%d",
		strings.TrimRight(c.config.WebHost, "/"), EncodePlayerID(id), c.config.Season)
}

func (c *Client) ongoingMatchURL(id string) string {
	return fmt.Sprintf("%s/api/matches/ongoing/%s",
		strings.TrimRight(c.config.StatsHost, "/"), EncodePlayerID(id))
}

// apiGet performs the GET and returns the raw body of a 2xx response
func (c *Client) apiGet(ctx context.Context, endpoint, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("%s: %w: %d", endpoint, ErrUnexpectedStatus, resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

// isEmptyBody reports a body that carries no JSON value at all
func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
