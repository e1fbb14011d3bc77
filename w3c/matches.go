package w3c

import (
	"context"
	"fmt"
	"net/http"
)

// OngoingOpponent fetches the match the player is currently in and returns the
// first battle tag across all teams that is not selfID, or "" when every player
// is selfID. Only a failed request is returned as a *TransportError; every other
// failure is ErrUnexpectedStatus, ErrMalformedPayload or ErrNoOngoingMatch.
func (c *Client) OngoingOpponent(ctx context.Context, selfID string) (string, error) {
	body, status, err := c.apiGet(ctx, EndpointOngoingMatch, c.ongoingMatchURL(selfID))
	if status == http.StatusNoContent || status == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", EndpointOngoingMatch, ErrNoOngoingMatch)
	}
	if err != nil {
		return "", err
	}
	return decodeOngoingOpponent(body, selfID)
}

// decodeOngoingOpponent walks teams[*].players[*].battleTag in order and stops at
// the first tag that differs from selfID. Shape errors after that point are never seen.
func decodeOngoingOpponent(body []byte, selfID string) (string, error) {
	if isEmptyBody(body) {
		return "", fmt.Errorf("%s: %w", EndpointOngoingMatch, ErrNoOngoingMatch)
	}
	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w: %s", EndpointOngoingMatch, ErrMalformedPayload, fmt.Sprintf(format, args...))
	}

	teams, ok := arrayField(body, "teams")
	if !ok {
		return "", malformed("missing teams")
	}
	for i, team := range teams {
		players, ok := arrayField(team, "players")
		if !ok {
			return "", malformed("team %d has no players", i)
		}
		for _, player := range players {
			var tag string
			if !decodeField(player, "battleTag", &tag) {
				return "", malformed("team %d has a player without battleTag", i)
			}
			if tag != selfID {
				return tag, nil
			}
		}
	}
	return "", nil
}
