package w3c

import (
	"context"
	"fmt"

	"w3dash/models"
)

// GameModeStats fetches the per-mode stats of a player
func (c *Client) GameModeStats(ctx context.Context, id string) ([]models.Stat, error) {
	body, _, err := c.apiGet(ctx, EndpointGameModeStats, c.gameModeStatsURL(id))
	if err != nil {
		return nil, err
	}
	return decodeGameModeStats(body)
}

// decodeGameModeStats keeps entries in body order. Entries without a known race
// are skipped; an entry with a known race but no valid winrate or ranking points
// fails the whole decode.
func decodeGameModeStats(body []byte) ([]models.Stat, error) {
	entries, ok := arrayOf(body)
	if !ok {
		return nil, fmt.Errorf("%s: %w: body is not an array", EndpointGameModeStats, ErrMalformedPayload)
	}

	stats := make([]models.Stat, 0, len(entries))
	for i, entry := range entries {
		var code int64
		if !decodeField(entry, "race", &code) {
			continue
		}
		race, ok := models.RaceName(code)
		if !ok {
			continue
		}

		var winrate float64
		if !decodeField(entry, "winrate", &winrate) {
			return nil, fmt.Errorf("%s: %w: entry %d has no valid winrate", EndpointGameModeStats, ErrMalformedPayload, i)
		}
		var points int64
		if !decodeField(entry, "rankingPoints", &points) {
			return nil, fmt.Errorf("%s: %w: entry %d has no valid rankingPoints", EndpointGameModeStats, ErrMalformedPayload, i)
		}

		stats = append(stats, models.Stat{
			Race:         race,
			Winrate:      winrate,
			RankingPoint: points,
		})
	}
	return stats, nil
}
