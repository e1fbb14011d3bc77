package w3c

import (
	"context"
	"encoding/json"
	"fmt"

	"w3dash/models"
)

// overallMap is the map name the service uses for all-maps aggregates
const overallMap = "Overall"

// RaceVersusRaceWinrates fetches the player's overall winrate against each race
func (c *Client) RaceVersusRaceWinrates(ctx context.Context, id string) (map[string]float64, error) {
	body, _, err := c.apiGet(ctx, EndpointRaceVersusRace, c.raceVersusRaceURL(id))
	if err != nil {
		return nil, err
	}
	return decodeRaceVersusRace(body)
}

// decodeRaceVersusRace reads raceWinsOnMapByPatch.All, takes the all-races entries
// and their "Overall" map. Entries for a single race are not looked into. Any
// missing field along the all-races path fails the decode; no partial result is
// returned.
func decodeRaceVersusRace(body []byte) (map[string]float64, error) {
	malformed := func(reason string) error {
		return fmt.Errorf("%s: %w: %s", EndpointRaceVersusRace, ErrMalformedPayload, reason)
	}

	byPatch, ok := objectField(body, "raceWinsOnMapByPatch")
	if !ok {
		return nil, malformed("missing raceWinsOnMapByPatch")
	}
	results, ok := arrayField(byPatch, "All")
	if !ok {
		return nil, malformed("missing raceWinsOnMapByPatch.All")
	}

	winrates := make(map[string]float64)
	found := false
	for _, result := range results {
		var race int64
		if !decodeField(result, "race", &race) || models.Race(race) != models.RaceAll {
			continue
		}
		onMaps, ok := arrayField(result, "winLossesOnMap")
		if !ok {
			return nil, malformed("all-races entry without winLossesOnMap")
		}

		overall, err := findOverall(onMaps)
		if err != nil {
			return nil, malformed(err.Error())
		}
		if overall == nil {
			continue
		}
		if err := collectWinrates(overall, winrates); err != nil {
			return nil, malformed(err.Error())
		}
		found = true
	}

	if !found {
		return nil, malformed("no overall all-races entry")
	}
	return winrates, nil
}

// findOverall scans map results up to the first "Overall" one; nil means none matched
func findOverall(onMaps []json.RawMessage) (json.RawMessage, error) {
	for i, onMap := range onMaps {
		var name string
		if !decodeField(onMap, "map", &name) {
			return nil, fmt.Errorf("map result %d without map", i)
		}
		if name == overallMap {
			return onMap, nil
		}
	}
	return nil, nil
}

func collectWinrates(overall json.RawMessage, winrates map[string]float64) error {
	winLosses, ok := arrayField(overall, "winLosses")
	if !ok {
		return fmt.Errorf("overall map without winLosses")
	}
	for i, wl := range winLosses {
		var race int64
		var winrate float64
		if !decodeField(wl, "race", &race) || !decodeField(wl, "winrate", &winrate) {
			return fmt.Errorf("win/loss entry %d without race or winrate", i)
		}
		if name, ok := models.RaceName(race); ok {
			winrates[name] = winrate
		}
	}
	return nil
}
