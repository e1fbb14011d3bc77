package models

// Race is the faction code used by the W3Champions API
type Race int

const (
	RaceRandom   Race = 0
	RaceHuman    Race = 1
	RaceOrc      Race = 2
	RaceNightElf Race = 4
	RaceUndead   Race = 8

	// RaceAll marks the "all races combined" bucket in race-versus-race results
	RaceAll Race = 16
)

var raceNames = map[Race]string{
	RaceRandom:   "random",
	RaceHuman:    "human",
	RaceOrc:      "orc",
	RaceNightElf: "night elf",
	RaceUndead:   "undead",
}

// TableRaces is the column order of the winrate table
var TableRaces = []Race{RaceRandom, RaceHuman, RaceOrc, RaceUndead, RaceNightElf}

// RaceName returns the display name for a race code.
// The second return is false for codes outside the five playable factions.
func RaceName(code int64) (string, bool) {
	name, ok := raceNames[Race(code)]
	return name, ok
}

// Name returns the display name, or an empty string for unknown codes
func (r Race) Name() string {
	return raceNames[r]
}
