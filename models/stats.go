package models

// Stat is a player's standing in one game mode
type Stat struct {
	Race         string
	Winrate      float64 // 0.0 - 1.0
	RankingPoint int64
}
