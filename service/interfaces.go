package service

import (
	"context"
	"time"

	"w3dash/models"
)

// StatsClient defines the interface for the statistics service endpoints
type StatsClient interface {
	// GameModeStats returns the player's per-mode stats
	GameModeStats(ctx context.Context, id string) ([]models.Stat, error)

	// RaceVersusRaceWinrates returns the overall winrate against each race
	RaceVersusRaceWinrates(ctx context.Context, id string) (map[string]float64, error)

	// OngoingOpponent returns the first player of the ongoing match who is not selfID,
	// or "" when there is no such player
	OngoingOpponent(ctx context.Context, selfID string) (string, error)
}

// FetchRecorder receives the outcome of every request made against the statistics service
type FetchRecorder interface {
	RecordFetch(endpoint string, duration time.Duration, err error)
}

// ProfileService defines the interface for building player profiles
type ProfileService interface {
	// FetchProfile returns the player's profile, or nil when the stats could not be fetched.
	// A missing race-versus-race breakdown leaves DetailWinrate nil but still returns the profile.
	FetchProfile(ctx context.Context, id string) *models.User
}

// MatchService defines the interface for ongoing match resolution
type MatchService interface {
	// ResolveOpponent returns the first player of the self player's ongoing match who is not the self player.
	// It returns an error only when the ongoing-match request itself fails.
	ResolveOpponent(ctx context.Context, selfID string) (*models.User, error)

	// RefreshOpponent replaces data.Opponent with the current opponent
	RefreshOpponent(ctx context.Context, data *models.Data) error
}

type noopRecorder struct{}

func (noopRecorder) RecordFetch(string, time.Duration, error) {}
