package service

import (
	"context"
	"time"

	"w3dash/models"
	"w3dash/w3c"

	log "github.com/sirupsen/logrus"
)

type profileService struct {
	client   StatsClient
	recorder FetchRecorder
}

// NewProfileService creates a new profile service. recorder may be nil.
func NewProfileService(client StatsClient, recorder FetchRecorder) ProfileService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &profileService{
		client:   client,
		recorder: recorder,
	}
}

// FetchProfile fetches the game-mode stats and then the race-versus-race winrates
func (s *profileService) FetchProfile(ctx context.Context, id string) *models.User {
	start := time.Now()
	stats, err := s.client.GameModeStats(ctx, id)
	s.recorder.RecordFetch(w3c.EndpointGameModeStats, time.Since(start), err)
	if err != nil {
		log.WithFields(log.Fields{
			"player":   id,
			"endpoint": w3c.EndpointGameModeStats,
			"error":    err,
		}).Warn("Failed to fetch player profile")
		return nil
	}

	user := &models.User{
		UserID: id,
		Stats:  stats,
	}

	start = time.Now()
	winrates, err := s.client.RaceVersusRaceWinrates(ctx, id)
	s.recorder.RecordFetch(w3c.EndpointRaceVersusRace, time.Since(start), err)
	if err != nil {
		log.WithFields(log.Fields{
			"player":   id,
			"endpoint": w3c.EndpointRaceVersusRace,
			"error":    err,
		}).Warn("Failed to fetch detail winrates")
	} else {
		user.DetailWinrate = winrates
	}

	log.WithFields(log.Fields{
		"player":        id,
		"stats":         len(stats),
		"detailWinrate": user.DetailWinrate != nil,
	}).Debug("Fetched player profile")
	return user
}
