package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"w3dash/models"
	"w3dash/w3c"

	log "github.com/sirupsen/logrus"
)

type matchService struct {
	client   StatsClient
	profiles ProfileService
	recorder FetchRecorder
}

// NewMatchService creates a new match service. recorder may be nil.
func NewMatchService(client StatsClient, profiles ProfileService, recorder FetchRecorder) MatchService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &matchService{
		client:   client,
		profiles: profiles,
		recorder: recorder,
	}
}

// ResolveOpponent looks up the ongoing match and fetches the opponent's profile
func (s *matchService) ResolveOpponent(ctx context.Context, selfID string) (*models.User, error) {
	start := time.Now()
	opponentID, err := s.client.OngoingOpponent(ctx, selfID)
	s.recorder.RecordFetch(w3c.EndpointOngoingMatch, time.Since(start), err)
	if err != nil {
		var transportErr *w3c.TransportError
		switch {
		case errors.As(err, &transportErr):
			return nil, fmt.Errorf("failed to fetch ongoing match: %w", err)
		case errors.Is(err, w3c.ErrNoOngoingMatch):
			log.WithField("player", selfID).Debug("No ongoing match")
		default:
			log.WithFields(log.Fields{
				"player":   selfID,
				"endpoint": w3c.EndpointOngoingMatch,
				"error":    err,
			}).Warn("Failed to read ongoing match")
		}
		return nil, nil
	}

	if opponentID == "" {
		log.WithField("player", selfID).Debug("Ongoing match has no other player")
		return nil, nil
	}

	return s.profiles.FetchProfile(ctx, opponentID), nil
}

// RefreshOpponent resolves the opponent and stores it on data, clearing it when none is found
func (s *matchService) RefreshOpponent(ctx context.Context, data *models.Data) error {
	opponent, err := s.ResolveOpponent(ctx, data.SelfID)
	if err != nil {
		return err
	}
	data.Opponent = opponent
	return nil
}
