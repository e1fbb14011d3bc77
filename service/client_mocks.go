package service

import (
	"context"
	"time"

	"w3dash/models"

	"github.com/stretchr/testify/mock"
)

// MockStatsClient is a mock implementation of StatsClient
type MockStatsClient struct {
	mock.Mock
}

func (m *MockStatsClient) GameModeStats(ctx context.Context, id string) ([]models.Stat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stat), args.Error(1)
}

func (m *MockStatsClient) RaceVersusRaceWinrates(ctx context.Context, id string) (map[string]float64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockStatsClient) OngoingOpponent(ctx context.Context, selfID string) (string, error) {
	args := m.Called(ctx, selfID)
	return args.String(0), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) FetchProfile(ctx context.Context, id string) *models.User {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}

// MockFetchRecorder is a mock implementation of FetchRecorder
type MockFetchRecorder struct {
	mock.Mock
}

func (m *MockFetchRecorder) RecordFetch(endpoint string, duration time.Duration, err error) {
	m.Called(endpoint, duration, err)
}
