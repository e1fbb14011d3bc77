package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"w3dash/events"
	"w3dash/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// State is the refresh loop's current phase
type State int32

const (
	StateWaiting State = iota
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRefreshing:
		return "refreshing"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Refresher updates the opponent slot of the snapshot
type Refresher interface {
	RefreshOpponent(ctx context.Context, data *models.Data) error
}

// Renderer draws a full frame
type Renderer interface {
	Draw(data models.Data)
}

// RefreshLoop refetches and redraws once per signal. The snapshot is owned by
// the goroutine calling Run.
type RefreshLoop struct {
	data      *models.Data
	refresher Refresher
	renderer  Renderer
	bus       *events.Bus
	state     atomic.Int32
}

// NewRefreshLoop creates a refresh loop over data. bus may be nil.
func NewRefreshLoop(data *models.Data, refresher Refresher, renderer Renderer, bus *events.Bus) *RefreshLoop {
	return &RefreshLoop{
		data:      data,
		refresher: refresher,
		renderer:  renderer,
		bus:       bus,
	}
}

// State returns the current phase
func (l *RefreshLoop) State() State {
	return State(l.state.Load())
}

// Run refreshes once immediately and then once per received signal.
// It returns nil when ctx is cancelled or signals is closed, and the refresher's
// error when a refresh fails hard.
func (l *RefreshLoop) Run(ctx context.Context, signals <-chan struct{}) error {
	log.WithField("player", l.data.SelfID).Info("Refresh loop started")

	for {
		if err := l.refresh(ctx); err != nil {
			// A request aborted by shutdown is not a failure
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			log.Info("Refresh loop shutting down (context cancelled)")
			return nil
		case _, ok := <-signals:
			if !ok {
				log.Info("Refresh loop shutting down (signals closed)")
				return nil
			}
		}
	}
}

func (l *RefreshLoop) refresh(ctx context.Context) error {
	l.state.Store(int32(StateRefreshing))
	defer l.state.Store(int32(StateWaiting))

	refreshID := uuid.NewString()
	start := time.Now()
	previous := l.data.OpponentID()

	if err := l.refresher.RefreshOpponent(ctx, l.data); err != nil {
		log.WithFields(log.Fields{
			"refresh_id": refreshID,
			"player":     l.data.SelfID,
			"error":      err,
		}).Error("Refresh failed")
		return fmt.Errorf("refresh %s: %w", refreshID, err)
	}

	l.renderer.Draw(*l.data)

	current := l.data.OpponentID()
	duration := time.Since(start)
	log.WithFields(log.Fields{
		"refresh_id": refreshID,
		"opponent":   current,
		"duration":   duration,
	}).Debug("Refresh completed")

	if l.bus != nil {
		if current != previous {
			l.bus.Emit(ctx, events.OpponentChangedEvent{
				RefreshID: refreshID,
				Previous:  previous,
				Current:   current,
			})
		}
		l.bus.Emit(ctx, events.RefreshCompletedEvent{
			RefreshID:   refreshID,
			Duration:    duration,
			HasSelf:     l.data.User != nil,
			HasOpponent: l.data.Opponent != nil,
		})
	}
	return nil
}
