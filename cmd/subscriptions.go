package cmd

import (
	"context"

	"w3dash/events"

	log "github.com/sirupsen/logrus"
)

// RefreshRecorder receives completed refreshes
type RefreshRecorder interface {
	RecordRefresh(hasOpponent bool)
}

// subscribeHandlers registers the logging and metrics consumers of refresh events
func subscribeHandlers(bus *events.Bus, recorder RefreshRecorder) {
	bus.Subscribe(events.EventTypeOpponentChanged, func(ctx context.Context, event events.Event) {
		changed, ok := event.(events.OpponentChangedEvent)
		if !ok {
			return
		}
		fields := log.Fields{
			"refresh_id": changed.RefreshID,
			"previous":   changed.Previous,
			"opponent":   changed.Current,
		}
		if changed.Current == "" {
			log.WithFields(fields).Info("Opponent left")
		} else {
			log.WithFields(fields).Info("New opponent")
		}
	})

	bus.Subscribe(events.EventTypeRefreshCompleted, func(ctx context.Context, event events.Event) {
		completed, ok := event.(events.RefreshCompletedEvent)
		if !ok {
			return
		}
		recorder.RecordRefresh(completed.HasOpponent)
	})
}
