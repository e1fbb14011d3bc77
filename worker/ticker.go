package worker

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartTicker emits one signal per interval on the returned channel.
// Ticks that arrive while nobody is receiving are counted and delivered later,
// so a slow consumer drifts but never loses a tick.
// Returns a cleanup function to stop the ticker.
func StartTicker(ctx context.Context, interval time.Duration) (<-chan struct{}, func()) {
	ticker := time.NewTicker(interval)
	signals := make(chan struct{})
	stopChan := make(chan struct{})

	go func() {
		defer ticker.Stop()
		log.WithField("interval", interval).Debug("Refresh ticker started")

		pending := 0
		for {
			// A nil channel disables the send case until a tick is pending
			var out chan<- struct{}
			if pending > 0 {
				out = signals
			}

			select {
			case <-ctx.Done():
				log.Debug("Refresh ticker shutting down (context cancelled)")
				return
			case <-stopChan:
				log.Debug("Refresh ticker shutting down (stop requested)")
				return
			case <-ticker.C:
				pending++
			case out <- struct{}{}:
				pending--
			}
		}
	}()

	var once sync.Once
	return signals, func() {
		once.Do(func() { close(stopChan) })
	}
}
