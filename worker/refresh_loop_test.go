package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"w3dash/events"
	"w3dash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRefresher hands out the next opponent on each call
type scriptedRefresher struct {
	mu        sync.Mutex
	opponents []*models.User
	calls     int
	err       error
	loop      *RefreshLoop
	states    []State
}

func (r *scriptedRefresher) RefreshOpponent(ctx context.Context, data *models.Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loop != nil {
		r.states = append(r.states, r.loop.State())
	}
	r.calls++
	if r.err != nil {
		return r.err
	}
	if len(r.opponents) > 0 {
		data.Opponent = r.opponents[0]
		r.opponents = r.opponents[1:]
	} else {
		data.Opponent = nil
	}
	return nil
}

func (r *scriptedRefresher) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// recordingRenderer keeps every frame it is asked to draw
type recordingRenderer struct {
	mu     sync.Mutex
	frames []models.Data
}

func (r *recordingRenderer) Draw(data models.Data) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, data)
}

func (r *recordingRenderer) snapshot() []models.Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Data(nil), r.frames...)
}

func TestRefreshLoop_RefreshesImmediatelyThenPerSignal(t *testing.T) {
	refresher := &scriptedRefresher{opponents: []*models.User{{UserID: "Bar#2"}, nil, {UserID: "Baz#3"}}}
	renderer := &recordingRenderer{}
	data := &models.Data{SelfID: "Foo#1", User: &models.User{UserID: "Foo#1"}}
	loop := NewRefreshLoop(data, refresher, renderer, nil)

	signals := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background(), signals) }()

	assert.Eventually(t, func() bool { return refresher.callCount() == 1 }, time.Second, time.Millisecond)

	signals <- struct{}{}
	signals <- struct{}{}
	close(signals)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	frames := renderer.snapshot()
	require.Len(t, frames, 3)
	assert.Equal(t, "Bar#2", frames[0].OpponentID())
	assert.Nil(t, frames[1].Opponent)
	assert.Equal(t, "Baz#3", frames[2].OpponentID())
	for _, frame := range frames {
		assert.Equal(t, "Foo#1", frame.User.UserID)
	}
	assert.Equal(t, StateWaiting, loop.State())
}

func TestRefreshLoop_HardErrorStopsWithoutDrawing(t *testing.T) {
	hardErr := errors.New("ongoing match request failed")
	refresher := &scriptedRefresher{err: hardErr}
	renderer := &recordingRenderer{}
	loop := NewRefreshLoop(&models.Data{SelfID: "Foo#1"}, refresher, renderer, nil)

	err := loop.Run(context.Background(), make(chan struct{}))

	assert.ErrorIs(t, err, hardErr)
	assert.Empty(t, renderer.snapshot())
}

func TestRefreshLoop_ErrorDuringShutdownIsIgnored(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	refresher := &scriptedRefresher{err: context.Canceled}
	loop := NewRefreshLoop(&models.Data{SelfID: "Foo#1"}, refresher, &recordingRenderer{}, nil)

	assert.NoError(t, loop.Run(ctx, make(chan struct{})))
}

func TestRefreshLoop_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	refresher := &scriptedRefresher{}
	loop := NewRefreshLoop(&models.Data{SelfID: "Foo#1"}, refresher, &recordingRenderer{}, nil)

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, make(chan struct{})) }()

	assert.Eventually(t, func() bool { return refresher.callCount() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestRefreshLoop_StateDuringRefresh(t *testing.T) {
	refresher := &scriptedRefresher{}
	loop := NewRefreshLoop(&models.Data{SelfID: "Foo#1"}, refresher, &recordingRenderer{}, nil)
	refresher.loop = loop

	signals := make(chan struct{})
	close(signals)

	require.NoError(t, loop.Run(context.Background(), signals))
	assert.Equal(t, []State{StateRefreshing}, refresher.states)
	assert.Equal(t, StateWaiting, loop.State())
	assert.Equal(t, "refreshing", StateRefreshing.String())
	assert.Equal(t, "waiting", StateWaiting.String())
}

func TestRefreshLoop_EmitsEvents(t *testing.T) {
	bus := events.NewBus()
	changes := make(chan events.OpponentChangedEvent, 4)
	completions := make(chan events.RefreshCompletedEvent, 4)
	bus.Subscribe(events.EventTypeOpponentChanged, func(ctx context.Context, event events.Event) {
		changes <- event.(events.OpponentChangedEvent)
	})
	bus.Subscribe(events.EventTypeRefreshCompleted, func(ctx context.Context, event events.Event) {
		completions <- event.(events.RefreshCompletedEvent)
	})

	// Same opponent twice: only the first refresh is a change
	refresher := &scriptedRefresher{opponents: []*models.User{{UserID: "Bar#2"}, {UserID: "Bar#2"}}}
	loop := NewRefreshLoop(&models.Data{SelfID: "Foo#1"}, refresher, &recordingRenderer{}, bus)

	signals := make(chan struct{}, 1)
	signals <- struct{}{}
	close(signals)
	require.NoError(t, loop.Run(context.Background(), signals))

	select {
	case change := <-changes:
		assert.Equal(t, "", change.Previous)
		assert.Equal(t, "Bar#2", change.Current)
		assert.NotEmpty(t, change.RefreshID)
	case <-time.After(time.Second):
		t.Fatal("no opponent change event")
	}

	for i := 0; i < 2; i++ {
		select {
		case completed := <-completions:
			assert.True(t, completed.HasOpponent)
			assert.False(t, completed.HasSelf)
		case <-time.After(time.Second):
			t.Fatalf("refresh %d completion not emitted", i)
		}
	}

	select {
	case change := <-changes:
		t.Fatalf("unexpected second change event %+v", change)
	case <-time.After(50 * time.Millisecond):
	}
}
