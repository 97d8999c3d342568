package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimbot/internal/claim"
)

// recordingHandler notes the order and completion time of every event it
// handles, with an optional per-conversation slowdown.
type recordingHandler struct {
	mu       sync.Mutex
	order    map[claim.ConversationID][]string
	finished map[claim.ConversationID]time.Time
	delay    map[claim.ConversationID]time.Duration
	handled  int
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		order:    make(map[claim.ConversationID][]string),
		finished: make(map[claim.ConversationID]time.Time),
		delay:    make(map[claim.ConversationID]time.Duration),
	}
}

func (h *recordingHandler) Handle(_ context.Context, conv claim.ConversationID, ev Event) error {
	h.mu.Lock()
	d := h.delay[conv]
	h.mu.Unlock()

	time.Sleep(d)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.order[conv] = append(h.order[conv], ev.Data)
	h.finished[conv] = time.Now()
	h.handled++
	return nil
}

func (h *recordingHandler) handledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handled
}

func TestDispatcherPreservesPerConversationOrder(t *testing.T) {
	handler := newRecordingHandler()
	handler.delay[1] = 20 * time.Millisecond // conversation 1 is slow

	d := NewDispatcher(handler, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// interleave two conversations
	d.Submit(1, Event{Kind: EventText, Data: "a1"})
	d.Submit(2, Event{Kind: EventText, Data: "b1"})
	d.Submit(1, Event{Kind: EventText, Data: "a2"})
	d.Submit(2, Event{Kind: EventText, Data: "b2"})
	d.Submit(1, Event{Kind: EventText, Data: "a3"})
	d.Submit(2, Event{Kind: EventText, Data: "b3"})

	require.Eventually(t, func() bool { return handler.handledCount() == 6 },
		2*time.Second, 5*time.Millisecond)

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, []string{"a1", "a2", "a3"}, handler.order[1])
	assert.Equal(t, []string{"b1", "b2", "b3"}, handler.order[2])

	// the fast conversation was not stalled behind the slow one
	assert.True(t, handler.finished[2].Before(handler.finished[1]),
		"conversation 2 should finish before the slowed conversation 1")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDispatcherReapsIdleConversations(t *testing.T) {
	handler := newRecordingHandler()
	d := NewDispatcher(handler, discardLogger())
	d.idleTimeout = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Submit(1, Event{Kind: EventText, Data: "a1"})
	require.Eventually(t, func() bool { return handler.handledCount() == 1 },
		time.Second, 5*time.Millisecond)

	// the drained worker reaps itself after the idle window
	require.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.queues) == 0
	}, time.Second, 5*time.Millisecond)

	// a later event for the same conversation spawns a fresh worker
	d.Submit(1, Event{Kind: EventText, Data: "a2"})
	require.Eventually(t, func() bool { return handler.handledCount() == 2 },
		time.Second, 5*time.Millisecond)

	handler.mu.Lock()
	assert.Equal(t, []string{"a1", "a2"}, handler.order[1])
	handler.mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	d := NewDispatcher(newRecordingHandler(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
