package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"claimbot/internal/claim"
)

// Handler consumes one (conversation, event) pair. *Service implements it.
type Handler interface {
	Handle(ctx context.Context, conv claim.ConversationID, ev Event) error
}

// queue sizes. A conversation that falls convQueueSize events behind gets
// its overflow dropped rather than stalling every other chat.
const (
	inboxSize     = 128
	convQueueSize = 32

	// a drained conversation queue is reaped after this much silence so a
	// long-lived process does not accrue one worker per conversation ever
	// seen
	defaultConvIdleTimeout = 5 * time.Minute
)

type submission struct {
	conv claim.ConversationID
	ev   Event
}

// Dispatcher is the explicit event loop between the transport and the flow
// service. It fans inbound events out to per-conversation FIFO queues, each
// drained by its own worker, so one conversation's receipt scan cannot
// block another's wizard step while events within a conversation stay
// strictly ordered. Idle workers reap themselves; the next event for that
// conversation simply spawns a fresh one.
type Dispatcher struct {
	handler     Handler
	logger      *slog.Logger
	idleTimeout time.Duration

	inbox chan submission

	mu     sync.Mutex
	queues map[claim.ConversationID]chan Event
	wg     sync.WaitGroup
}

// NewDispatcher constructs a Dispatcher around a handler.
func NewDispatcher(handler Handler, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handler:     handler,
		logger:      logger,
		idleTimeout: defaultConvIdleTimeout,
		inbox:       make(chan submission, inboxSize),
		queues:      make(map[claim.ConversationID]chan Event),
	}
}

// Submit enqueues one inbound event. Events submitted for the same
// conversation are handled in submission order.
func (d *Dispatcher) Submit(conv claim.ConversationID, ev Event) {
	d.inbox <- submission{conv: conv, ev: ev}
}

// Run routes events until ctx is canceled, then drains the per-conversation
// workers and returns ctx.Err().
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.mu.Lock()
			for _, q := range d.queues {
				close(q)
			}
			d.queues = make(map[claim.ConversationID]chan Event)
			d.mu.Unlock()
			d.wg.Wait()
			return ctx.Err()
		case sub := <-d.inbox:
			d.route(ctx, sub)
		}
	}
}

// route delivers one event to its conversation's queue. Enqueueing happens
// under the mutex so an idle worker can never reap a queue between the
// lookup and the send.
func (d *Dispatcher) route(ctx context.Context, sub submission) {
	d.mu.Lock()
	q, ok := d.queues[sub.conv]
	if !ok {
		q = make(chan Event, convQueueSize)
		d.queues[sub.conv] = q
		d.wg.Add(1)
		go d.work(ctx, sub.conv, q)
	}

	select {
	case q <- sub.ev:
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		d.logger.WarnContext(ctx, "conversation queue full, dropping event",
			"conversation_id", int64(sub.conv), "kind", string(sub.ev.Kind))
	}
}

func (d *Dispatcher) work(ctx context.Context, conv claim.ConversationID, q chan Event) {
	defer d.wg.Done()

	idle := time.NewTimer(d.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case ev, ok := <-q:
			if !ok {
				return
			}
			if err := d.handler.Handle(ctx, conv, ev); err != nil {
				d.logger.ErrorContext(ctx, "event handling failed",
					"conversation_id", int64(conv),
					"kind", string(ev.Kind),
					"error", err.Error())
			}
			idle.Reset(d.idleTimeout)
		case <-idle.C:
			d.mu.Lock()
			if len(q) == 0 {
				// Only reap the queue this worker still owns: after a
				// shutdown close the map holds a fresh generation.
				if cur, ok := d.queues[conv]; ok && cur == q {
					delete(d.queues, conv)
				}
				d.mu.Unlock()
				return
			}
			d.mu.Unlock()
			idle.Reset(d.idleTimeout)
		}
	}
}
