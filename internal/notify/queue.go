package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Skotchmaster/scent_shop/pkg/logging"
)

const deliverTimeout = 15 * time.Second

// Queue hands events to its sinks from a single background worker. Publish
// drops the event when the buffer is full; each sink sees an event at most
// once and failures are only logged.
type Queue struct {
	events chan queued
	sinks  []Sink
	log    *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
	start  sync.Once
}

func NewQueue(buffer int, log *slog.Logger, sinks ...Sink) *Queue {
	if buffer < 1 {
		buffer = 1
	}
	return &Queue{
		events: make(chan queued, buffer),
		sinks:  sinks,
		log:    log.With("component", "notify"),
		done:   make(chan struct{}),
	}
}

func (q *Queue) Start() {
	q.start.Do(func() { go q.run() })
}

// queued is an event plus the id of the request that raised it, so delivery
// logs can be traced back to that request.
type queued struct {
	ev        Event
	requestID string
}

func (q *Queue) Publish(ctx context.Context, ev Event) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.log.WarnContext(ctx, "notify_dropped", "reason", "queue closed", "type", ev.Type, "key", ev.Key())
		return
	}
	select {
	case q.events <- queued{ev: ev, requestID: logging.RequestID(ctx)}:
	default:
		q.log.WarnContext(ctx, "notify_dropped", "reason", "queue full", "type", ev.Type, "key", ev.Key())
	}
}

// Close stops accepting events and waits until the buffered ones are
// delivered or ctx expires.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
	q.mu.Unlock()

	q.Start()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for item := range q.events {
		q.deliver(item)
	}
}

func (q *Queue) deliver(item queued) {
	ev := item.ev
	base := logging.WithRequestID(context.Background(), item.requestID)
	for _, s := range q.sinks {
		ctx, cancel := context.WithTimeout(base, deliverTimeout)
		err := s.Deliver(ctx, ev)
		cancel()
		if err != nil {
			q.log.ErrorContext(base, "notify_failed", "sink", s.Name(), "type", ev.Type, "key", ev.Key(), "error", err)
			continue
		}
		q.log.DebugContext(base, "notify_delivered", "sink", s.Name(), "type", ev.Type, "key", ev.Key())
	}
}
