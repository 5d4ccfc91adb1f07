package workers

import (
	"context"
	"log/slog"
	"time"

	"messenger/contract"
	"messenger/domain/event"
)

// EventFanout broadcasts store events to every subscribed sink.
//
// It provides best-effort fan-out with no guarantees regarding durability
// or retries. Events are delivered to sinks in the order they were published;
// a sink that does not return within sinkTimeout is skipped for that event.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, registry contract.IRegistry, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, events: events, registry: registry, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout One sink for each event
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.registry.Sinks() {
		w.consume(ctx, sink, evt)
	}
}

func (w *EventFanout) consume(ctx context.Context, sink contract.EventSink, evt event.DomainEvent) {
	ctx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()
	if err := sink.Consume(ctx, evt); err != nil {
		w.log.Debug("Sink failed to consume event", "type", evt.Type(), "error", err)
	}
}
