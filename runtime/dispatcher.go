package runtime

import (
	"context"
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
)

// Dispatcher fans events out to the sinks the registry resolves for them.
//
// Dispatches are serialized under one mutex so two events for the same
// room are always observed in dispatch order by every recipient. Sinks
// must never block; a sink that cannot keep up drops the event and the
// drop is logged here.
type Dispatcher struct {
	mu       sync.Mutex
	log      *slog.Logger
	registry *Registry
}

func NewDispatcher(log *slog.Logger, registry *Registry) *Dispatcher {
	return &Dispatcher{log: log, registry: registry}
}

func (d *Dispatcher) Dispatch(ctx context.Context, evt domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sinks []contract.EventSink
	switch evt.Scope {
	case domain.ScopeRoom:
		sinks = d.registry.MembersOf(evt.TargetID)
	case domain.ScopeUser:
		sinks = d.registry.UserSinks(evt.TargetID)
	default:
		d.log.Error("event with unknown scope", "event", evt.Name, "scope", evt.Scope)
		return
	}

	for _, sink := range sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			d.log.Warn("event dropped by slow consumer",
				"event", evt.Name, "scope", evt.Scope, "target_id", evt.TargetID, "error", err)
		}
	}
}
