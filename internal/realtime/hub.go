package realtime

import (
	"fmt"
	"sync"
)

type registration struct {
	topicKey string
	specs    []SubscriptionSpec
}

// Hub is the in-process change-feed transport. Writers publish table-level
// events; the hub dispatches each event synchronously to every matching
// registration, in registration order.
//
// Callbacks run on the publisher's goroutine while the hub holds its read
// lock, which is what makes release synchronous: once a registration's
// release function returns, none of its callbacks will fire again. Callbacks
// must therefore not register or release subscriptions.
type Hub struct {
	mu   sync.RWMutex
	regs []*registration
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Register(topicKey string, specs []SubscriptionSpec) (func(), error) {
	if topicKey == "" {
		return nil, fmt.Errorf("topic key is required")
	}

	reg := &registration{topicKey: topicKey, specs: specs}

	h.mu.Lock()
	h.regs = append(h.regs, reg)
	h.mu.Unlock()

	release := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		for i, r := range h.regs {
			if r == reg {
				h.regs = append(h.regs[:i], h.regs[i+1:]...)
				break
			}
		}
	}

	return release, nil
}

// Publish dispatches an event to every registration with a spec matching the
// event's table, type, and filter.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, reg := range h.regs {
		for _, spec := range reg.specs {
			if spec.Table != event.Table || spec.Event != event.Type {
				continue
			}
			if !MatchFilter(spec.Filter, event.Row) {
				continue
			}
			if spec.Callback != nil {
				spec.Callback(event.Row)
			}
		}
	}
}

// PublishRecord converts a persisted record to the event row shape and
// publishes it.
func (h *Hub) PublishRecord(table string, eventType EventType, record interface{}) error {
	row, err := RowOf(record)

	if err != nil {
		return fmt.Errorf("encode %s row: %w", table, err)
	}

	h.Publish(Event{Table: table, Type: eventType, Row: row})
	return nil
}

// Registrations reports the number of live registrations, across all topics.
func (h *Hub) Registrations() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.regs)
}
