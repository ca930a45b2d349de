package realtime

import (
	"errors"
	"testing"
)

type fakeTransport struct {
	registers int
	releases  int
	live      int
	err       error
}

func (t *fakeTransport) Register(topicKey string, specs []SubscriptionSpec) (func(), error) {
	if t.err != nil {
		return nil, t.err
	}

	t.registers++
	t.live++

	return func() {
		t.releases++
		t.live--
	}, nil
}

func TestSubscribeDisabledCreatesNothing(t *testing.T) {
	transport := &fakeTransport{}
	adapter := NewAdapter(transport)

	sub, err := adapter.Subscribe("standups_org-1", nil, false)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if transport.registers != 0 {
		t.Errorf("expected zero registrations, got %d", transport.registers)
	}
	if sub.Active() {
		t.Errorf("disabled subscription reports active")
	}

	// Close on an inert handle is a no-op.
	sub.Close()
	if transport.releases != 0 {
		t.Errorf("expected zero releases, got %d", transport.releases)
	}
}

func TestSubscribeMissingScopeCreatesNothing(t *testing.T) {
	transport := &fakeTransport{}
	adapter := NewAdapter(transport)

	sub, err := adapter.Subscribe(TopicKey("standups", ""), nil, true)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if transport.registers != 0 {
		t.Errorf("expected zero registrations, got %d", transport.registers)
	}
	if sub.Active() {
		t.Errorf("unscoped subscription reports active")
	}
}

func TestSubscribeEstablishesAndCloseReleases(t *testing.T) {
	transport := &fakeTransport{}
	adapter := NewAdapter(transport)

	sub, err := adapter.Subscribe("standups_org-1", nil, true)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if !sub.Active() {
		t.Fatalf("expected active subscription")
	}
	if transport.live != 1 {
		t.Fatalf("live registrations = %d, want 1", transport.live)
	}

	sub.Close()

	if sub.Active() {
		t.Errorf("closed subscription reports active")
	}
	if transport.live != 0 {
		t.Errorf("live registrations after close = %d, want 0", transport.live)
	}
	if adapter.ActiveTopics() != 0 {
		t.Errorf("active topics after close = %d, want 0", adapter.ActiveTopics())
	}

	// Close is idempotent.
	sub.Close()
	if transport.releases != 1 {
		t.Errorf("releases = %d, want 1", transport.releases)
	}
}

func TestResubscribeReplacesRegistration(t *testing.T) {
	transport := &fakeTransport{}
	adapter := NewAdapter(transport)

	first, err := adapter.Subscribe("standups_org-1", nil, true)
	if err != nil {
		t.Fatalf("first Subscribe returned error: %v", err)
	}

	second, err := adapter.Subscribe("standups_org-1", nil, true)
	if err != nil {
		t.Fatalf("second Subscribe returned error: %v", err)
	}

	if transport.live != 1 {
		t.Errorf("live registrations = %d, want 1 after replace", transport.live)
	}
	if first.Active() {
		t.Errorf("replaced subscription still reports active")
	}
	if !second.Active() {
		t.Errorf("replacement subscription not active")
	}
	if adapter.ActiveTopics() != 1 {
		t.Errorf("active topics = %d, want 1", adapter.ActiveTopics())
	}
}

func TestToggleEnabledLeavesNoResidue(t *testing.T) {
	hub := NewHub()
	adapter := NewAdapter(hub)

	var delivered int
	specs := []SubscriptionSpec{{
		Table:    "standups",
		Event:    EventInsert,
		Filter:   OrgFilter("org-1"),
		Callback: func(Row) { delivered++ },
	}}

	// enabled = false: nothing registered.
	if _, err := adapter.Subscribe("standups_org-1", specs, false); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	// false -> true: one registration, events delivered.
	sub, err := adapter.Subscribe("standups_org-1", specs, true)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	hub.Publish(Event{Table: "standups", Type: EventInsert, Row: Row{"org_id": "org-1"}})

	if delivered != 1 {
		t.Fatalf("delivered = %d, want 1", delivered)
	}

	// true -> false: release, and later events reach nothing.
	sub.Close()

	hub.Publish(Event{Table: "standups", Type: EventInsert, Row: Row{"org_id": "org-1"}})

	if delivered != 1 {
		t.Errorf("delivered after close = %d, want 1", delivered)
	}
	if hub.Registrations() != 0 {
		t.Errorf("hub registrations = %d, want 0", hub.Registrations())
	}
}

func TestSubscribeTransportFailure(t *testing.T) {
	transport := &fakeTransport{err: errors.New("transport down")}
	adapter := NewAdapter(transport)

	if _, err := adapter.Subscribe("standups_org-1", nil, true); err == nil {
		t.Fatalf("expected error from failing transport")
	}
	if adapter.ActiveTopics() != 0 {
		t.Errorf("active topics = %d, want 0 after failure", adapter.ActiveTopics())
	}
}
