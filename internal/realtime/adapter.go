package realtime

import "sync"

// Adapter keeps at most one physical transport registration per topic key.
// Re-subscribing a topic replaces its registration, and closing a handle
// releases the transport resource deterministically, so mount/remount cycles
// never leak or duplicate listeners.
type Adapter struct {
	transport Transport

	mu     sync.Mutex
	active map[string]*Subscription
}

func NewAdapter(transport Transport) *Adapter {
	return &Adapter{
		transport: transport,
		active:    make(map[string]*Subscription),
	}
}

// Subscribe registers specs under topicKey. The subscription is established
// only when enabled is true and topicKey carries a scope; otherwise the
// returned handle is inert and Close on it is a no-op.
func (a *Adapter) Subscribe(topicKey string, specs []SubscriptionSpec, enabled bool) (*Subscription, error) {
	sub := &Subscription{adapter: a, topicKey: topicKey}

	if !enabled || topicKey == "" {
		return sub, nil
	}

	a.mu.Lock()
	prev := a.active[topicKey]
	delete(a.active, topicKey)
	a.mu.Unlock()

	// Release the stale registration before establishing the new one so the
	// topic never has two live listeners.
	if prev != nil {
		prev.Close()
	}

	release, err := a.transport.Register(topicKey, specs)

	if err != nil {
		return nil, err
	}

	sub.mu.Lock()
	sub.release = release
	sub.mu.Unlock()

	a.mu.Lock()
	a.active[topicKey] = sub
	a.mu.Unlock()

	return sub, nil
}

// ActiveTopics reports how many topics currently hold a live registration.
func (a *Adapter) ActiveTopics() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}

func (a *Adapter) forget(sub *Subscription) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active[sub.topicKey] == sub {
		delete(a.active, sub.topicKey)
	}
}

// Subscription is the scoped handle for one topic registration.
type Subscription struct {
	adapter  *Adapter
	topicKey string

	mu      sync.Mutex
	release func()
}

// Active reports whether the handle still holds a live registration.
func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.release != nil
}

// Close releases the underlying transport registration. It is idempotent,
// and no callback bound to this subscription fires after it returns.
func (s *Subscription) Close() {
	s.mu.Lock()
	release := s.release
	s.release = nil
	s.mu.Unlock()

	if release == nil {
		return
	}

	release()
	s.adapter.forget(s)
}
