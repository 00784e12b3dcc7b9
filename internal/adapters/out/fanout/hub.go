// Package fanout implements in-process, topic-based event distribution.
// Subscribers register for exact topic strings; a published event is copied
// to every subscriber of its topic. Delivery is at most once: a subscriber
// whose buffer is full misses the event instead of stalling the publisher.
package fanout

import (
	"sync"

	"dispatch/internal/core/ports"
)

// DefaultBufferSize is the channel capacity given to each subscription.
const DefaultBufferSize = 16

// Subscription is a live interest in one or more topics. Events arrive on C
// until Close is called. C is never closed by the hub itself while the
// subscription is registered, so ranging over it requires Close first.
type Subscription struct {
	hub    *Hub
	topics []string
	ch     chan ports.Event
	once   sync.Once
}

// C returns the channel events are delivered on.
func (s *Subscription) C() <-chan ports.Event {
	return s.ch
}

// Topics returns the topics this subscription covers.
func (s *Subscription) Topics() []string {
	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}

// Close deregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.ch)
	})
}

// group holds the subscribers of one topic behind its own lock, so a
// publish to a busy topic never contends with traffic on any other.
type group struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// Hub routes events from publishers to topic subscribers. The registry
// lock guards only the topic map; each topic's membership has its own
// lock. The zero value is not usable; construct with NewHub.
type Hub struct {
	mu     sync.Mutex
	topics map[string]*group
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to bufferSize events.
// Non-positive sizes fall back to DefaultBufferSize.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		topics: make(map[string]*group),
		buffer: bufferSize,
	}
}

// Subscribe registers interest in the given topics. Duplicate topics in the
// list are collapsed. The caller owns the returned subscription and must
// Close it when done, or its registration leaks.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		hub: h,
		ch:  make(chan ports.Event, h.buffer),
	}

	seen := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		sub.topics = append(sub.topics, topic)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range sub.topics {
		g, ok := h.topics[topic]
		if !ok {
			g = &group{subs: make(map[*Subscription]struct{})}
			h.topics[topic] = g
		}
		g.mu.Lock()
		g.subs[sub] = struct{}{}
		g.mu.Unlock()
	}
	return sub
}

// Publish delivers the event to every current subscriber of its topic.
// Subscribers with full buffers are skipped; Publish never blocks. Only the
// event's topic is locked for the duration of the delivery.
func (h *Hub) Publish(event ports.Event) {
	g := h.lookup(event.Topic)
	if g == nil {
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for sub := range g.subs {
		select {
		case sub.ch <- event:
		default:
			// Slow consumer. The event is gone for this subscriber.
		}
	}
}

// SubscriberCount reports how many subscriptions currently cover the topic.
func (h *Hub) SubscriberCount(topic string) int {
	g := h.lookup(topic)
	if g == nil {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.subs)
}

func (h *Hub) lookup(topic string) *group {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.topics[topic]
}

// unsubscribe runs before the subscription's channel closes: holding the
// group lock here guarantees no publisher is mid-delivery to the closing
// channel once removal returns.
func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range sub.topics {
		g, ok := h.topics[topic]
		if !ok {
			continue
		}
		g.mu.Lock()
		delete(g.subs, sub)
		empty := len(g.subs) == 0
		g.mu.Unlock()
		if empty {
			delete(h.topics, topic)
		}
	}
}
