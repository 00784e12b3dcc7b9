package fanout_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/adapters/out/fanout"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := fanout.NewHub(4)

	cityID := ports.CityTopic("surat")
	sub := hub.Subscribe(cityID)
	defer sub.Close()

	other := hub.Subscribe(ports.CityTopic("vadodara"))
	defer other.Close()

	hub.Publish(ports.Event{Topic: cityID, Kind: ports.EventOrderReady})

	select {
	case event := <-sub.C():
		assert.Equal(t, ports.EventOrderReady, event.Kind)
		assert.Equal(t, cityID, event.Topic)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the event")
	}

	select {
	case event := <-other.C():
		t.Fatalf("wrong-city subscriber received %q", event.Kind)
	default:
	}
}

func TestHub_MultipleTopicsOneSubscription(t *testing.T) {
	hub := fanout.NewHub(4)

	orderID := kernel.NewUUID()
	sub := hub.Subscribe(ports.OrderTopic(orderID), ports.CityTopic("surat"))
	defer sub.Close()

	hub.Publish(ports.Event{Topic: ports.OrderTopic(orderID), Kind: ports.EventOrderClaimed})
	hub.Publish(ports.Event{Topic: ports.CityTopic("surat"), Kind: ports.EventOrderReady})

	kinds := make([]string, 0, 2)
	for range 2 {
		select {
		case event := <-sub.C():
			kinds = append(kinds, event.Kind)
		case <-time.After(time.Second):
			t.Fatal("expected two events")
		}
	}
	assert.ElementsMatch(t, []string{ports.EventOrderClaimed, ports.EventOrderReady}, kinds)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := fanout.NewHub(2)

	topic := ports.CityTopic("surat")
	sub := hub.Subscribe(topic)
	defer sub.Close()

	// Nobody drains the channel; only the buffered events survive.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 10 {
			hub.Publish(ports.Event{Topic: topic, Kind: ports.EventOrderReady,
				Payload: map[string]any{"seq": i}})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	assert.Len(t, sub.C(), 2, "only the buffer capacity worth of events should survive")
}

func TestHub_CloseDeregisters(t *testing.T) {
	hub := fanout.NewHub(4)

	topic := ports.CityTopic("surat")
	sub := hub.Subscribe(topic)
	require.Equal(t, 1, hub.SubscriberCount(topic))

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount(topic))

	// Close is idempotent.
	sub.Close()

	// Publishing after close must not panic or resurrect the subscription.
	hub.Publish(ports.Event{Topic: topic, Kind: ports.EventOrderReady})

	_, open := <-sub.C()
	assert.False(t, open, "channel should be closed after Close")
}

func TestHub_DuplicateAndEmptyTopicsCollapsed(t *testing.T) {
	hub := fanout.NewHub(4)

	topic := ports.CityTopic("surat")
	sub := hub.Subscribe(topic, topic, "")
	defer sub.Close()

	assert.Equal(t, []string{topic}, sub.Topics())

	hub.Publish(ports.Event{Topic: topic, Kind: ports.EventOrderReady})

	select {
	case <-sub.C():
	case <-time.After(time.Second):
		t.Fatal("expected the event once")
	}

	select {
	case event := <-sub.C():
		t.Fatalf("duplicate subscription delivered event twice: %q", event.Kind)
	default:
	}
}

func TestHub_TopicsAreIndependent(t *testing.T) {
	hub := fanout.NewHub(32)

	cities := []string{"surat", "rajkot", "vadodara", "bhavnagar"}
	subs := make([]*fanout.Subscription, len(cities))
	for i, city := range cities {
		subs[i] = hub.Subscribe(ports.CityTopic(city))
	}
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	var wg sync.WaitGroup
	for _, city := range cities {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 16 {
				hub.Publish(ports.Event{Topic: ports.CityTopic(city), Kind: ports.EventOrderReady})
			}
		}()
	}
	wg.Wait()

	for i, sub := range subs {
		assert.Len(t, sub.C(), 16, "topic %s must receive exactly its own traffic", cities[i])
	}
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	hub := fanout.NewHub(64)
	topic := ports.CityTopic("surat")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				hub.Publish(ports.Event{Topic: topic, Kind: ports.EventOrderReady})
			}
		}()
	}
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				sub := hub.Subscribe(topic)
				sub.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.SubscriberCount(topic))
}
