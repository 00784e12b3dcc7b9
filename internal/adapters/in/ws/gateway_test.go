package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/fanout"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

func newTestGateway(t *testing.T) (*fanout.Hub, *websocket.Conn) {
	t.Helper()

	hub := fanout.NewHub(16)
	gateway := ws.NewGateway(hub, nil)

	e := echo.New()
	e.GET("/ws", gateway.Handle)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	return hub, conn
}

// waitForSubscriber blocks until the hub registers a subscription on the
// topic, since the subscribe frame is processed asynchronously.
func waitForSubscriber(t *testing.T, hub *fanout.Hub, topic string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(topic) > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no subscriber appeared on %q", topic)
}

func TestGateway_SubscribeAndReceive(t *testing.T) {
	hub, conn := newTestGateway(t)
	topic := ports.CityTopic("surat")

	err := conn.WriteJSON(map[string]string{"action": "subscribe", "topic": topic})
	require.NoError(t, err)
	waitForSubscriber(t, hub, topic)

	hub.Publish(ports.Event{
		Topic:   topic,
		Kind:    ports.EventOrderReady,
		Payload: map[string]any{"order_id": "abc"},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event ports.Event
	err = conn.ReadJSON(&event)
	require.NoError(t, err)
	assert.Equal(t, topic, event.Topic)
	assert.Equal(t, ports.EventOrderReady, event.Kind)
	assert.Equal(t, "abc", event.Payload["order_id"])
}

func TestGateway_UnsubscribeStopsDelivery(t *testing.T) {
	hub, conn := newTestGateway(t)
	topic := ports.CityTopic("surat")

	err := conn.WriteJSON(map[string]string{"action": "subscribe", "topic": topic})
	require.NoError(t, err)
	waitForSubscriber(t, hub, topic)

	err = conn.WriteJSON(map[string]string{"action": "unsubscribe", "topic": topic})
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && hub.SubscriberCount(topic) > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.SubscriberCount(topic))
}

func TestGateway_MalformedFramesAreIgnored(t *testing.T) {
	hub, conn := newTestGateway(t)
	topic := ports.OrderTopic(kernel.NewUUID())

	err := conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	require.NoError(t, err)
	err = conn.WriteJSON(map[string]string{"action": "dance", "topic": topic})
	require.NoError(t, err)

	// The connection survives bad frames and still accepts subscriptions.
	err = conn.WriteJSON(map[string]string{"action": "subscribe", "topic": topic})
	require.NoError(t, err)
	waitForSubscriber(t, hub, topic)
}

func TestGateway_DisconnectCleansUpSubscriptions(t *testing.T) {
	hub, conn := newTestGateway(t)
	topic := ports.CityTopic("surat")

	err := conn.WriteJSON(map[string]string{"action": "subscribe", "topic": topic})
	require.NoError(t, err)
	waitForSubscriber(t, hub, topic)

	require.NoError(t, conn.Close())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && hub.SubscriberCount(topic) > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.SubscriberCount(topic),
		"dropping the connection should deregister its subscriptions")
}
