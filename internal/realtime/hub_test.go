package realtime

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, 0)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_JoinReceivesShopEvents(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Message{Event: EventJoinShop, ShopID: 3}))
	ack := read(t, conn)
	assert.Equal(t, EventJoined, ack.Event)
	assert.Equal(t, uint(3), ack.ShopID)

	hub.Publish(events.Event{
		Type:   events.BookingCreated,
		ShopID: 3,
		Booking: &events.BookingPayload{
			ID:            10,
			Status:        "pending",
			CustomerEmail: "cliente@example.com",
		},
	})

	got := read(t, conn)
	assert.Equal(t, events.BookingCreated, got.Event)
	assert.Equal(t, uint(3), got.ShopID)

	data, ok := got.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 10, data["id"])
	assert.NotContains(t, data, "customer_email")
}

func TestHub_OtherShopsAreNotDelivered(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Message{Event: EventJoinShop, ShopID: 1}))
	read(t, conn)

	hub.Publish(events.Event{Type: events.SlotUpdated, ShopID: 2, Slot: &events.SlotPayload{ID: 5}})
	hub.Publish(events.Event{Type: events.SlotUpdated, ShopID: 1, Slot: &events.SlotPayload{ID: 6}})

	got := read(t, conn)
	data := got.Data.(map[string]any)
	assert.EqualValues(t, 6, data["id"])
}

func TestHub_LeaveShop(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Message{Event: EventJoinShop, ShopID: 4}))
	read(t, conn)
	assert.Equal(t, 1, hub.RoomSize(4))

	require.NoError(t, conn.WriteJSON(Message{Event: EventLeaveShop, ShopID: 4}))
	left := read(t, conn)
	assert.Equal(t, EventLeft, left.Event)
	assert.Equal(t, 0, hub.RoomSize(4))
}

func TestHub_RejectsUnknownEvents(t *testing.T) {
	_, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Message{Event: "subscribe"}))
	assert.Equal(t, EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteJSON(Message{Event: EventJoinShop}))
	assert.Equal(t, EventError, read(t, conn).Event)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))

	assert.True(t, originChecker(nil)(r))
}
