package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

const (
	EventJoinShop  = "join-shop"
	EventLeaveShop = "leave-shop"
	EventJoined    = "joined"
	EventLeft      = "left"
	EventError     = "error"
)

// Message é o formato trafegado nos dois sentidos do socket.
type Message struct {
	Event  string `json:"event"`
	ShopID uint   `json:"shop_id,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type ClientObserver interface {
	ClientConnected()
	ClientDisconnected()
}

// Hub mantém as salas por barbearia. Cada cliente pode estar em várias salas.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}

	upgrader websocket.Upgrader
	observer ClientObserver
	log      *slog.Logger
}

func NewHub(log *slog.Logger, observer ClientObserver, allowedOrigins []string) *Hub {
	h := &Hub{
		rooms:    make(map[uint]map[*Client]struct{}),
		observer: observer,
		log:      log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Serve faz o upgrade e bloqueia até o cliente desconectar.
// userID é 0 para conexões anônimas.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(h, conn, userID)
	if h.observer != nil {
		h.observer.ClientConnected()
	}

	go c.writePump()
	c.readPump()

	h.remove(c)
	if h.observer != nil {
		h.observer.ClientDisconnected()
	}
	return nil
}

func (h *Hub) join(c *Client, shopID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[shopID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[shopID] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) leave(c *Client, shopID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[shopID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, shopID)
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	for shopID, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, shopID)
		}
	}
	h.mu.Unlock()

	c.close()
}

// RoomSize devolve quantos clientes acompanham a barbearia.
func (h *Hub) RoomSize(shopID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[shopID])
}

func (h *Hub) broadcast(shopID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[shopID] {
		if !c.enqueue(payload) {
			h.log.Warn("realtime client too slow, dropping message", "shop_id", shopID)
		}
	}
}

// Publish entrega o evento para a sala da barbearia (events.Publisher).
func (h *Hub) Publish(ev events.Event) {
	if ev.ShopID == 0 {
		return
	}

	payload, err := json.Marshal(Message{
		Event:  ev.Type,
		ShopID: ev.ShopID,
		Data:   publicData(ev),
	})
	if err != nil {
		h.log.Error("realtime encode failed", "event", ev.Type, "error", err)
		return
	}

	h.broadcast(ev.ShopID, payload)
}

type bookingView struct {
	ID             uint     `json:"id"`
	SlotID         uint     `json:"slot_id"`
	BarberID       uint     `json:"barber_id"`
	Status         string   `json:"status"`
	PreviousStatus string   `json:"previous_status,omitempty"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Services       []string `json:"services"`
}

// publicData remove dados pessoais: qualquer um pode assistir uma sala.
func publicData(ev events.Event) any {
	switch {
	case ev.Booking != nil:
		b := ev.Booking
		return bookingView{
			ID:             b.ID,
			SlotID:         b.SlotID,
			BarberID:       b.BarberID,
			Status:         b.Status,
			PreviousStatus: b.PreviousStatus,
			Date:           b.Date,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
			Services:       b.Services,
		}
	case ev.Slot != nil:
		return ev.Slot
	default:
		return nil
	}
}
