package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint

	once sync.Once
	mu   sync.Mutex
	done bool
}

func newClient(h *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
	}
}

func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		close(c.send)
		c.mu.Unlock()
	})
}

func (c *Client) reply(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(b)
}

func (c *Client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("realtime read failed", "user_id", c.userID, "error", err)
			}
			return
		}

		switch msg.Event {
		case EventJoinShop:
			if msg.ShopID == 0 {
				c.reply(Message{Event: EventError, Data: "shop_id obrigatório"})
				continue
			}
			c.hub.join(c, msg.ShopID)
			c.reply(Message{Event: EventJoined, ShopID: msg.ShopID})

		case EventLeaveShop:
			c.hub.leave(c, msg.ShopID)
			c.reply(Message{Event: EventLeft, ShopID: msg.ShopID})

		default:
			c.reply(Message{Event: EventError, Data: "evento desconhecido"})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
