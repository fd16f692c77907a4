package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans completed-sale events out to connected dashboard clients.
type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		clients:    make(map[*websocket.Conn]bool),
	}
}

// PublishJSON marshals the payload and queues it for broadcast.
// Marshal failures are logged and dropped; the feed is best-effort.
func (h *Hub) PublishJSON(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws: marshal broadcast payload: %v", err)
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
