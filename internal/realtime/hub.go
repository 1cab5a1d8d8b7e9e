package realtime

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

// Hub tracks websocket clients per table topic and pushes refresh hints when
// a table changes. Clients re-fetch over the REST API; the hint carries no
// row data.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(table string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[table] == nil {
		h.clients[table] = make(map[*websocket.Conn]bool)
	}
	h.clients[table][conn] = true
}

func (h *Hub) Unregister(table string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(table, conn)
}

// remove expects h.mu held.
func (h *Hub) remove(table string, conn *websocket.Conn) {
	if clients, exists := h.clients[table]; exists {
		delete(clients, conn)

		if len(clients) == 0 {
			delete(h.clients, table)
		}
	}
}

// Broadcast sends a refresh message to every client watching the table.
// Failed connections are dropped from the registry and closed.
func (h *Hub) Broadcast(table string) {
	h.mu.RLock()
	clients, exists := h.clients[table]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing to sockets.
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	h.mu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":  "refresh",
			"table": table,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			h.mu.Lock()
			h.remove(table, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}

// Watch forwards notifier events for the given tables into broadcasts until
// ctx ends.
func (h *Hub) Watch(ctx context.Context, notifier *Notifier, tables ...string) {
	for _, table := range tables {
		events, cancel := notifier.Subscribe(table)

		go func(table string, events <-chan Event, cancel func()) {
			defer cancel()

			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-events:
					if !ok {
						return
					}
					h.Broadcast(table)
				}
			}
		}(table, events, cancel)
	}
}
