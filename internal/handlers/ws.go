package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/types"
)

// WebSocket upgrades the connection and parks it on the hub for the requested
// table until the client goes away.
func (h *Handler) WebSocket(c *gin.Context) {
	table := c.Param("table")

	if !realtime.ValidTable(table) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown table"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(realtime.MaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(realtime.PongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(realtime.PongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	h.hub.Register(table, conn)

	defer func() {
		h.hub.Unregister(table, conn)
		conn.Close()

		log.Printf("WebSocket connection closed for table %s", table)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(realtime.WriteWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":  "connected",
		"table": table,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(realtime.PingPeriod)
	defer ticker.Stop()

	go func() {
		// Send pings periodically
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(realtime.WriteWait)); err != nil {
				log.Printf("Failed to set write deadline for table %s: %v", table, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for table %s: %v", table, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(realtime.PongWait)); err != nil {
			log.Printf("Failed to set read deadline for table %s: %v", table, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for table %s: %v", table, err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			log.Printf("Received message from client on table %s: %s", table, string(message))
		case websocket.PongMessage:
			log.Printf("Received pong from table %s", table)
		}
	}
}
