// handlers/watch.go
package handlers

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second // Time allowed to write a message
	pingPeriod = 15 * time.Second // Send pings at this interval
)

// WatchProgress streams session snapshots to the client over a WebSocket.
// Every engine publish (module completion, profile edit, badge unlock)
// pushes a fresh snapshot; slow clients only ever see the latest one.
func (h *Handlers) WatchProgress() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		defer conn.Close()

		knightID, ok := conn.Locals("knightId").(string)
		if !ok || knightID == "" {
			_ = conn.WriteJSON(map[string]interface{}{"success": false, "error": "Not authenticated"})
			return
		}

		engine, err := h.sessions.Engine(knightID)
		if err != nil {
			_ = conn.WriteJSON(map[string]interface{}{"success": false, "error": "Session not found"})
			return
		}

		snapshots, cancel := engine.Watch()
		defer cancel()

		// Reader goroutine: the client sends nothing meaningful, but reads
		// are needed to notice a closed connection.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()

		for {
			select {
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(snap); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
