package relay

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Configure the websocket upgrader. Buffer sizes cover a control frame
// comfortably; chunk-sized binary frames are streamed through the same
// buffers by gorilla internally.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,

	// The relay is deliberately open: anyone who knows a room id may
	// join it, from any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeRoom returns an http.HandlerFunc that upgrades the request and
// joins the connection to the room named by the {roomID} path segment.
// The same handler backs both the chat/file relay and the signaling
// pass-through; they differ only in which registry they are given.
func ServeRoom(registry *Registry, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.PathValue("roomID")
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade failed", "err", err)
			return
		}

		client := NewClient(registry, conn, roomID, logger)
		registry.Join(roomID, client)

		go client.WritePump()
		go client.ReadPump()
	}
}

// HealthHandler answers liveness probes.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Relay server is healthy."))
}
