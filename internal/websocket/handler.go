package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the request and runs it as a hub client. If
// snapshot is non-nil its result is sent as a "snapshot" message first so the
// client can render without a separate fetch.
func HandleWebSocket(hub *Hub, snapshot func() any, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // kiosk clients on the local network
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		var greeting []byte
		if snapshot != nil {
			msg := NewMessage("snapshot", "sync", "", map[string]any{"state": snapshot()})
			if greeting, err = json.Marshal(msg); err != nil {
				logger.Error("marshal snapshot", "error", err)
				greeting = nil
			}
		}

		logger.Debug("websocket connected", "remote", r.RemoteAddr)
		NewClient(hub, conn).Run(r.Context(), greeting)
		logger.Debug("websocket disconnected", "remote", r.RemoteAddr)
	}
}
