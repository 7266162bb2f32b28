package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/mbeaulieu/courses/internal/auth"
)

// HandleWebSocket upgrades authenticated connections and runs them as
// hub clients. The middleware has already resolved the session, so
// the acting user id comes from the request context.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Allow connections from any origin (household LAN)
		})
		if err != nil {
			logger.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, auth.UserID(r.Context()))
		client.Run(r.Context())
	}
}
