package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/notesync/internal/model"
)

type Authenticator interface {
	Authenticate(credential string) (model.Caller, error)
}

// HandleWebSocket returns an HTTP handler that authenticates the handshake,
// upgrades the connection and runs it as a Hub client. The credential comes
// from the Authorization header or the token query parameter.
func HandleWebSocket(hub *Hub, authn Authenticator, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credential := r.Header.Get("Authorization")
		if credential == "" {
			credential = r.URL.Query().Get("token")
		}

		caller, err := authn.Authenticate(credential)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}
		defer conn.CloseNow()

		client := NewClient(hub, conn, caller)
		client.Run(r.Context())
	}
}
