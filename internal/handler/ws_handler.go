/*
Package handler provides the HTTP handler for WebSocket connection upgrading.

The bearer credential is validated before the upgrade; a connection with a
missing, malformed, or invalid token is refused and never reaches the event
handlers. Browsers cannot set headers on WebSocket handshakes, so the token is
also accepted as a query parameter.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"youapp/internal/app/chat"
	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
	"youapp/internal/pkg/resp"
)

// HandleWebSocket authenticates the caller, upgrades the connection, and
// starts the session pumps.
func HandleWebSocket(upgrader websocket.Upgrader, deps *ChatDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := jwt.BearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}

		if tokenString == "" {
			logx.Warn("WebSocket connection rejected: Missing bearer credential.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		identity, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: Invalid bearer credential.", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		session := chat.NewSession(deps.Hub, deps.Service, conn, identity.ID)

		go session.WritePump()

		logx.Info("WebSocket connection established", "user_id", identity.ID)

		session.ReadPump()
	}
}
