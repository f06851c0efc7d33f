/*
Package handler provides the HTTP handlers and routing setup for both backend
services.

This file defines the two routers. Each applies CORS, request-id, logging, and
recovery middleware before delegating to the area handlers; protected routes
sit behind the strict bearer middleware.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"youapp/internal/configs"
	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/logx"
	"youapp/internal/pkg/resp"
)

// baseRouter assembles the middleware stack shared by both services.
func baseRouter(cfg *configs.AppConfig) chi.Router {
	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if cfg.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(cfg.AllowedOrigins) > 0 {
		corsAllowedOrigins = cfg.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	return r
}

// healthHandler returns the fixed greeting of a service, regardless of
// system state.
func healthHandler(greeting string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondJSON(w, r, http.StatusOK, map[string]string{
			"message": greeting,
		})
	}
}

// ChatRouter sets up the routing table of the chat service: the health check,
// the authenticated query surface, and the WebSocket endpoint.
func ChatRouter(deps *ChatDeps) http.Handler {
	r := baseRouter(deps.Config)

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	r.Get("/health", healthHandler("Hello from Chat Service of You App"))

	r.Group(func(protected chi.Router) {
		protected.Use(jwt.RequireAuth(deps.Config.JWTSecret))

		protected.Get("/viewMessages/{roomId}", HandleViewMessages(deps))
		protected.Get("/getUserRooms", HandleGetUserRooms(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, deps))

	return r
}

// UserRouter sets up the routing table of the user service: registration,
// login, and the authenticated profile surface.
func UserRouter(deps *UserDeps) http.Handler {
	r := baseRouter(deps.Config)

	r.Get("/health", healthHandler("Hello You App"))

	r.Post("/register", HandleRegister(deps))
	r.Post("/login", HandleLogin(deps))

	r.Group(func(protected chi.Router) {
		protected.Use(jwt.RequireAuth(deps.Config.JWTSecret))

		protected.Get("/getProfile", HandleGetProfile(deps))
		protected.Post("/createProfile", HandleCreateProfile(deps))
		protected.Put("/updateProfile", HandleUpdateProfile(deps))
		protected.Post("/avatar/presign", HandlePresignAvatarURL(deps))
		protected.Get("/avatar", HandleAvatarDownloadURL(deps))
	})

	return r
}
