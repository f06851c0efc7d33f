/*
Package handler provides HTTP handler functions for the chat query surface:
fetching a room's message history and the caller's room list.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/resp"
)

// HandleViewMessages returns the full message history of a room. The caller
// must hold a membership for the room; anyone else gets an authorization
// error.
func HandleViewMessages(deps *ChatDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		roomID := chi.URLParam(r, "roomId")
		if roomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		messages, err := deps.Service.RoomMessages(r.Context(), roomID, identity.ID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, messages, "chat messages")
	}
}

// HandleGetUserRooms returns every membership of the authenticated caller.
func HandleGetUserRooms(deps *ChatDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		memberships, err := deps.Service.UserRooms(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, memberships, "user rooms")
	}
}
