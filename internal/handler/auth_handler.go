/*
Package handler provides HTTP handler functions for user registration and login.
*/
package handler

import (
	"net/http"

	"youapp/internal/pkg/req"
	"youapp/internal/pkg/resp"
)

type RegisterInput struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// HandleRegister creates a new account and returns a signed identity token.
func HandleRegister(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		token, err := deps.Service.Register(r.Context(), input.Email, input.UserName, input.Password)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusCreated, map[string]any{
			"token": token,
		}, "user registered")
	}
}

type LoginInput struct {
	Email    string `json:"email,omitempty"`
	UserName string `json:"userName,omitempty"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials (by email or user name) and returns a
// signed identity token.
func HandleLogin(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		token, err := deps.Service.Login(r.Context(), input.Email, input.UserName, input.Password)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, map[string]any{
			"token": token,
		}, "user logged in")
	}
}
