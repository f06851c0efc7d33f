/*
Package resp provides helpers for constructing standardized HTTP JSON responses.

Every response is wrapped in a uniform envelope carrying the payload, a success
flag, and a client-friendly message.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
)

// Envelope is the uniform JSON response structure returned to clients.
type Envelope struct {
	// Data is the optional response payload.
	Data any `json:"data,omitempty"`

	// Success reports whether the request was handled successfully.
	Success bool `json:"success"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message,omitempty"`
}

// RespondJSON sets the Content-Type and writes the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful enveloped response with the given status.
func RespondSuccess(w http.ResponseWriter, r *http.Request, httpStatus int, data any, message string) {
	res := Envelope{
		Data:    data,
		Success: true,
		Message: message,
	}
	RespondJSON(w, r, httpStatus, res)
}

// RespondError sends an enveloped error response. Arbitrary errors are
// classified through errs.From before being written.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	customErr := errs.From(err)

	res := Envelope{
		Success: false,
		Message: customErr.Message,
	}
	RespondJSON(w, r, customErr.Status, res)
}
