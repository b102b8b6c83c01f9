// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error bodies are { "error": string, "details"?: any }. Success bodies are
// either the payload itself (reads) or { "success": true, "data": {...} }
// (mutations).

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type successBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successBody{Success: true, Data: data})
}

func SuccessCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, successBody{Success: true, Data: data})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, errorBody{
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "internal server error",
		Details: err.Error(),
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: message})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	writeJSON(w, http.StatusUnauthorized, errorBody{Error: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	writeJSON(w, http.StatusForbidden, errorBody{Error: message})
}

func NotFound(w http.ResponseWriter, resource string) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: resource + " not found"})
}

// InternalServerError echoes the upstream error in details for diagnostics.
func InternalServerError(w http.ResponseWriter, err error) {
	JSONError(w, UpstreamError(err))
}
