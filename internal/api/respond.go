package api

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in handler response bodies. The enforcement
// middleware owns the UNAUTHORIZED and PERMISSION_DENIED codes.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteSuccess writes {"success":true,...} with the given status.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope with a message and no data.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, successEnvelope{Success: true, Message: message})
}

// WriteError writes {"success":false,"error":...,"code":...}. The message
// is user-facing; internal diagnostics belong in logs, not here.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
