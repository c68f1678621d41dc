// Package respond writes the service's JSON response envelope.
package respond

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func Success(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Status: "success", Message: message})
}

// Error reports a failure to the caller. Every handler-boundary failure maps
// to a 500-class response carrying the error text; there are no structured
// error codes on this API.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Status: "error", Message: message})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// JSON writes an arbitrary payload, for endpoints that return more than the
// status/message envelope.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
