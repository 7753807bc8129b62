package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the {"error": msg} body the handlers also use.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}

// unauthorized rejects a request that lacks a usable session or token.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="reservations"`)
	writeJSONError(w, http.StatusUnauthorized, msg)
}
