package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-reservation-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidationEnvelope lists every field that failed validation.
type ValidationEnvelope struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details"`
}

// LoginEnvelope wraps a successful login.
type LoginEnvelope struct {
	Message string                `json:"message"`
	Token   string                `json:"token"`
	Role    string                `json:"role"`
	User    domain.PublicCustomer `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// httpError maps domain errors onto status codes and client-safe messages.
// Anything unrecognised is logged and reported as a generic 500.
func httpError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ValidationEnvelope{Error: "validation failed", Details: ve.Fields})
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email is already registered")
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "Invalid request or already verified")
	case errors.Is(err, domain.ErrInvalidOTP):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, domain.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, "OTP expired. Please register again.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnverifiedAccount):
		writeError(w, http.StatusForbidden, "Account not verified. Please verify your email.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
