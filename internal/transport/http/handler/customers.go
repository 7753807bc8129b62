package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-reservation-api/internal/application/auth"
	"github.com/go-reservation-api/internal/domain"
	"github.com/go-reservation-api/internal/transport/http/middleware"
)

// Operation labels reported to AuthRecorder.
const (
	opRegister      = "register"
	opVerifyOTP     = "verify_otp"
	opLogin         = "login"
	opResetPassword = "reset_password"
	opLogout        = "logout"
)

type AuthRecorder interface {
	AuthOperation(operation string, err error)
}

// CookieConfig controls the two cookies set at login.
type CookieConfig struct {
	SessionName string
	Secure      bool
	MaxAge      time.Duration
}

// CustomerHandler handles the customer auth endpoints.
type CustomerHandler struct {
	svc     auth.Service
	metrics AuthRecorder
	cookies CookieConfig
}

func NewCustomerHandler(svc auth.Service, metrics AuthRecorder, cookies CookieConfig) *CustomerHandler {
	return &CustomerHandler{svc: svc, metrics: metrics, cookies: cookies}
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.svc.Register(r.Context(), req)
	h.metrics.AuthOperation(opRegister, err)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "OTP sent to your email. Verify to complete registration."})
}

func (h *CustomerHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.svc.VerifyOTP(r.Context(), req)
	h.metrics.AuthOperation(opVerifyOTP, err)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Registration successful!"})
}

func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	h.metrics.AuthOperation(opLogin, err)
	if err != nil {
		httpError(w, err)
		return
	}
	h.setCookie(w, h.cookies.SessionName, res.Session.SessionID, int(h.cookies.MaxAge.Seconds()))
	h.setCookie(w, middleware.AuthCookieName, res.Token, int(h.cookies.MaxAge.Seconds()))
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Message: "Login successful",
		Token:   res.Token,
		Role:    res.Role,
		User:    res.Customer.Public(),
	})
}

func (h *CustomerHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.svc.ResetPassword(r.Context(), req)
	h.metrics.AuthOperation(opResetPassword, err)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Password reset successful"})
}

// Logout answers in plain text. A request without a session cookie still
// succeeds.
func (h *CustomerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var sid string
	if c, err := r.Cookie(h.cookies.SessionName); err == nil {
		sid = c.Value
	}
	err := h.svc.Logout(r.Context(), sid)
	h.metrics.AuthOperation(opLogout, err)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Failed to log out.")
		return
	}
	h.setCookie(w, h.cookies.SessionName, "", -1)
	h.setCookie(w, middleware.AuthCookieName, "", -1)
	writeText(w, http.StatusOK, "Logged out successfully!")
}

func (h *CustomerHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
