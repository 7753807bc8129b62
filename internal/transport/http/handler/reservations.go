package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-reservation-api/internal/application/reservation"
	"github.com/go-reservation-api/internal/domain"
	"github.com/go-reservation-api/internal/transport/http/middleware"
)

type ReservationRecorder interface {
	ReservationCreated()
}

// ReservationHandler serves the reservation API. Create and Mine expect
// middleware.RequireSession in front of them.
type ReservationHandler struct {
	svc     reservation.Service
	metrics ReservationRecorder
}

func NewReservationHandler(svc reservation.Service, metrics ReservationRecorder) *ReservationHandler {
	return &ReservationHandler{svc: svc, metrics: metrics}
}

func (h *ReservationHandler) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Info())
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in domain.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Create(r.Context(), sess.CustomerID, sess.Name, in)
	if err != nil {
		httpError(w, err)
		return
	}
	h.metrics.ReservationCreated()
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	list, err := h.svc.ListMine(r.Context(), sess.CustomerID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
