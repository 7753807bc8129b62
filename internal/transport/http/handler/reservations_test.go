package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-reservation-api/internal/application/reservation"
	"github.com/go-reservation-api/internal/domain"
	jwtinfra "github.com/go-reservation-api/internal/infrastructure/jwt"
	"github.com/go-reservation-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func withSession(r *http.Request) *http.Request {
	sess := &domain.Session{SessionID: "sess-1", CustomerID: "c1", Name: "Ana"}
	claims := &jwtinfra.Claims{Name: "Ana", Role: domain.RoleCustomer}
	claims.Subject = "c1"
	return r.WithContext(middleware.WithSession(context.Background(), sess, claims))
}

func TestReservationInfo(t *testing.T) {
	svc := &mockReservationSvc{}
	svc.On("Info").Return(reservation.Info{Message: "Welcome to the restaurant reservation API!", Version: "1.0.0"})
	h := NewReservationHandler(svc, newRecorder())

	rr := httptest.NewRecorder()
	h.Info(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome to the restaurant reservation API!")
}

func TestReservationCreate(t *testing.T) {
	svc := &mockReservationSvc{}
	in := domain.ReservationInput{Date: "2030-01-02", Time: "19:30", Guests: 2}
	svc.On("Create", mock.Anything, "c1", "Ana", in).Return(&domain.Reservation{
		ReservationID: "r1", CustomerID: "c1", Status: domain.ReservationPending,
	}, nil)
	rec := newRecorder()
	h := NewReservationHandler(svc, rec)

	rr := httptest.NewRecorder()
	h.Create(rr, withSession(post(`{"date":"2030-01-02","time":"19:30","guests":2}`)))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got domain.Reservation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "r1", got.ReservationID)
	assert.Equal(t, 1, rec.reservations)
}

func TestReservationCreate_NoSession(t *testing.T) {
	h := NewReservationHandler(&mockReservationSvc{}, newRecorder())
	rr := httptest.NewRecorder()
	h.Create(rr, post(`{}`))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestReservationCreate_Validation(t *testing.T) {
	svc := &mockReservationSvc{}
	svc.On("Create", mock.Anything, "c1", "Ana", mock.Anything).Return(nil, &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "guests", Message: "guests must be at least 1"},
	}})
	rec := newRecorder()
	h := NewReservationHandler(svc, rec)

	rr := httptest.NewRecorder()
	h.Create(rr, withSession(post(`{"date":"2030-01-02","time":"19:30","guests":0}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"field":"guests"`)
	assert.Zero(t, rec.reservations)
}

func TestReservationMine(t *testing.T) {
	svc := &mockReservationSvc{}
	svc.On("ListMine", mock.Anything, "c1").Return([]domain.Reservation{{ReservationID: "r1"}, {ReservationID: "r2"}}, nil)
	h := NewReservationHandler(svc, newRecorder())

	rr := httptest.NewRecorder()
	h.Mine(rr, withSession(httptest.NewRequest(http.MethodGet, "/mine", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []domain.Reservation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestReservationMine_StoreFailure(t *testing.T) {
	svc := &mockReservationSvc{}
	svc.On("ListMine", mock.Anything, "c1").Return(nil, errors.New("throttled"))
	h := NewReservationHandler(svc, newRecorder())

	rr := httptest.NewRecorder()
	h.Mine(rr, withSession(httptest.NewRequest(http.MethodGet, "/mine", nil)))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
}
