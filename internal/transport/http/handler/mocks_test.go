package handler

import (
	"context"

	"github.com/go-reservation-api/internal/application/auth"
	"github.com/go-reservation-api/internal/application/reservation"
	"github.com/go-reservation-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*auth.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockReservationSvc struct{ mock.Mock }

func (m *mockReservationSvc) Info() reservation.Info {
	return m.Called().Get(0).(reservation.Info)
}

func (m *mockReservationSvc) Create(ctx context.Context, customerID, customerName string, in domain.ReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, customerID, customerName, in)
	if res, _ := args.Get(0).(*domain.Reservation); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationSvc) ListMine(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, customerID)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

type recorder struct {
	ops          map[string][]error
	reservations int
}

func newRecorder() *recorder { return &recorder{ops: map[string][]error{}} }

func (r *recorder) AuthOperation(op string, err error) { r.ops[op] = append(r.ops[op], err) }
func (r *recorder) ReservationCreated() { r.reservations++ }
