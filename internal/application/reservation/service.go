package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-reservation-api/internal/domain"
	"github.com/go-reservation-api/internal/pkg/id"
	"github.com/go-reservation-api/internal/pkg/validate"
)

const apiVersion = "1.0.0"

// Info is the metadata served at the reservation API root.
type Info struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Endpoints     map[string]string `json:"endpoints"`
	Documentation string            `json:"documentation"`
}

type Service interface {
	Info() Info
	Create(ctx context.Context, customerID, customerName string, in domain.ReservationInput) (*domain.Reservation, error)
	ListMine(ctx context.Context, customerID string) ([]domain.Reservation, error)
}

type reservationStore interface {
	Put(ctx context.Context, r *domain.Reservation) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error)
}

type publisher interface {
	Publish(ctx context.Context, subject, message string) error
}

type service struct {
	repo      reservationStore
	publisher publisher
	docsURL   string
	now       func() time.Time
}

type ServiceDeps struct {
	ReservationRepo reservationStore
	// Publisher is optional; nil disables staff notifications.
	Publisher publisher
	DocsURL   string
	Now       func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:      deps.ReservationRepo,
		publisher: deps.Publisher,
		docsURL:   deps.DocsURL,
		now:       deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Info() Info {
	return Info{
		Message: "Welcome to the restaurant reservation API!",
		Version: apiVersion,
		Endpoints: map[string]string{
			"createReservation": "/create [POST]",
			"myReservations":    "/mine [GET]",
		},
		Documentation: s.docsURL,
	}
}

func (s *service) Create(ctx context.Context, customerID, customerName string, in domain.ReservationInput) (*domain.Reservation, error) {
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	// Both fields already passed the datetime validator.
	day, _ := time.Parse("2006-01-02", in.Date)
	if day.Before(now.Truncate(24 * time.Hour)) {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "date", Message: "date cannot be in the past"},
		}}
	}

	res := &domain.Reservation{
		ReservationID: id.New(),
		CustomerID:    customerID,
		CustomerName:  customerName,
		Date:          in.Date,
		Time:          in.Time,
		Guests:        in.Guests,
		Phone:         in.Phone,
		Notes:         in.Notes,
		Status:        domain.ReservationPending,
		CreatedAt:     now,
	}
	if err := s.repo.Put(ctx, res); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}

	if s.publisher != nil {
		msg := fmt.Sprintf("%s booked a table for %d on %s at %s (reservation %s)",
			res.CustomerName, res.Guests, res.Date, res.Time, res.ReservationID)
		if err := s.publisher.Publish(ctx, "New reservation", msg); err != nil {
			slog.Warn("reservation notification not published", "reservation_id", res.ReservationID, "err", err)
		}
	}
	return res, nil
}

func (s *service) ListMine(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
