package http

import (
	"context"

	"github.com/go-reservation-api/internal/domain"
	jwtinfra "github.com/go-reservation-api/internal/infrastructure/jwt"
	"github.com/go-reservation-api/internal/infrastructure/sns"
	"github.com/go-reservation-api/internal/observability"
)

// CustomerRepository is the minimal interface the router requires from a customer store.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	MarkVerified(ctx context.Context, email, otp string) error
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}

// SessionStore is satisfied by both dynamo.SessionRepo and memory.SessionStore.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// ReservationRepository is the minimal interface the router requires from a reservation store.
type ReservationRepository interface {
	Put(ctx context.Context, r *domain.Reservation) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error)
}

type TokenProvider interface {
	Sign(c *domain.Customer) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type VerificationSender interface {
	SendRegisterVerification(to, otp string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CustomerRepo    CustomerRepository
	SessionStore    SessionStore
	ReservationRepo ReservationRepository
	Tokens          TokenProvider
	Verification    VerificationSender
	// Publisher is optional; nil disables reservation notifications.
	Publisher sns.Publisher
	Metrics   *observability.Metrics
}
