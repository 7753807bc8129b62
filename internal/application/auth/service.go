package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-reservation-api/internal/domain"
	"github.com/go-reservation-api/internal/pkg/id"
	"github.com/go-reservation-api/internal/pkg/otp"
	pkgtoken "github.com/go-reservation-api/internal/pkg/token"
	"github.com/go-reservation-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultOTPTTL     = 5 * time.Minute
	defaultSessionTTL = 24 * time.Hour
)

// LoginResult carries both credential carriers issued by Login.
type LoginResult struct {
	Token    string
	Role     string
	Session  *domain.Session
	Customer *domain.Customer
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) error
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	Logout(ctx context.Context, sessionID string) error
}

type customerStore interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	MarkVerified(ctx context.Context, email, otp string) error
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}

// SessionStore is the server-side session capability. Both the DynamoDB and
// in-memory stores satisfy it.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

type tokenSigner interface {
	Sign(c *domain.Customer) (string, error)
}

type verificationSender interface {
	SendRegisterVerification(to, otp string) error
}

type service struct {
	customers  customerStore
	sessions   SessionStore
	tokens     tokenSigner
	notifier   verificationSender
	otpTTL     time.Duration
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

type ServiceDeps struct {
	CustomerRepo customerStore
	SessionStore SessionStore
	TokenSigner  tokenSigner
	Notifier     verificationSender
	OTPTTL       time.Duration
	SessionTTL   time.Duration
	BcryptCost   int
	// Now defaults to time.Now; tests pin it to exercise expiry.
	Now func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		customers:  deps.CustomerRepo,
		sessions:   deps.SessionStore,
		tokens:     deps.TokenSigner,
		notifier:   deps.Notifier,
		otpTTL:     deps.OTPTTL,
		sessionTTL: deps.SessionTTL,
		bcryptCost: deps.BcryptCost,
		now:        deps.Now,
	}
	if s.otpTTL <= 0 {
		s.otpTTL = defaultOTPTTL
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = defaultSessionTTL
	}
	if s.bcryptCost < bcrypt.MinCost || s.bcryptCost > bcrypt.MaxCost {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := validate.Struct(&req); err != nil {
		return err
	}
	if _, err := s.customers.GetByEmail(ctx, req.Email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup customer: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	expiry := now.Add(s.otpTTL)
	c := &domain.Customer{
		CustomerID:   id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsVerified:   false,
		OTP:          &code,
		OTPExpiry:    &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The conditional insert closes the race between the lookup above and this write.
	if err := s.customers.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create customer: %w", err)
	}

	if err := s.notifier.SendRegisterVerification(c.Email, code); err != nil {
		// The record stays; the customer has to register again once the code expires.
		slog.Error("verification email not sent; customer record kept", "customer_id", c.CustomerID, "err", err)
		return fmt.Errorf("send verification: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) error {
	if err := validate.Struct(&req); err != nil {
		return err
	}
	c, err := s.customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidRequest
		}
		return fmt.Errorf("lookup customer: %w", err)
	}
	if c.IsVerified || c.OTP == nil {
		return domain.ErrInvalidRequest
	}
	if subtle.ConstantTimeCompare([]byte(*c.OTP), []byte(req.OTP)) != 1 {
		return domain.ErrInvalidOTP
	}
	if c.OTPExpired(s.now()) {
		return domain.ErrOTPExpired
	}
	if err := s.customers.MarkVerified(ctx, c.Email, req.OTP); err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return domain.ErrInvalidRequest
		}
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}
	c, err := s.customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	// Checked before the password so the answer does not depend on it.
	if !c.IsVerified {
		return nil, domain.ErrUnverifiedAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Sign(c)
	if err != nil {
		return nil, err
	}
	sid, err := pkgtoken.NewSessionID()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sess := &domain.Session{
		SessionID:  sid,
		CustomerID: c.CustomerID,
		Name:       c.Name,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL).Unix(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &LoginResult{Token: signed, Role: domain.RoleCustomer, Session: sess, Customer: c}, nil
}

// ResetPassword overwrites the hash for any existing email. It does not
// revoke sessions or tokens already issued to the customer.
func (s *service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if err := validate.Struct(&req); err != nil {
		return err
	}
	if _, err := s.customers.GetByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("lookup customer: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.customers.UpdatePasswordHash(ctx, req.Email, string(hash)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Logout destroys the server-side session. An empty id means there is no
// session to destroy and succeeds.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLogout, err)
	}
	return nil
}
