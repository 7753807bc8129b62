package domain

import "time"

// RoleCustomer is the only role issued by the customer auth flow.
const RoleCustomer = "customer"

// Customer is a registered restaurant customer. Email is the store's primary key,
// so uniqueness is enforced on write rather than by a prior lookup.
// OTP and OTPExpiry are either both set (unverified) or both nil (verified).
type Customer struct {
	CustomerID   string     `json:"id" dynamodbav:"customer_id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool       `json:"is_verified" dynamodbav:"is_verified"`
	OTP          *string    `json:"-" dynamodbav:"otp,omitempty"`
	OTPExpiry    *time.Time `json:"-" dynamodbav:"otp_expiry,omitempty"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// OTPExpired reports whether the pending code is past its expiry at now.
// A customer without a pending code is treated as expired.
func (c *Customer) OTPExpired(now time.Time) bool {
	return c.OTPExpiry == nil || now.After(*c.OTPExpiry)
}

// PublicCustomer is the projection safe to return to clients.
type PublicCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Customer) Public() PublicCustomer {
	return PublicCustomer{ID: c.CustomerID, Name: c.Name, Email: c.Email}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
