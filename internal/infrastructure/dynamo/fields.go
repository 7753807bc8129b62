package dynamo

// DynamoDB attribute names used in key, condition and update expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail         = "email"
	fieldCustomerID    = "customer_id"
	fieldPasswordHash  = "password_hash"
	fieldIsVerified    = "is_verified"
	fieldOTP           = "otp"
	fieldOTPExpiry     = "otp_expiry"
	fieldUpdatedAt     = "updated_at"
	fieldCreatedAt     = "created_at"
	fieldSessionID     = "session_id"
	fieldExpiresAt     = "expires_at"
	fieldReservationID = "reservation_id"
)

// Index names created by Bootstrap.
const (
	indexCustomerCreatedAt = "customer_id-created_at-index"
)

// sortableTimeLayout has a fixed width, so stored timestamps used as sort keys
// order lexicographically. RFC3339Nano trims trailing zeros and does not.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
