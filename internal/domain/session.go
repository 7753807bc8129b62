package domain

import "time"

// Session is the server-side state behind the session cookie.
// It carries only the minimal {id, name} projection of the customer.
type Session struct {
	SessionID  string    `json:"id" dynamodbav:"session_id"`
	CustomerID string    `json:"customer_id" dynamodbav:"customer_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt  int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.Unix()
}
