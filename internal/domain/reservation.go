package domain

import "time"

// ReservationPending is the status of every newly created reservation;
// staff confirm bookings outside this API.
const ReservationPending = "pending"

type Reservation struct {
	ReservationID string    `json:"id" dynamodbav:"reservation_id"`
	CustomerID    string    `json:"customer_id" dynamodbav:"customer_id"`
	CustomerName  string    `json:"customer_name" dynamodbav:"customer_name"`
	Date          string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Time          string    `json:"time" dynamodbav:"time"` // HH:MM
	Guests        int       `json:"guests" dynamodbav:"guests"`
	Phone         *string   `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Notes         string    `json:"notes,omitempty" dynamodbav:"notes"`
	Status        string    `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
}

type ReservationInput struct {
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string  `json:"time" validate:"required,datetime=15:04"`
	Guests int     `json:"guests" validate:"required,min=1,max=20"`
	Phone  *string `json:"phone" validate:"omitempty,e164"`
	Notes  string  `json:"notes" validate:"max=500"`
}
