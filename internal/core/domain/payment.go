package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the lifecycle state of a payment request.
// "none" is a virtual state: it is never persisted, the absence of a record
// means no active request exists for that worker.
type PaymentStatus string

const (
	StatusNone     PaymentStatus = "none"
	StatusPending  PaymentStatus = "pending"
	StatusApproved PaymentStatus = "approved"
)

// validTransitions defines the allowed state machine transitions.
// A reset (approved → none) removes the record; there is no direct
// approved → pending or none → approved transition.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	StatusNone:     {StatusPending},
	StatusPending:  {StatusApproved},
	StatusApproved: {StatusNone},
}

var ErrInvalidTransition = errors.New("invalid payment status transition")
var ErrRequestNotFound = errors.New("no payment request found")
var ErrRequestExists = errors.New("payment request already active")
var ErrInvalidAmount = errors.New("payment amount must be positive")
var ErrAmountMismatch = errors.New("credits and payment do not match the activity count")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentRequest is a worker-initiated record asking the admin to pay out the
// accrued payment due. At most one logically active request exists per
// username at a time.
type PaymentRequest struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Username  string        `json:"username" bson:"username"`
	Count     int           `json:"count" bson:"count"`
	Credits   int           `json:"credits" bson:"credits"`
	Payment   int           `json:"payment" bson:"payment"`
	Status    PaymentStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}
