package models

import (
	"time"
)

// ConnectionStatus is the state of a connection request
type ConnectionStatus string

const (
	ConnectionStatusIgnored    ConnectionStatus = "ignored"
	ConnectionStatusInterested ConnectionStatus = "interested"
	ConnectionStatusAccepted   ConnectionStatus = "accepted"
	ConnectionStatusRejected   ConnectionStatus = "rejected"
)

// SendableStatuses are the statuses a sender may set when creating a request.
// Accepted/rejected are reserved for the receiver's review.
var SendableStatuses = []ConnectionStatus{
	ConnectionStatusIgnored,
	ConnectionStatusInterested,
}

// IsSendable reports whether the status is valid on a newly created request
func (s ConnectionStatus) IsSendable() bool {
	for _, allowed := range SendableStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// ConnectionRequest represents a directed connection request between two users
type ConnectionRequest struct {
	ID         string           `json:"id" db:"id"`
	FromUserID string           `json:"from_user_id" db:"from_user_id"`
	ToUserID   string           `json:"to_user_id" db:"to_user_id"`
	Status     ConnectionStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}
