package application

import (
	"context"
	"time"
)

// StatusEvent is emitted after every operation that writes a record.
type StatusEvent struct {
	ApplicationID string     `json:"application_id"`
	UserID        string     `json:"user_id"`
	Status        Status     `json:"status"`
	RepaymentDate *time.Time `json:"repayment_date,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func EventFor(a *LoanApplication, at time.Time) StatusEvent {
	return StatusEvent{
		ApplicationID: a.ID,
		UserID:        a.UserID,
		Status:        a.Status,
		RepaymentDate: a.RepaymentDate,
		OccurredAt:    at,
	}
}

type Notifier interface {
	StatusChanged(ctx context.Context, e StatusEvent) error
}
