package notify

import (
	"context"
	"log"

	"loan-application-backend/internal/domain/application"
)

// LogNotifier is used when no broker is configured.
type LogNotifier struct{}

var _ application.Notifier = LogNotifier{}

func (LogNotifier) StatusChanged(_ context.Context, e application.StatusEvent) error {
	if e.RepaymentDate != nil {
		log.Printf("notify: application %s for user %s is %s, repayment due %s",
			e.ApplicationID, e.UserID, e.Status, e.RepaymentDate.Format("2006-01-02"))
		return nil
	}
	log.Printf("notify: application %s for user %s is %s", e.ApplicationID, e.UserID, e.Status)
	return nil
}
