package review

import domain "loan-application-backend/internal/domain/application"

type DecideInput struct {
	ApplicationID string          `json:"application_id"`
	Decision      domain.Decision `json:"decision"`
}
