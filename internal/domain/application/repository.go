package application

import "context"

type Repository interface {
	// Current record per user; ErrNotFound when the user never applied.
	GetCurrent(ctx context.Context, userID string) (*LoanApplication, error)
	PutCurrent(ctx context.Context, userID string, a *LoanApplication) error

	// Collection of every record written, replaced in place by id.
	ListAll(ctx context.Context) ([]LoanApplication, error)
	UpsertAll(ctx context.Context, a *LoanApplication) error
	GetByID(ctx context.Context, applicationID string) (*LoanApplication, error)
}
