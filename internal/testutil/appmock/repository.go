package appmock

import (
	"context"

	domain "loan-application-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset read methods report ErrNotFound; unset writes succeed.
type Repo struct {
	GetCurrentFn func(ctx context.Context, userID string) (*domain.LoanApplication, error)
	PutCurrentFn func(ctx context.Context, userID string, a *domain.LoanApplication) error
	ListAllFn    func(ctx context.Context) ([]domain.LoanApplication, error)
	UpsertAllFn  func(ctx context.Context, a *domain.LoanApplication) error
	GetByIDFn    func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
}

func (m *Repo) GetCurrent(ctx context.Context, userID string) (*domain.LoanApplication, error) {
	if m.GetCurrentFn != nil {
		return m.GetCurrentFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) PutCurrent(ctx context.Context, userID string, a *domain.LoanApplication) error {
	if m.PutCurrentFn != nil {
		return m.PutCurrentFn(ctx, userID, a)
	}
	return nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.LoanApplication, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpsertAll(ctx context.Context, a *domain.LoanApplication) error {
	if m.UpsertAllFn != nil {
		return m.UpsertAllFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}
