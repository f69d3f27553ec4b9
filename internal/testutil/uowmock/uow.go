package uowmock

import (
	"context"
	"errors"

	"loan-application-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinUserTxFn func(ctx context.Context, userID string, fn func(r uow.Repos) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every unit of work directly against repos, without
// isolation. Handy when a test only cares about usecase logic.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinUserTxFn: func(ctx context.Context, _ string, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
	}
}

func (m *UoW) WithWithinUserTx(fn func(context.Context, string, func(uow.Repos) error) error) *UoW {
	m.WithinUserTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinUserTx(ctx context.Context, userID string, fn func(r uow.Repos) error) error {
	if m.WithinUserTxFn != nil {
		return m.WithinUserTxFn(ctx, userID, fn)
	}
	return errUnimplemented
}
