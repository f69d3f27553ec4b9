package uow

import (
	"context"
	"errors"

	"loan-application-backend/internal/domain/application"
)

var ErrLockTimeout = errors.New("uow: timed out waiting for lock")

// Repos are bound to the running unit of work; writes through them become
// visible together when fn returns nil and are discarded otherwise.
type Repos struct {
	Applications application.Repository
}

type UnitOfWork interface {
	// holds the user's lock, then the collection lock, for the whole
	// read-modify-write
	WithinUserTx(ctx context.Context, userID string, fn func(r Repos) error) error
}
