package sqlstore

import (
	"context"
	"fmt"
	"time"

	"loan-application-backend/internal/adapter/repository/kvstore"
	"loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/uow"

	"gorm.io/gorm"
)

const collectionLockKey = "lock:allApplications"

func userLockKey(userID string) string { return "lock:user:" + userID }

// GormUoW serializes writers inside this process, then again across
// processes with row locks, and commits every write of a unit of work in one
// db transaction.
type GormUoW struct {
	store          *Store
	maxRecordBytes int
	lockWait       time.Duration
	locks          *keyedMutex
}

var _ uow.UnitOfWork = (*GormUoW)(nil)

// NewGormUoW bounds the in-process lock queue by lockWait; zero means the
// request context is the only bound.
func NewGormUoW(db *gorm.DB, maxRecordBytes int, lockWait time.Duration) *GormUoW {
	return &GormUoW{
		store:          NewStore(db),
		maxRecordBytes: maxRecordBytes,
		lockWait:       lockWait,
		locks:          newKeyedMutex(),
	}
}

func (u *GormUoW) WithinUserTx(ctx context.Context, userID string, fn func(r uow.Repos) error) error {
	// user first, collection second: every caller takes them in this order
	return u.run(ctx, []string{userLockKey(userID), collectionLockKey}, fn)
}

func (u *GormUoW) run(ctx context.Context, keys []string, fn func(r uow.Repos) error) error {
	lockCtx, cancel := ctx, context.CancelFunc(func() {})
	if u.lockWait > 0 {
		lockCtx, cancel = context.WithTimeout(ctx, u.lockWait)
	}
	for _, k := range keys {
		unlock, err := u.locks.Lock(lockCtx, k)
		if err != nil {
			cancel()
			return fmt.Errorf("%w: lock %s: %w", application.ErrStorageUnavailable, k, uow.ErrLockTimeout)
		}
		defer unlock()
	}
	cancel()

	return u.store.Tx(ctx, func(tx *Store) error {
		for _, k := range keys {
			if err := lockRow(ctx, tx.db, k); err != nil {
				return fmt.Errorf("%w: row lock %s: %w", application.ErrStorageUnavailable, k, err)
			}
		}
		return fn(uow.Repos{
			Applications: kvstore.NewApplicationRepository(tx, u.maxRecordBytes),
		})
	})
}
