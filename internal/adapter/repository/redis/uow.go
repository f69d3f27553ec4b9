package redis

import (
	"context"
	"fmt"
	"time"

	"loan-application-backend/internal/adapter/repository/kvstore"
	"loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/uow"

	goredis "github.com/redis/go-redis/v9"
)

const collectionLockKey = "lock:allApplications"

func userLockKey(userID string) string { return "lock:user:" + userID }

// RedisUoW guards read-modify-write with redis locks shared by every
// instance, and commits buffered writes with MULTI/EXEC.
type RedisUoW struct {
	rdb            *goredis.Client
	store          *Store
	maxRecordBytes int
	locks          *locker
}

var _ uow.UnitOfWork = (*RedisUoW)(nil)

func NewRedisUoW(rdb *goredis.Client, maxRecordBytes int, lockTTL, lockWait time.Duration) *RedisUoW {
	return &RedisUoW{
		rdb:            rdb,
		store:          NewStore(rdb),
		maxRecordBytes: maxRecordBytes,
		locks:          &locker{rdb: rdb, ttl: lockTTL, wait: lockWait},
	}
}

func (u *RedisUoW) WithinUserTx(ctx context.Context, userID string, fn func(r uow.Repos) error) error {
	return u.run(ctx, []string{userLockKey(userID), collectionLockKey}, fn)
}

func (u *RedisUoW) run(ctx context.Context, keys []string, fn func(r uow.Repos) error) error {
	for _, k := range keys {
		release, ok, err := u.locks.acquire(ctx, k)
		if err != nil {
			return fmt.Errorf("%w: lock %s: %w", application.ErrStorageUnavailable, k, err)
		}
		if !ok {
			return fmt.Errorf("%w: lock %s: %w", application.ErrStorageUnavailable, k, uow.ErrLockTimeout)
		}
		defer release()
	}

	tx := newTxStore(u.store)
	if err := fn(uow.Repos{Applications: kvstore.NewApplicationRepository(tx, u.maxRecordBytes)}); err != nil {
		return err
	}
	if err := tx.commit(ctx, u.rdb); err != nil {
		return fmt.Errorf("%w: commit: %w", application.ErrStorageUnavailable, err)
	}
	return nil
}
