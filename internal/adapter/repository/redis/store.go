package redis

import (
	"context"
	"errors"

	"loan-application-backend/internal/domain/kv"

	goredis "github.com/redis/go-redis/v9"
)

type Store struct{ rdb *goredis.Client }

var _ kv.Store = (*Store)(nil)

func NewStore(rdb *goredis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	}
	return b, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
