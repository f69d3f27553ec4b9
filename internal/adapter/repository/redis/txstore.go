package redis

import (
	"context"

	"loan-application-backend/internal/domain/kv"

	goredis "github.com/redis/go-redis/v9"
)

type op struct {
	key   string
	value []byte
	del   bool
}

// txStore buffers writes and reads its own writes; commit flushes them in a
// single MULTI/EXEC so no partial record is ever observable.
type txStore struct {
	base    kv.Store
	ops     []op
	pending map[string]op
}

func newTxStore(base kv.Store) *txStore {
	return &txStore{base: base, pending: map[string]op{}}
}

func (t *txStore) Get(ctx context.Context, key string) ([]byte, error) {
	if o, ok := t.pending[key]; ok {
		if o.del {
			return nil, kv.ErrNotFound
		}
		return append([]byte(nil), o.value...), nil
	}
	return t.base.Get(ctx, key)
}

func (t *txStore) Set(_ context.Context, key string, value []byte) error {
	o := op{key: key, value: append([]byte(nil), value...)}
	t.ops = append(t.ops, o)
	t.pending[key] = o
	return nil
}

func (t *txStore) Remove(_ context.Context, key string) error {
	o := op{key: key, del: true}
	t.ops = append(t.ops, o)
	t.pending[key] = o
	return nil
}

func (t *txStore) commit(ctx context.Context, rdb *goredis.Client) error {
	if len(t.ops) == 0 {
		return nil
	}
	_, err := rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for _, o := range t.ops {
			if o.del {
				p.Del(ctx, o.key)
				continue
			}
			p.Set(ctx, o.key, o.value, 0)
		}
		return nil
	})
	return err
}
