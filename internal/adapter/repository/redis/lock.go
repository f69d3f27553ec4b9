package redis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if we still own it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

const lockRetryInterval = 25 * time.Millisecond

type locker struct {
	rdb  *goredis.Client
	ttl  time.Duration
	wait time.Duration
}

// acquire takes key with SET NX PX, polling until wait elapses or ctx ends.
func (l *locker) acquire(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return func() {
				// ctx may already be cancelled; release on a fresh one
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := releaseScript.Run(rctx, l.rdb, []string{key}, token).Err(); err != nil {
					log.Printf("redis lock %s: release failed: %v", key, err)
				}
			}, true, nil
		}
		if time.Now().After(deadline) {
			return nil, false, nil
		}
		select {
		case <-ctx.Done():
			return nil, false, nil
		case <-time.After(lockRetryInterval):
		}
	}
}
