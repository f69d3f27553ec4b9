package notify

import (
	"context"
	"encoding/json"

	"loan-application-backend/internal/domain/application"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "loan:status"

// Publisher fans status events out over redis pub/sub. Subscribers (push
// gateway, repayment reminder scheduler) live outside this service.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

var _ application.Notifier = (*Publisher)(nil)

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) StatusChanged(ctx context.Context, e application.StatusEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}
