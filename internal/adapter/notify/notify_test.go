package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"loan-application-backend/internal/domain/application"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestPublisher_PublishesJSONEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, DefaultChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil { // subscription confirmation
		t.Fatalf("subscribe: %v", err)
	}

	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := application.StatusEvent{ApplicationID: "a1", UserID: "u1", Status: application.StatusApproved, RepaymentDate: &due, OccurredAt: time.Now().UTC()}
	if err := NewPublisher(rdb, "").StatusChanged(ctx, ev); err != nil {
		t.Fatalf("StatusChanged: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got application.StatusEvent
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if got.ApplicationID != "a1" || got.Status != application.StatusApproved || !got.RepaymentDate.Equal(due) {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := LogNotifier{}
	if err := n.StatusChanged(context.Background(), application.StatusEvent{ApplicationID: "a", Status: application.StatusRejected}); err != nil {
		t.Fatal(err)
	}
}
