package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/rueidis"
)

// RedisStreamPublisher appends events to a Redis stream with XADD.
type RedisStreamPublisher struct {
	client rueidis.Client
	key    string
}

func NewRedisStreamPublisher(client rueidis.Client, streamKey string) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		key:    streamKey,
	}
}

func (r *RedisStreamPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cmd := r.client.B().Xadd().Key(r.key).Id("*").FieldValue().
		FieldValue("id", event.ID).
		FieldValue("type", string(event.Type)).
		FieldValue("task_id", strconv.FormatUint(uint64(event.TaskID), 10)).
		FieldValue("payload", string(payload)).
		Build()

	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStreamPublisher) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}
