package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const roomChannelPrefix = "draft:room:"

func roomChannel(room string) string {
	return roomChannelPrefix + room
}

// Redis fans invalidations out over pub/sub so multiple server processes can
// mirror the same rooms.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(addr string, log *zap.Logger) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		log:    log,
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping verifies the connection at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Publish(ctx context.Context, room string) error {
	return r.client.Publish(ctx, roomChannel(room), "").Err()
}

func (r *Redis) Subscribe(ctx context.Context, room string, fn func()) (func(), error) {
	sub := r.client.Subscribe(ctx, roomChannel(room))
	// Force the SUBSCRIBE round-trip so a failed connection surfaces here,
	// not silently in the receive loop.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	go func() {
		for range sub.Channel() {
			fn()
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			r.log.Warn("notify: closing subscription", zap.String("room", room), zap.Error(err))
		}
	}, nil
}
