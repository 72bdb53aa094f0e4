package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the go-redis client backing the respaldo job queue. The
// connection is verified with a bounded ping so a bad REDIS_URL fails at
// startup instead of on the first enqueue.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
