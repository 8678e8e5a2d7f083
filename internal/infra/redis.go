package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses the URL, connects and pings once. The same client
// serves the price cache and the worker job queues.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
