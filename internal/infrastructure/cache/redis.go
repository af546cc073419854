package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// OpenRedis connects and pings. The client backs the idempotency store and
// the pending request counter.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	logrus.WithFields(logrus.Fields{"addr": addr, "db": db}).Info("redis: connected")
	return r, nil
}
