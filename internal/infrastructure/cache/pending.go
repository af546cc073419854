package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	PendingCountKey = "talep:pending-count"
	// PendingGenKey is bumped on every invalidation. A count read from the
	// database is only stored if the generation has not moved since.
	PendingGenKey = "talep:pending-count:gen"

	defaultPendingTTL = time.Minute
)

// storeIfCurrent sets the count only while the generation still matches the
// one seen before the database read.
var storeIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// PendingCountCache keeps the pending-request badge count in Redis.
// Redis errors are logged and treated as misses; the database stays the source of truth.
type PendingCountCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

// NewPendingCountCache falls back to a one minute ttl when ttl is not positive,
// so an entry never outlives its invalidation window.
func NewPendingCountCache(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *PendingCountCache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if ttl <= 0 {
		ttl = defaultPendingTTL
	}
	return &PendingCountCache{rdb: rdb, ttl: ttl, log: log}
}

// Load returns the cached count and the current generation. On a miss the
// generation is still returned, to be handed back to Store.
func (c *PendingCountCache) Load(ctx context.Context) (int64, string, bool) {
	vals, err := c.rdb.MGet(ctx, PendingCountKey, PendingGenKey).Result()
	if err != nil {
		c.log.WithError(err).Warn("pending count cache read failed")
		return 0, "", false
	}
	gen := "0"
	if s, ok := vals[1].(string); ok {
		gen = s
	}
	s, ok := vals[0].(string)
	if !ok {
		return 0, gen, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, gen, false
	}
	return n, gen, true
}

// Store writes n unless an Invalidate ran after the Load that produced gen.
func (c *PendingCountCache) Store(ctx context.Context, n int64, gen string) {
	if gen == "" {
		return
	}
	err := storeIfCurrent.Run(ctx, c.rdb, []string{PendingCountKey, PendingGenKey}, gen, n, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.WithError(err).Warn("pending count cache write failed")
	}
}

func (c *PendingCountCache) Invalidate(ctx context.Context) {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, PendingGenKey)
		p.Del(ctx, PendingCountKey)
		return nil
	})
	if err != nil {
		c.log.WithError(err).Warn("pending count cache invalidate failed")
	}
}
