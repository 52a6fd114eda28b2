// Package cache keeps list query results in Redis between writes
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/kanban/internal/models"
)

const keyPrefix = "kanban:tasks:"

// allKey holds the full board listing
const allKey = keyPrefix + "all"

// generationKey is bumped by every invalidation
const generationKey = keyPrefix + "generation"

// Generation is the invalidation counter a lookup observed. A list read from
// the store after a miss is only cached if the counter has not moved since,
// so a fill racing a write can never resurrect a pre-write listing.
type Generation int64

// NoGeneration makes the following store a no-op
const NoGeneration Generation = -1

// ListCache stores ordered task lists. Implementations never fail a read:
// any problem is reported as a miss.
type ListCache interface {
	Board(ctx context.Context) ([]*models.Task, Generation, bool)
	StoreBoard(ctx context.Context, gen Generation, tasks []*models.Task)
	Column(ctx context.Context, status models.Status) ([]*models.Task, Generation, bool)
	StoreColumn(ctx context.Context, gen Generation, status models.Status, tasks []*models.Task)
	Invalidate(ctx context.Context)
}

// storeIfCurrent sets KEYS[2] only while KEYS[1] still holds ARGV[1]
var storeIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Redis is a ListCache backed by a Redis client
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis creates a cache with the given TTL. A zero TTL disables writes.
func NewRedis(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

// Connect parses a redis:// URL and checks the server is reachable
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *Redis) Board(ctx context.Context) ([]*models.Task, Generation, bool) {
	return c.load(ctx, allKey)
}

func (c *Redis) StoreBoard(ctx context.Context, gen Generation, tasks []*models.Task) {
	c.store(ctx, gen, allKey, tasks)
}

func (c *Redis) Column(ctx context.Context, status models.Status) ([]*models.Task, Generation, bool) {
	return c.load(ctx, columnKey(status))
}

func (c *Redis) StoreColumn(ctx context.Context, gen Generation, status models.Status, tasks []*models.Task) {
	c.store(ctx, gen, columnKey(status), tasks)
}

// Invalidate bumps the generation and drops every cached list in one
// transaction. Any write can shift positions in up to two columns, so all
// keys go together.
func (c *Redis) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	keys := []string{allKey}
	for _, s := range models.Statuses {
		keys = append(keys, columnKey(s))
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.logger.Warn("failed to invalidate list cache", "error", err)
	}
}

// load reads the generation and the list in one round trip
func (c *Redis) load(ctx context.Context, key string) ([]*models.Task, Generation, bool) {
	if c.client == nil {
		return nil, NoGeneration, false
	}

	var genCmd, listCmd *redis.StringCmd
	// redis.Nil from either GET surfaces here; each command is checked below
	_, _ = c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		genCmd = pipe.Get(ctx, generationKey)
		listCmd = pipe.Get(ctx, key)
		return nil
	})

	gen := Generation(0)
	if n, err := genCmd.Int64(); err == nil {
		gen = Generation(n)
	} else if !errors.Is(err, redis.Nil) {
		return nil, NoGeneration, false
	}

	data, err := listCmd.Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// fall back to the store without failing
			_ = c.client.Del(ctx, key).Err()
		}
		return nil, gen, false
	}
	var tasks []*models.Task
	if err := sonic.Unmarshal(data, &tasks); err != nil {
		_ = c.client.Del(ctx, key).Err()
		return nil, gen, false
	}
	return tasks, gen, true
}

func (c *Redis) store(ctx context.Context, gen Generation, key string, tasks []*models.Task) {
	if c.client == nil || c.ttl == 0 || gen < 0 {
		return
	}
	data, err := sonic.Marshal(tasks)
	if err != nil {
		return
	}
	ttl := c.ttl.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	stored, err := storeIfCurrent.Run(ctx, c.client,
		[]string{generationKey, key},
		strconv.FormatInt(int64(gen), 10), data, ttl,
	).Int()
	if err != nil {
		c.logger.Debug("failed to store list", "key", key, "error", err)
		return
	}
	if stored == 0 {
		c.logger.Debug("skipped stale list", "key", key, "generation", gen)
	}
}

func columnKey(status models.Status) string {
	return keyPrefix + string(status)
}

// Noop is the ListCache used when no Redis URL is configured
type Noop struct{}

func (Noop) Board(context.Context) ([]*models.Task, Generation, bool) {
	return nil, NoGeneration, false
}
func (Noop) StoreBoard(context.Context, Generation, []*models.Task) {}
func (Noop) Column(context.Context, models.Status) ([]*models.Task, Generation, bool) {
	return nil, NoGeneration, false
}
func (Noop) StoreColumn(context.Context, Generation, models.Status, []*models.Task) {}
func (Noop) Invalidate(context.Context)                                             {}
