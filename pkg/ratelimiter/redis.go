package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable wraps Redis failures.
var ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")

// tokenBucketScript mirrors MemoryLimiter.AllowN. All times are milliseconds.
// Returns {remaining, reset_at}.
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local n = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local refill = tonumber(state[2])
if tokens == nil or refill == nil then
	tokens = capacity
	refill = now
end

local intervals = math.floor((now - refill) / interval)
local cap = math.floor(capacity / rate) + 1
if intervals > cap then intervals = cap end
if intervals > 0 then
	tokens = math.min(tokens + intervals * rate, capacity)
	refill = now
end

tokens = math.max(tokens - n, -capacity)
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', refill)
redis.call('PEXPIRE', KEYS[1], ttl)
return {tokens, refill + interval}
`)

// RedisLimiter keeps buckets in Redis so that several processes share limits.
type RedisLimiter struct {
	client redis.Scripter
	cfg    Config
	prefix string
	now    func() time.Time
}

// NewRedis creates a RedisLimiter. Keys are stored as prefix+key.
func NewRedis(client redis.Scripter, cfg Config, prefix string) (*RedisLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &RedisLimiter{client: client, cfg: cfg, prefix: prefix, now: time.Now}, nil
}

// AllowN consumes n tokens for key.
func (l *RedisLimiter) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if err := checkTokens(n); err != nil {
		return Result{}, err
	}

	vals, err := tokenBucketScript.Run(ctx, l.client, []string{l.prefix + key},
		l.cfg.Capacity,
		l.cfg.RefillRate,
		l.cfg.RefillInterval.Milliseconds(),
		l.now().UnixMilli(),
		n,
		StaleAfter.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, vals)
	}

	return Result{
		Limit:     l.cfg.Capacity,
		Remaining: int(vals[0]),
		ResetAt:   time.UnixMilli(vals[1]),
	}, nil
}
