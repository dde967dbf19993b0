package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyTemplate = "_relay_rl_%s"

// RedisStore shares a rolling window between replicas using one sorted set
// per identifier, scored by request time in milliseconds.
//
// It fails open: when Redis is unreachable the request is allowed and the
// error is logged.
type RedisStore struct {
	cli     *redis.Client
	cfg     Config
	timeout time.Duration
	logger  *zerolog.Logger
	now     func() time.Time
}

// NewRedisStore creates a Redis-backed limiter.
func NewRedisStore(cli *redis.Client, cfg Config, logger *zerolog.Logger) *RedisStore {
	return &RedisStore{
		cli:     cli,
		cfg:     cfg,
		timeout: 500 * time.Millisecond,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow trims the window, counts it, and records the request when there is room.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	if s.cfg.Requests <= 0 {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	allowed, err := s.allow(ctx, identifier)
	if err != nil {
		s.logger.Error().Err(err).Str("identifier", identifier).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return allowed, nil
}

func (s *RedisStore) allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf(keyTemplate, identifier)
	now := s.now()
	cutoff := now.Add(-s.cfg.Window).UnixMilli()

	pipe := s.cli.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if count.Val() >= int64(s.cfg.Requests) {
		return false, nil
	}

	pipe = s.cli.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	pipe.PExpire(ctx, key, s.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// Ping checks Redis connectivity for readiness probes.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.cli.Ping(ctx).Err()
}
