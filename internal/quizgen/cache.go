package quizgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheKeyPrefix namespaces cached sets; bump the version when Question changes shape.
const cacheKeyPrefix = "literacyhub:quiz:v1:"

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return client, nil
}

// CachedGenerator serves recently generated sets from Redis and falls
// through to the wrapped generator on a miss. Cache errors are logged and
// never fail generation.
type CachedGenerator struct {
	next   Generator
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with a Redis cache whose entries live for ttl.
func NewCached(next Generator, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedGenerator{next: next, client: client, ttl: ttl, logger: logger}
}

// Generate implements Generator.
func (c *CachedGenerator) Generate(ctx context.Context, title, content string) ([]Question, error) {
	key := cacheKey(title, content, QuestionCountFrom(ctx, 0))

	if qs, ok := c.lookup(ctx, key); ok {
		c.logger.Debug("quiz cache hit", "title", title, "questions", len(qs))
		return qs, nil
	}

	qs, err := c.next.Generate(ctx, title, content)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(qs); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("quiz cache write failed", "title", title, "error", err)
		}
	}
	return qs, nil
}

func (c *CachedGenerator) lookup(ctx context.Context, key string) ([]Question, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("quiz cache read failed", "error", err)
		return nil, false
	}

	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		c.logger.Warn("quiz cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	// A stale entry from an older build must still satisfy today's rules.
	if err := Validate(qs, DefaultValidators()...); err != nil {
		return nil, false
	}
	return qs, true
}

func cacheKey(title, content string, count int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d", title, content, count)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
