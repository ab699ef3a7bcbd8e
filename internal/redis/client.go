// Package redis wraps the go-redis client so repositories depend on a small,
// mockable surface.
package redis

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Options tunes the connection pool
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a client for a single instance at endpoint (host:port)
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}

	redisOpts := &redis.Options{Addr: endpoint}
	applyOptions(redisOpts, opts)

	return redis.NewClient(redisOpts), nil
}

// NewClientFromURL creates a client from a redis:// or rediss:// URL
func NewClientFromURL(url string, opts *Options) (Client, error) {
	if url == "" {
		return nil, errors.InvalidArgument("redis url is required")
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
	}
	applyOptions(redisOpts, opts)

	return redis.NewClient(redisOpts), nil
}

func applyOptions(redisOpts *redis.Options, opts *Options) {
	if opts == nil {
		return
	}

	redisOpts.PoolSize = opts.PoolSize
	redisOpts.MinIdleConns = opts.MinIdleConns
	redisOpts.ConnMaxIdleTime = opts.ConnMaxIdleTime
	redisOpts.MaxRetries = opts.MaxRetries
	if opts.UseTLS && redisOpts.TLSConfig == nil {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
}
