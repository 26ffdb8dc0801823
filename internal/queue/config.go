package queue

import (
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/qload/pkg/qload"
)

// RedisConfig holds the queue store connection settings. URL is required;
// zero values for the rest keep the go-redis defaults.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MaxRetries   int
}

// Options parses URL and applies the non-zero overrides.
func (rc RedisConfig) Options() (*redis.Options, error) {
	if rc.URL == "" {
		return nil, fmt.Errorf("redis URL is empty: %w", qload.ErrInvalidConfig)
	}

	opts, err := redis.ParseURL(rc.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w: %w", qload.ErrInvalidConfig, err)
	}

	if rc.DialTimeout > 0 {
		opts.DialTimeout = rc.DialTimeout
	}
	if rc.ReadTimeout > 0 {
		opts.ReadTimeout = rc.ReadTimeout
	}
	if rc.WriteTimeout > 0 {
		opts.WriteTimeout = rc.WriteTimeout
	}
	if rc.PoolSize > 0 {
		opts.PoolSize = rc.PoolSize
	}
	// go-redis retries commands on its own; -1 disables that so a failed
	// push surfaces immediately
	if rc.MaxRetries != 0 {
		opts.MaxRetries = rc.MaxRetries
	}
	return opts, nil
}

// invalidRedisURL stands in for a URL that cannot be parsed at all.
const invalidRedisURL = "<invalid redis URL>"

// Redacted returns URL with the password masked. It never returns a
// password, even when go-redis rejects the URL.
func (rc RedisConfig) Redacted() string {
	opts, err := redis.ParseURL(rc.URL)
	if err != nil {
		u, uerr := url.Parse(rc.URL)
		if uerr != nil {
			return invalidRedisURL
		}
		return u.Redacted()
	}
	if opts.Password == "" {
		return rc.URL
	}
	scheme := "redis"
	if opts.TLSConfig != nil {
		scheme = "rediss"
	}
	user := opts.Username
	return fmt.Sprintf("%s://%s:xxxxx@%s/%d", scheme, user, opts.Addr, opts.DB)
}
