package redis

import (
	"time"

	"github.com/muhammadchandra19/bookreplay/pkg/errors"
)

// Mode represents the mode of the Redis client.
type Mode string

const (
	// Standalone Mode is for a single Redis instance.
	Standalone Mode = "standalone"
	// Cluster Mode is for a Redis cluster setup.
	Cluster Mode = "cluster"
)

// Config holds the configuration for the Redis client.
type Config struct {
	Mode     Mode   `env:"MODE" envDefault:"standalone"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	Addrs []string `env:"ADDRS" envSeparator:"," envDefault:"localhost:6379"`

	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
	MinRetryBackoff time.Duration `env:"MIN_RETRY_BACKOFF" envDefault:"100ms"`
	MaxRetryBackoff time.Duration `env:"MAX_RETRY_BACKOFF" envDefault:"2s"`
	PoolSize        int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns    int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"10m"`
	PoolTimeout     time.Duration `env:"POOL_TIMEOUT" envDefault:"4s"`

	// PrefixKey is prepended to every snapshot key written by the book sinks.
	PrefixKey  string        `env:"PREFIX_KEY" envDefault:"book:"`
	DefaultTTL time.Duration `env:"DEFAULT_TTL" envDefault:"0s"`
	// Stream, when set, also appends snapshots to a stream capped near StreamMaxLen.
	Stream       string `env:"STREAM"`
	StreamMaxLen int64  `env:"STREAM_MAX_LEN" envDefault:"10000"`

	ReconnectMaxRetries int `env:"RECONNECT_MAX_RETRIES" envDefault:"3"`
}

// DefaultConfig returns a default configuration for the Redis client.
func DefaultConfig() *Config {
	return &Config{
		Mode:                Standalone,
		Addrs:               []string{"localhost:6379"},
		ConnectTimeout:      5 * time.Second,
		MaxRetries:          3,
		MinRetryBackoff:     100 * time.Millisecond,
		MaxRetryBackoff:     2 * time.Second,
		PoolSize:            10,
		MinIdleConns:        2,
		MaxIdleConns:        10,
		ConnMaxLifetime:     30 * time.Minute,
		ConnMaxIdleTime:     10 * time.Minute,
		PoolTimeout:         4 * time.Second,
		PrefixKey:           "book:",
		StreamMaxLen:        10000,
		ReconnectMaxRetries: 3,
	}
}

// Validate checks the settings Connect depends on.
func (c *Config) Validate() error {
	checks := []struct {
		ok      bool
		message string
	}{
		{len(c.Addrs) > 0, "Redis addresses are empty"},
		{c.Mode == Standalone || c.Mode == Cluster, "Invalid Redis mode"},
		{c.ConnectTimeout > 0, "Invalid Redis connect timeout"},
		{c.PoolSize > 0, "Invalid Redis pool size"},
		{c.MaxIdleConns >= 0, "Invalid Redis max idle connections"},
		{c.ConnMaxLifetime > 0, "Invalid Redis connection max lifetime"},
		{c.ConnMaxIdleTime > 0, "Invalid Redis connection max idle time"},
		{c.PoolTimeout > 0, "Invalid Redis pool timeout"},
		{c.MaxRetries >= 0, "Invalid Redis max retries"},
		{c.MinRetryBackoff >= 0, "Invalid Redis minimum retry backoff"},
		{c.MaxRetryBackoff >= 0, "Invalid Redis maximum retry backoff"},
	}

	for _, check := range checks {
		if !check.ok {
			return errors.NewErrorDetails(check.message, string(errors.RedisConfigError), "connect")
		}
	}
	return nil
}
