package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/bookreplay/pkg/questdb"
	"github.com/muhammadchandra19/bookreplay/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional
// .env file. A missing .env file is not an error.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return env.Parse(cfg)
}

// Config holds the configuration for the book-replay binary.
type Config struct {
	Book   BookConfig `envPrefix:"BOOK_"`
	Source string     `env:"SOURCE" envDefault:"file"` // file or kafka
	// Sinks lists csv, kafka, redis, questdb, nats or pebble.
	Sinks   []string       `env:"SINKS" envSeparator:"," envDefault:"csv"`
	Input   string         `env:"INPUT_PATH"`                  // LOBSTER message file
	Output  string         `env:"OUTPUT_PATH" envDefault:"-"`  // LOBSTER orderbook file, "-" is stdout
	Scale   int32          `env:"PRICE_SCALE" envDefault:"0"`  // decimal places of CSV prices
	Log     string         `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn or error
	Metrics string         `env:"METRICS_ADDR"`                // serves /metrics and /health when set
	Kafka   KafkaConfig    `envPrefix:"KAFKA_"`
	Redis   redis.Config   `envPrefix:"REDIS_"`
	QuestDB questdb.Config `envPrefix:"QUESTDB_"`
	NATS    NATSConfig     `envPrefix:"NATS_"`
	Pebble  PebbleConfig   `envPrefix:"PEBBLE_"`
}

// BookConfig holds the orderbook and engine settings.
type BookConfig struct {
	Depth        int    `env:"DEPTH" envDefault:"10"`
	ErrorPolicy  string `env:"ERROR_POLICY" envDefault:"skip"`
	InitialState string `env:"INITIAL_STATE" envDefault:"trading"`
	HonorHalt    bool   `env:"HONOR_HALT" envDefault:"true"`
	EmitRejected bool   `env:"EMIT_REJECTED" envDefault:"true"`
	IndexBuckets int    `env:"INDEX_BUCKETS" envDefault:"262144"`
	LevelBuckets int    `env:"LEVEL_BUCKETS" envDefault:"4096"`
}

// KafkaConfig holds the configuration for the Kafka event source and
// snapshot sink.
type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	EventTopic    string   `env:"EVENT_TOPIC" envDefault:"book-events"`
	SnapshotTopic string   `env:"SNAPSHOT_TOPIC" envDefault:"book-snapshots"`
	GroupID       string   `env:"GROUP_ID"`
	Partition     int      `env:"PARTITION" envDefault:"0"`
	StartOffset   int64    `env:"START_OFFSET" envDefault:"0"`
	// EndOffset stops the replay once reached. Zero or less follows the topic.
	EndOffset int64 `env:"END_OFFSET" envDefault:"0"`
}

// NATSConfig holds the configuration for the NATS snapshot sink.
type NATSConfig struct {
	URL     string `env:"URL" envDefault:"nats://127.0.0.1:4222"`
	Subject string `env:"SUBJECT" envDefault:"book.snapshots"`
	Name    string `env:"CLIENT_NAME" envDefault:"book-replay"`
}

// PebbleConfig holds the configuration for the embedded snapshot store.
type PebbleConfig struct {
	Dir string `env:"DIR" envDefault:"./data/snapshots"`
	// Sync fsyncs every write. Off by default, Close flushes.
	Sync bool `env:"SYNC" envDefault:"false"`
}

// HasSink reports whether name is one of the configured sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
