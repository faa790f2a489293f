package snapshot

import (
	"context"
	"encoding/json"
	"time"

	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/muhammadchandra19/bookreplay/pkg/redis"
	v9 "github.com/redis/go-redis/v9"
)

var _ snapshotv1.Sink = (*RedisSink)(nil)

// RedisSinkConfig names the keys a RedisSink writes.
type RedisSinkConfig struct {
	// Prefix is prepended to the latest-snapshot key, the channel and the stream.
	Prefix string
	// TTL expires the latest-snapshot key. Zero keeps it forever.
	TTL time.Duration
	// Stream, when set, also appends every snapshot to a capped stream.
	Stream       string
	StreamMaxLen int64
}

// RedisSink keeps the latest snapshot under a key and publishes every
// snapshot on a channel.
type RedisSink struct {
	redisclient redis.Client
	logger      *logger.Logger
	config      RedisSinkConfig
}

// NewRedisSink creates a sink on a connected client.
func NewRedisSink(redisclient redis.Client, cfg RedisSinkConfig, log *logger.Logger) *RedisSink {
	return &RedisSink{
		redisclient: redisclient,
		logger:      log,
		config:      cfg,
	}
}

// LatestKey is the key holding the most recent snapshot.
func (s *RedisSink) LatestKey() string {
	return s.config.Prefix + "latest"
}

// Channel is the pub/sub channel snapshots are published on.
func (s *RedisSink) Channel() string {
	return s.config.Prefix + "snapshots"
}

// Write stores and publishes one snapshot. A failed SET is retried once
// after a successful reconnect.
func (s *RedisSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		return sinkError("redis", err)
	}

	if err := s.redisclient.Set(ctx, s.LatestKey(), buf, s.config.TTL); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: s.LatestKey()},
			logger.Field{Key: "sequence", Value: snapshot.Sequence},
		)
		if !s.redisclient.Reconnect(ctx) {
			return sinkError("redis", err)
		}
		if err := s.redisclient.Set(ctx, s.LatestKey(), buf, s.config.TTL); err != nil {
			return sinkError("redis", err)
		}
	}

	if _, err := s.redisclient.Publish(ctx, s.Channel(), buf); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "channel", Value: s.Channel()})
		return sinkError("redis", err)
	}

	if s.config.Stream != "" {
		_, err := s.redisclient.XAdd(ctx, &v9.XAddArgs{
			Stream: s.config.Prefix + s.config.Stream,
			MaxLen: s.config.StreamMaxLen,
			Approx: s.config.StreamMaxLen > 0,
			Values: map[string]any{
				"sequence": snapshot.Sequence,
				"snapshot": buf,
			},
		})
		if err != nil {
			s.logger.ErrorContext(ctx, err, logger.Field{Key: "stream", Value: s.config.Stream})
			return sinkError("redis", err)
		}
	}

	return nil
}

// Latest loads the most recently stored snapshot, or nil when none exists.
func (s *RedisSink) Latest(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.LatestKey())
	if err != nil {
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}
	if data == "" {
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}
	return &snapshot, nil
}

// Close disconnects the client.
func (s *RedisSink) Close() error {
	return s.redisclient.Disconnect(context.Background())
}
