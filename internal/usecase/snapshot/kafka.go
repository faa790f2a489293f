package snapshot

import (
	"context"
	"encoding/json"
	"strconv"

	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/config"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

var _ snapshotv1.Sink = (*KafkaSink)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes JSON snapshots to the snapshot topic. Message keys are
// ULIDs, so they sort by emission time.
type KafkaSink struct {
	kafkaWriter messageWriter
	logger      *logger.Logger
}

// NewKafkaSink creates a Kafka sink for the snapshot topic.
func NewKafkaSink(cfg config.KafkaConfig, log *logger.Logger) *KafkaSink {
	return newKafkaSink(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SnapshotTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}, log)
}

func newKafkaSink(w messageWriter, log *logger.Logger) *KafkaSink {
	return &KafkaSink{
		kafkaWriter: w,
		logger:      log,
	}
}

// Write publishes one snapshot.
func (p *KafkaSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return sinkError("kafka", err)
	}

	msg := kafka.Message{
		Key:   []byte(ulid.Make().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "sequence", Value: []byte(strconv.FormatInt(snapshot.Sequence, 10))},
			{Key: "event_type", Value: []byte(snapshot.EventType.String())},
		},
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "sequence", Value: snapshot.Sequence},
		)
		return sinkError("kafka", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaSink) Close() error {
	return p.kafkaWriter.Close()
}
