package eventreader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	eventreaderv1 "github.com/muhammadchandra19/bookreplay/internal/domain/event-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/config"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/segmentio/kafka-go"
)

var _ eventreaderv1.EventReader = (*KafkaReader)(nil)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaReader consumes JSON-encoded events from one Kafka partition.
type KafkaReader struct {
	reader    messageReader
	logger    *logger.Logger
	endOffset int64
	done      bool
}

// NewKafkaReader creates a reader for the event topic. Without a consumer
// group the partition is read from StartOffset.
func NewKafkaReader(cfg config.KafkaConfig, log *logger.Logger) (*KafkaReader, error) {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.EventTopic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	}
	if cfg.GroupID == "" {
		readerConfig.Partition = cfg.Partition
	}

	kafkaReader := kafka.NewReader(readerConfig)
	if cfg.GroupID == "" && cfg.StartOffset > 0 {
		if err := kafkaReader.SetOffset(cfg.StartOffset); err != nil {
			_ = kafkaReader.Close()
			return nil, errors.NewTracer("set event offset").Wrap(err)
		}
	}

	return newKafkaReader(kafkaReader, cfg.EndOffset, log), nil
}

func newKafkaReader(reader messageReader, endOffset int64, log *logger.Logger) *KafkaReader {
	return &KafkaReader{
		reader:    reader,
		logger:    log,
		endOffset: endOffset,
	}
}

// ReadEvent blocks until the next event arrives. It returns io.EOF once the
// configured end offset is reached. Events without a sequence number get
// the message offset plus one.
func (r *KafkaReader) ReadEvent(ctx context.Context) (orderbookv1.Event, error) {
	if r.done {
		return orderbookv1.Event{}, io.EOF
	}

	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return orderbookv1.Event{}, ctx.Err()
		}
		r.logError(err, "ReadMessage")
		return orderbookv1.Event{}, fmt.Errorf("%w: %w", errors.NewErrorDetails("failed to read event message", string(errors.SourceReadError), "offset"), err)
	}

	if r.endOffset > 0 {
		if msg.Offset >= r.endOffset {
			r.done = true
			return orderbookv1.Event{}, io.EOF
		}
		r.done = msg.Offset == r.endOffset-1
	}

	var event orderbookv1.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		r.logError(err, "UnmarshalEvent")
		return orderbookv1.Event{}, fmt.Errorf("offset %d: %w: %v", msg.Offset, orderbookv1.ErrInvalidEvent, err)
	}
	if event.Sequence == 0 {
		event.Sequence = msg.Offset + 1
	}

	r.logger.DebugContext(ctx, "ReadEvent",
		logger.NewField("offset", msg.Offset),
		logger.NewField("sequence", event.Sequence),
		logger.NewField("type", event.Type.String()),
		logger.NewField("orderID", event.OrderID),
	)

	return event, nil
}

// Close properly closes the Kafka reader.
func (r *KafkaReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// logError is a helper method to log errors consistently
func (r *KafkaReader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}
