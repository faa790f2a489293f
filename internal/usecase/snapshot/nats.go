package snapshot

import (
	"context"
	"encoding/json"
	"strconv"

	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/config"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/nats-io/nats.go"
)

var _ snapshotv1.Sink = (*NATSSink)(nil)

type natsConn interface {
	PublishMsg(msg *nats.Msg) error
	Flush() error
	Close()
}

// NATSSink publishes JSON snapshots on a subject.
type NATSSink struct {
	conn    natsConn
	subject string
	logger  *logger.Logger
}

// ConnectNATSSink connects to the configured server.
func ConnectNATSSink(cfg config.NATSConfig, log *logger.Logger) (*NATSSink, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name(cfg.Name))
	if err != nil {
		log.Error(err, logger.NewField("url", cfg.URL))
		return nil, sinkError("nats", err)
	}
	return newNATSSink(conn, cfg.Subject, log), nil
}

func newNATSSink(conn natsConn, subject string, log *logger.Logger) *NATSSink {
	return &NATSSink{
		conn:    conn,
		subject: subject,
		logger:  log,
	}
}

// Write publishes one snapshot. Delivery is at most once.
func (s *NATSSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return sinkError("nats", err)
	}

	msg := nats.NewMsg(s.subject)
	msg.Data = data
	msg.Header.Set("sequence", strconv.FormatInt(snapshot.Sequence, 10))
	msg.Header.Set("event_type", snapshot.EventType.String())

	if err := s.conn.PublishMsg(msg); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("subject", s.subject),
			logger.NewField("sequence", snapshot.Sequence),
		)
		return sinkError("nats", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (s *NATSSink) Close() error {
	err := s.conn.Flush()
	s.conn.Close()
	if err != nil {
		return sinkError("nats", err)
	}
	return nil
}
