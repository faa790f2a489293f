package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/muhammadchandra19/bookreplay/pkg/questdb"
)

// SnapshotTable is the QuestDB table snapshots are appended to.
const SnapshotTable = "book_snapshots"

const createSnapshotTable = `CREATE TABLE IF NOT EXISTS book_snapshots (
	ts TIMESTAMP,
	sequence LONG,
	event_time STRING,
	event_type SYMBOL,
	level INT,
	bid_price LONG,
	bid_size LONG,
	ask_price LONG,
	ask_size LONG,
	rejected SYMBOL
) TIMESTAMP(ts) PARTITION BY DAY`

const snapshotColumns = 9

var _ snapshotv1.Sink = (*QuestDBSink)(nil)

// QuestDBSink appends every level of every snapshot to SnapshotTable, one
// multi-row INSERT per snapshot.
type QuestDBSink struct {
	client questdb.QuestDBClient
	logger *logger.Logger
	now    func() time.Time
}

// NewQuestDBSink creates a sink on a connected client.
func NewQuestDBSink(client questdb.QuestDBClient, log *logger.Logger) *QuestDBSink {
	return &QuestDBSink{
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// EnsureSchema creates SnapshotTable when it does not exist.
func (s *QuestDBSink) EnsureSchema(ctx context.Context) error {
	if err := s.client.Exec(ctx, createSnapshotTable); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "table", Value: SnapshotTable})
		return sinkError("questdb", err)
	}
	return nil
}

// Write inserts one row per level.
func (s *QuestDBSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	if len(snapshot.Levels) == 0 {
		return nil
	}

	query, args := insertSnapshot(snapshot, s.now().UTC())
	if err := s.client.Exec(ctx, query, args...); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "table", Value: SnapshotTable},
			logger.Field{Key: "sequence", Value: snapshot.Sequence},
		)
		return sinkError("questdb", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *QuestDBSink) Close() error {
	s.client.Close()
	return nil
}

func insertSnapshot(snapshot *snapshotv1.Snapshot, ts time.Time) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(SnapshotTable)
	b.WriteString(" (ts, sequence, event_time, event_type, level, bid_price, bid_size, ask_price, ask_size, rejected) VALUES ")

	args := make([]any, 0, len(snapshot.Levels)*snapshotColumns+1)
	args = append(args, ts)
	for i, level := range snapshot.Levels {
		if i > 0 {
			b.WriteString(", ")
		}

		n := len(args)
		fmt.Fprintf(&b, "($1, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8, n+9)
		args = append(args,
			snapshot.Sequence,
			snapshot.Timestamp,
			snapshot.EventType.String(),
			i+1,
			level.Bid.Price,
			level.Bid.Size,
			level.Ask.Price,
			level.Ask.Size,
			snapshot.Rejected,
		)
	}

	return b.String(), args
}
