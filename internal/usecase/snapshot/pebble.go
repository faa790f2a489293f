package snapshot

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/config"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
)

var _ snapshotv1.Sink = (*PebbleStore)(nil)

const snapshotKeyPrefix = "snapshot/"

// PebbleStore keeps every snapshot in an embedded key-value store keyed by
// sequence, so a replay can be inspected at any message afterwards.
type PebbleStore struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	logger    *logger.Logger
}

// OpenPebbleStore opens or creates the store in cfg.Dir.
func OpenPebbleStore(cfg config.PebbleConfig, log *logger.Logger) (*PebbleStore, error) {
	db, err := pebble.Open(cfg.Dir, &pebble.Options{})
	if err != nil {
		log.Error(err, logger.NewField("dir", cfg.Dir))
		return nil, errors.NewTracer("open snapshot store").Wrap(err)
	}

	writeOpts := pebble.NoSync
	if cfg.Sync {
		writeOpts = pebble.Sync
	}

	return &PebbleStore{
		db:        db,
		writeOpts: writeOpts,
		logger:    log,
	}, nil
}

// Write stores one snapshot under its sequence. A later snapshot with the
// same sequence replaces it.
func (s *PebbleStore) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return sinkError("pebble", err)
	}

	if err := s.db.Set(snapshotKey(snapshot.Sequence), value, s.writeOpts); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("sequence", snapshot.Sequence))
		return sinkError("pebble", err)
	}
	return nil
}

// Get loads the snapshot written for sequence, or nil when there is none.
func (s *PebbleStore) Get(sequence int64) (*snapshotv1.Snapshot, error) {
	value, closer, err := s.db.Get(snapshotKey(sequence))
	if stderrors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewTracer(fmt.Sprintf("get snapshot %d", sequence)).Wrap(err)
	}
	defer closer.Close()

	return decodeSnapshot(value)
}

// Latest loads the snapshot with the highest sequence, or nil when the store
// is empty.
func (s *PebbleStore) Latest() (*snapshotv1.Snapshot, error) {
	var found *snapshotv1.Snapshot
	err := s.scan(0, 0, true, func(snapshot *snapshotv1.Snapshot) bool {
		found = snapshot
		return false
	})
	return found, err
}

// Range calls fn for every stored snapshot with from <= sequence <= to, in
// sequence order, until fn returns false. A to of zero or less has no upper
// bound.
func (s *PebbleStore) Range(from, to int64, fn func(*snapshotv1.Snapshot) bool) error {
	return s.scan(from, to, false, fn)
}

func (s *PebbleStore) scan(from, to int64, reverse bool, fn func(*snapshotv1.Snapshot) bool) error {
	opts := &pebble.IterOptions{
		LowerBound: snapshotKey(max(from, 0)),
		UpperBound: []byte(snapshotKeyPrefix + "~"),
	}
	if to > 0 {
		opts.UpperBound = snapshotKey(to + 1)
	}

	iter, err := s.db.NewIter(opts)
	if err != nil {
		return errors.NewTracer("scan snapshots").Wrap(err)
	}
	defer iter.Close()

	valid := iter.First
	step := iter.Next
	if reverse {
		valid, step = iter.Last, iter.Prev
	}

	for ok := valid(); ok; ok = step() {
		snapshot, err := decodeSnapshot(iter.Value())
		if err != nil {
			return err
		}
		if !fn(snapshot) {
			break
		}
	}
	return iter.Error()
}

// Close flushes memtables and closes the store.
func (s *PebbleStore) Close() error {
	if err := s.db.Flush(); err != nil {
		s.logger.Error(err)
	}
	return s.db.Close()
}

// snapshotKey zero-pads the sequence so keys sort numerically.
func snapshotKey(sequence int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", snapshotKeyPrefix, sequence))
}

func decodeSnapshot(value []byte) (*snapshotv1.Snapshot, error) {
	snapshot := &snapshotv1.Snapshot{}
	if err := json.Unmarshal(value, snapshot); err != nil {
		return nil, errors.NewTracer("decode snapshot").Wrap(err)
	}
	return snapshot, nil
}
