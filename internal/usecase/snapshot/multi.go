package snapshot

import (
	"context"
	stderrors "errors"

	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
)

var _ snapshotv1.Sink = MultiSink(nil)

// MultiSink hands every snapshot to each sink in order. A failing sink does
// not stop the others; the failures are joined.
type MultiSink []snapshotv1.Sink

// Write writes the snapshot to every sink.
func (m MultiSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(ctx, snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Close closes every sink.
func (m MultiSink) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
