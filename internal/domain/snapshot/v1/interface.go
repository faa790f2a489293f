package snapshotv1

import "context"

// Sink receives one snapshot per processed event, in event order.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Sink interface {
	Write(ctx context.Context, snapshot *Snapshot) error
	Close() error
}
