package eventreaderv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
)

// EventReader defines the interface for reading order events from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventreaderv1_mock
type EventReader interface {
	// ReadEvent returns the next event in stream order. io.EOF ends the
	// stream. An error wrapping orderbookv1.ErrInvalidEvent reports a
	// malformed message; the next call continues after it.
	ReadEvent(ctx context.Context) (orderbookv1.Event, error)
	// Close closes the reader
	Close() error
}
