package snapshotv1

import orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"

// Snapshot is the depth-limited view of the book after one event.
type Snapshot struct {
	Sequence  int64                 `json:"sequence"`
	Timestamp string                `json:"timestamp"`
	EventType orderbookv1.EventType `json:"eventType"`
	State     orderbookv1.State     `json:"state"`
	Levels    []orderbookv1.Level   `json:"levels"`

	// Trade is set when the event was an execution.
	Trade *orderbookv1.Trade `json:"trade,omitempty"`
	// Rejected holds the error code of an event that was skipped. The levels
	// then show the unchanged book.
	Rejected string `json:"rejected,omitempty"`
}

// Depth returns the number of levels per side.
func (s *Snapshot) Depth() int {
	return len(s.Levels)
}
