package orderbookv1

import (
	"fmt"
	"strings"
)

// EventType is the LOBSTER message type.
type EventType int

const (
	// EventNewOrder is the submission of a new limit order.
	EventNewOrder EventType = 1
	// EventCancel is a partial cancellation of a resting order.
	EventCancel EventType = 2
	// EventDelete is the full deletion of a resting order.
	EventDelete EventType = 3
	// EventExecuteVisible is an execution against a visible resting order.
	EventExecuteVisible EventType = 4
	// EventExecuteHidden is an execution against an order never shown in the book.
	EventExecuteHidden EventType = 5
	// EventCrossTrade is an auction cross trade. It never touches the book.
	EventCrossTrade EventType = 6
	// EventTradingHalt is the trading halt indicator. Its price carries the new state.
	EventTradingHalt EventType = 7
)

// String returns the lower-case name of the event type.
func (t EventType) String() string {
	switch t {
	case EventNewOrder:
		return "new_order"
	case EventCancel:
		return "cancel"
	case EventDelete:
		return "delete"
	case EventExecuteVisible:
		return "execute_visible"
	case EventExecuteHidden:
		return "execute_hidden"
	case EventCrossTrade:
		return "cross_trade"
	case EventTradingHalt:
		return "trading_halt"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Valid reports whether t is a known message type.
func (t EventType) Valid() bool {
	return t >= EventNewOrder && t <= EventTradingHalt
}

// Event is one message of the order-event stream.
type Event struct {
	Sequence  int64     `json:"sequence"`  // 1-based position in the stream
	Timestamp string    `json:"timestamp"` // opaque, passed through to snapshots
	Type      EventType `json:"type"`
	OrderID   int64     `json:"orderID"`
	Side      Side      `json:"side"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
}

// HaltState maps a trading halt indicator to the book state it announces.
// LOBSTER encodes it in the price column: -1 halts, 0 resumes quoting and 1
// resumes trading.
func (e Event) HaltState() (State, bool) {
	if e.Type != EventTradingHalt {
		return StateHalted, false
	}

	switch e.Price {
	case -1:
		return StateHalted, true
	case 0:
		return StateQuoting, true
	case 1:
		return StateTrading, true
	default:
		return StateHalted, false
	}
}

// State gates which events the book accepts.
type State int

const (
	// StateHalted rejects every event.
	StateHalted State = iota
	// StateQuoting accepts order entry and removal but no executions.
	StateQuoting
	// StateTrading accepts every event.
	StateTrading
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateHalted:
		return "halted"
	case StateQuoting:
		return "quoting"
	case StateTrading:
		return "trading"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState parses a state name as produced by State.String.
func ParseState(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "halted":
		return StateHalted, nil
	case "quoting":
		return StateQuoting, nil
	case "trading":
		return StateTrading, nil
	default:
		return StateHalted, fmt.Errorf("unknown book state %q", name)
	}
}

// Accepts reports whether events of type t may be applied in state s.
func (s State) Accepts(t EventType) bool {
	switch s {
	case StateTrading:
		return true
	case StateQuoting:
		return t == EventNewOrder || t == EventCancel || t == EventDelete
	default:
		return false
	}
}
