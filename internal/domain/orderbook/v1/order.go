package orderbookv1

import "fmt"

// Side represents the side of the book an order rests on. The values follow
// the LOBSTER direction column: 1 for buy orders, -1 for sell orders.
type Side int8

const (
	// SideBid represents buy-side resting orders.
	SideBid Side = 1
	// SideAsk represents sell-side resting orders.
	SideAsk Side = -1
)

// ParseSide converts a LOBSTER direction value into a Side.
func ParseSide(direction int64) (Side, error) {
	switch direction {
	case 1:
		return SideBid, nil
	case -1:
		return SideAsk, nil
	default:
		return 0, fmt.Errorf("%w: direction %d", ErrInvalidEvent, direction)
	}
}

// Valid reports whether s is one of the two book sides.
func (s Side) Valid() bool {
	return s == SideBid || s == SideAsk
}

// String returns "bid" or "ask".
func (s Side) String() string {
	switch s {
	case SideBid:
		return "bid"
	case SideAsk:
		return "ask"
	default:
		return fmt.Sprintf("side(%d)", int8(s))
	}
}

// Handle addresses an order slot in an Arena. The zero Handle is never
// allocated and stands for "no order".
type Handle uint32

// NilHandle is the Handle that points at no order.
const NilHandle Handle = 0

// Order represents a single resting order in the order book.
type Order struct {
	ID        int64 `json:"id"`
	Side      Side  `json:"side"`
	Price     int64 `json:"price"`
	Remaining int64 `json:"remaining"`

	// FIFO links within the order's Limit
	prev Handle
	next Handle

	live bool
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBid
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideAsk
}

// Next returns the handle of the order queued behind o at the same price.
func (o *Order) Next() Handle {
	return o.next
}

// Prev returns the handle of the order queued ahead of o at the same price.
func (o *Order) Prev() Handle {
	return o.prev
}
