package orderbookv1

import "fmt"

// Limit represents a price level in the order book: a FIFO queue of the
// orders resting at one price on one side, plus their aggregate volume.
//
// The queue is intrusive. Each Order carries its own prev/next handles, so
// removing any order is O(1) without scanning the level.
type Limit struct {
	Price       int64 `json:"price"`
	Side        Side  `json:"side"`
	TotalVolume int64 `json:"totalVolume"`

	head   Handle
	tail   Handle
	count  int
	orders *Arena
}

// NewLimit creates an empty Limit whose orders live in the given Arena.
func NewLimit(price int64, side Side, orders *Arena) *Limit {
	return &Limit{
		Price:  price,
		Side:   side,
		orders: orders,
	}
}

// Add appends the order at h to the tail of the queue and adds its
// remaining quantity to the level volume.
func (l *Limit) Add(h Handle) {
	o := l.orders.Get(h)

	o.prev = l.tail
	o.next = NilHandle
	if l.tail != NilHandle {
		l.orders.Get(l.tail).next = h
	} else {
		l.head = h
	}
	l.tail = h

	l.TotalVolume += o.Remaining
	l.count++
}

// Remove unlinks the order at h and subtracts its current remaining quantity
// from the level volume. Call it before changing the order's quantity.
func (l *Limit) Remove(h Handle) {
	o := l.orders.Get(h)

	if o.prev != NilHandle {
		l.orders.Get(o.prev).next = o.next
	} else {
		l.head = o.next
	}

	if o.next != NilHandle {
		l.orders.Get(o.next).prev = o.prev
	} else {
		l.tail = o.prev
	}

	o.prev, o.next = NilHandle, NilHandle

	l.TotalVolume -= o.Remaining
	l.count--
}

// Shrink reduces the remaining quantity of the order at h by delta and the
// level volume by the same amount. The caller guarantees delta is smaller
// than the order's remaining quantity.
func (l *Limit) Shrink(h Handle, delta int64) {
	l.orders.Get(h).Remaining -= delta
	l.TotalVolume -= delta
}

// Front returns the oldest order at this price.
func (l *Limit) Front() (Handle, bool) {
	return l.head, l.head != NilHandle
}

// IsEmpty checks if the limit has no orders
func (l *Limit) IsEmpty() bool {
	return l.head == NilHandle
}

// OrderCount returns the number of orders at this limit
func (l *Limit) OrderCount() int {
	return l.count
}

// Walk visits the queued orders from oldest to newest until fn returns false.
func (l *Limit) Walk(fn func(h Handle, o *Order) bool) {
	for h := l.head; h != NilHandle; {
		o := l.orders.Get(h)
		if o == nil || !fn(h, o) {
			return
		}
		h = o.next
	}
}

// OrderIDs returns the ids of the queued orders in priority order.
func (l *Limit) OrderIDs() []int64 {
	ids := make([]int64, 0, l.count)
	l.Walk(func(_ Handle, o *Order) bool {
		ids = append(ids, o.ID)
		return true
	})
	return ids
}

// Validate walks the queue and checks links, membership and the level
// volume against the sum of the queued quantities. It is a diagnostic and
// costs O(orders at this price).
func (l *Limit) Validate() error {
	var (
		volume int64
		count  int
		prev   = NilHandle
	)

	for h := l.head; h != NilHandle; {
		o := l.orders.Get(h)
		if o == nil {
			return fmt.Errorf("%w: %s limit %d links released order slot %d", ErrInvariantViolation, l.Side, l.Price, h)
		}
		if o.prev != prev {
			return fmt.Errorf("%w: %s limit %d order %d has a broken prev link", ErrInvariantViolation, l.Side, l.Price, o.ID)
		}
		if o.Price != l.Price || o.Side != l.Side {
			return fmt.Errorf("%w: order %d (%s %d) queued at %s limit %d", ErrInvariantViolation, o.ID, o.Side, o.Price, l.Side, l.Price)
		}
		if o.Remaining <= 0 {
			return fmt.Errorf("%w: order %d rests with quantity %d", ErrInvariantViolation, o.ID, o.Remaining)
		}

		volume += o.Remaining
		count++
		prev = h
		h = o.next
	}

	if prev != l.tail {
		return fmt.Errorf("%w: %s limit %d tail does not end the queue", ErrInvariantViolation, l.Side, l.Price)
	}
	if count != l.count {
		return fmt.Errorf("%w: %s limit %d counts %d orders, queue holds %d", ErrInvariantViolation, l.Side, l.Price, l.count, count)
	}
	if volume != l.TotalVolume {
		return fmt.Errorf("%w: %s limit %d volume mismatch: calculated %d, stored %d", ErrInvariantViolation, l.Side, l.Price, volume, l.TotalVolume)
	}

	return nil
}
