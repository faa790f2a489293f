package orderbookv1

// Arena owns every resting Order. Orders are addressed by stable Handles, so
// the order index and the price-level queues can both reference an order
// without either of them owning it. Only the Arena releases a slot.
//
// Pointers returned by Get are only valid until the next Alloc, which may
// grow the backing slice. Hold Handles across calls, not pointers.
type Arena struct {
	slots []Order
	free  []Handle
	live  int
}

// NewArena creates an Arena with room for capacity orders before growing.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}

	slots := make([]Order, 1, capacity+1) // slot 0 backs NilHandle
	return &Arena{slots: slots}
}

// Alloc stores o in a free slot and returns its Handle. Links are cleared.
func (a *Arena) Alloc(o Order) Handle {
	o.prev, o.next = NilHandle, NilHandle
	o.live = true
	a.live++

	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = o
		return h
	}

	a.slots = append(a.slots, o)
	return Handle(len(a.slots) - 1)
}

// Get returns the live order at h, or nil when h is NilHandle, out of range
// or already freed.
func (a *Arena) Get(h Handle) *Order {
	if h == NilHandle || int(h) >= len(a.slots) {
		return nil
	}

	o := &a.slots[h]
	if !o.live {
		return nil
	}
	return o
}

// Free releases the slot at h. It reports false when h was not live, which
// keeps a double release from corrupting the free list.
func (a *Arena) Free(h Handle) bool {
	if a.Get(h) == nil {
		return false
	}

	a.slots[h] = Order{}
	a.free = append(a.free, h)
	a.live--
	return true
}

// Len returns the number of live orders.
func (a *Arena) Len() int {
	return a.live
}

// Reset releases every slot.
func (a *Arena) Reset() {
	clear(a.slots)
	a.slots = a.slots[:1]
	a.free = a.free[:0]
	a.live = 0
}
