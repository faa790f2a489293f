package orderbookv1

// Trade is an execution reported on the side channel next to a snapshot.
// Hidden and cross trades never change level volumes.
type Trade struct {
	Type     EventType `json:"type"`
	OrderID  int64     `json:"orderID"`
	Side     Side      `json:"side"`
	Price    int64     `json:"price"`
	Quantity int64     `json:"quantity"`
	// Filled is true when the execution removed the resting order.
	Filled bool `json:"filled"`
}

// IsHidden checks if the trade executed against non-displayed liquidity.
func (t *Trade) IsHidden() bool {
	return t.Type == EventExecuteHidden
}
