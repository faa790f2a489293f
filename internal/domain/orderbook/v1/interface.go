package orderbookv1

// LimitView is a read-only copy of one price level for diagnostics.
type LimitView struct {
	Price       int64   `json:"price"`
	Side        Side    `json:"side"`
	TotalVolume int64   `json:"totalVolume"`
	OrderCount  int     `json:"orderCount"`
	OrderIDs    []int64 `json:"orderIDs"`
}

// Orderbook reconstructs a limit order book from an order-event stream.
// Implementations are single-writer and not safe for concurrent use.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Orderbook interface {
	// Apply dispatches one event to the matching operation. It returns the
	// execution it produced, if any. A failed event leaves the book unchanged.
	Apply(event Event) (*Trade, error)

	AddOrder(id int64, side Side, price, quantity int64) error
	CancelOrder(id, quantity int64) error
	DeleteOrder(id int64) error
	ExecuteOrder(id, quantity int64) (*Trade, error)
	ExecuteHidden(id int64, side Side, price, quantity int64) (*Trade, error)

	// Snapshot returns exactly depth levels, best first, padded with empty quotes.
	Snapshot(depth int) []Level

	SetState(state State)
	State() State

	BestBid() (int64, bool)
	BestAsk() (int64, bool)
	GetOrder(id int64) (Order, bool)
	GetLimit(side Side, price int64) (LimitView, bool)
	Depth(side Side) int
	OrderCount() int

	// Validate checks every book invariant and reports all violations found.
	Validate() error
	Reset()
}
