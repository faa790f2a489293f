package orderbook

import (
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/index"
)

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// Options sizes the hash tables of an Orderbook. Bucket counts are rounded
// up to a power of two and never change after construction.
type Options struct {
	// OrderBuckets sizes the order id index.
	OrderBuckets int
	// LevelBuckets sizes the price index of each side.
	LevelBuckets int
}

// DefaultOptions returns the sizing used by NewOrderbook.
func DefaultOptions() Options {
	return Options{
		OrderBuckets: 262144,
		LevelBuckets: 4096,
	}
}

// Orderbook reconstructs a limit order book from LOBSTER-style events.
//
// Every resting order lives in one arena slot. The order index maps ids to
// slot handles and the per-side ladders queue the same handles by price, so
// an order is always reachable from both or from neither. It is not safe
// for concurrent use.
type Orderbook struct {
	orders *index.Index[orderbookv1.Handle]
	arena  *orderbookv1.Arena
	bids   *orderbookv1.Ladder
	asks   *orderbookv1.Ladder
	state  orderbookv1.State
}

// NewOrderbook creates an empty, halted orderbook with DefaultOptions.
func NewOrderbook() *Orderbook {
	return NewOrderbookWithOptions(DefaultOptions())
}

// NewOrderbookWithOptions creates an empty, halted orderbook.
func NewOrderbookWithOptions(opts Options) *Orderbook {
	defaults := DefaultOptions()
	if opts.OrderBuckets <= 0 {
		opts.OrderBuckets = defaults.OrderBuckets
	}
	if opts.LevelBuckets <= 0 {
		opts.LevelBuckets = defaults.LevelBuckets
	}

	arena := orderbookv1.NewArena(0)
	return &Orderbook{
		orders: index.New[orderbookv1.Handle](opts.OrderBuckets),
		arena:  arena,
		bids:   orderbookv1.NewLadder(orderbookv1.SideBid, arena, opts.LevelBuckets),
		asks:   orderbookv1.NewLadder(orderbookv1.SideAsk, arena, opts.LevelBuckets),
		state:  orderbookv1.StateHalted,
	}
}

// Apply dispatches one event. Trading halt indicators are not book events:
// the caller translates them into SetState.
func (ob *Orderbook) Apply(event orderbookv1.Event) (*orderbookv1.Trade, error) {
	switch event.Type {
	case orderbookv1.EventNewOrder:
		return nil, ob.AddOrder(event.OrderID, event.Side, event.Price, event.Quantity)
	case orderbookv1.EventCancel:
		return nil, ob.CancelOrder(event.OrderID, event.Quantity)
	case orderbookv1.EventDelete:
		return nil, ob.DeleteOrder(event.OrderID)
	case orderbookv1.EventExecuteVisible:
		return ob.ExecuteOrder(event.OrderID, event.Quantity)
	case orderbookv1.EventExecuteHidden:
		return ob.ExecuteHidden(event.OrderID, event.Side, event.Price, event.Quantity)
	case orderbookv1.EventCrossTrade:
		return ob.crossTrade(event)
	case orderbookv1.EventTradingHalt:
		return nil, fmt.Errorf("%w: %s must be applied with SetState", orderbookv1.ErrInvalidEvent, event.Type)
	default:
		return nil, fmt.Errorf("%w: unknown event type %d", orderbookv1.ErrInvalidEvent, int(event.Type))
	}
}

// AddOrder rests a new limit order at the tail of its price level.
func (ob *Orderbook) AddOrder(id int64, side orderbookv1.Side, price, quantity int64) error {
	if err := ob.accept(orderbookv1.EventNewOrder); err != nil {
		return err
	}
	if !side.Valid() {
		return fmt.Errorf("%w: order %d has side %s", orderbookv1.ErrInvalidEvent, id, side)
	}
	if price <= 0 || quantity <= 0 {
		return fmt.Errorf("%w: order %d has price %d and quantity %d", orderbookv1.ErrInvalidEvent, id, price, quantity)
	}
	if ob.orders.Contains(id) {
		return fmt.Errorf("%w: id=%d", orderbookv1.ErrDuplicateOrder, id)
	}

	h := ob.arena.Alloc(orderbookv1.Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Remaining: quantity,
	})
	_ = ob.orders.Insert(id, h) // absence checked above
	ob.ladder(side).GetOrCreate(price).Add(h)

	return nil
}

// CancelOrder reduces a resting order by quantity. A cancellation that
// leaves nothing resting removes the order.
func (ob *Orderbook) CancelOrder(id, quantity int64) error {
	if err := ob.accept(orderbookv1.EventCancel); err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: cancel of order %d has quantity %d", orderbookv1.ErrInvalidEvent, id, quantity)
	}

	h, o, limit, err := ob.lookup(id)
	if err != nil {
		return err
	}

	ob.shrinkOrRemove(h, o, limit, quantity)
	return nil
}

// DeleteOrder removes a resting order regardless of its remaining quantity.
func (ob *Orderbook) DeleteOrder(id int64) error {
	if err := ob.accept(orderbookv1.EventDelete); err != nil {
		return err
	}

	h, o, limit, err := ob.lookup(id)
	if err != nil {
		return err
	}

	ob.remove(h, o.ID, limit)
	return nil
}

// ExecuteOrder fills quantity of a visible resting order. Fills are taken
// from the given order, not from the head of its level.
func (ob *Orderbook) ExecuteOrder(id, quantity int64) (*orderbookv1.Trade, error) {
	if err := ob.accept(orderbookv1.EventExecuteVisible); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: execution of order %d has quantity %d", orderbookv1.ErrInvalidEvent, id, quantity)
	}

	h, o, limit, err := ob.lookup(id)
	if err != nil {
		return nil, err
	}

	trade := &orderbookv1.Trade{
		Type:     orderbookv1.EventExecuteVisible,
		OrderID:  o.ID,
		Side:     o.Side,
		Price:    o.Price,
		Quantity: quantity,
	}
	trade.Filled = ob.shrinkOrRemove(h, o, limit, quantity)

	return trade, nil
}

// ExecuteHidden reports an execution against hidden liquidity. The book is
// not touched; an id that is resting in the visible book is an error.
func (ob *Orderbook) ExecuteHidden(id int64, side orderbookv1.Side, price, quantity int64) (*orderbookv1.Trade, error) {
	if err := ob.accept(orderbookv1.EventExecuteHidden); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: hidden execution %d has quantity %d", orderbookv1.ErrInvalidEvent, id, quantity)
	}
	if ob.orders.Contains(id) {
		return nil, fmt.Errorf("%w: hidden execution references visible order %d", orderbookv1.ErrInvariantViolation, id)
	}

	return &orderbookv1.Trade{
		Type:     orderbookv1.EventExecuteHidden,
		OrderID:  id,
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}, nil
}

func (ob *Orderbook) crossTrade(event orderbookv1.Event) (*orderbookv1.Trade, error) {
	if err := ob.accept(orderbookv1.EventCrossTrade); err != nil {
		return nil, err
	}
	if event.Quantity <= 0 {
		return nil, fmt.Errorf("%w: cross trade %d has quantity %d", orderbookv1.ErrInvalidEvent, event.OrderID, event.Quantity)
	}

	return &orderbookv1.Trade{
		Type:     orderbookv1.EventCrossTrade,
		OrderID:  event.OrderID,
		Side:     event.Side,
		Price:    event.Price,
		Quantity: event.Quantity,
	}, nil
}

// Snapshot returns exactly depth levels, best first. Missing levels are the
// zero Quote.
func (ob *Orderbook) Snapshot(depth int) []orderbookv1.Level {
	if depth <= 0 {
		return []orderbookv1.Level{}
	}

	levels := make([]orderbookv1.Level, depth)
	for i, q := range ob.bids.TopN(depth) {
		levels[i].Bid = q
	}
	for i, q := range ob.asks.TopN(depth) {
		levels[i].Ask = q
	}

	return levels
}

// SetState switches the trading state.
func (ob *Orderbook) SetState(state orderbookv1.State) {
	ob.state = state
}

// State returns the current trading state.
func (ob *Orderbook) State() orderbookv1.State {
	return ob.state
}

// BestBid returns the highest bid price.
func (ob *Orderbook) BestBid() (int64, bool) {
	return ob.bids.Best()
}

// BestAsk returns the lowest ask price.
func (ob *Orderbook) BestAsk() (int64, bool) {
	return ob.asks.Best()
}

// GetOrder returns a copy of a resting order.
func (ob *Orderbook) GetOrder(id int64) (orderbookv1.Order, bool) {
	h, ok := ob.orders.Get(id)
	if !ok {
		return orderbookv1.Order{}, false
	}

	o := ob.arena.Get(h)
	if o == nil {
		return orderbookv1.Order{}, false
	}
	return *o, true
}

// GetLimit returns a copy of the price level at price on side.
func (ob *Orderbook) GetLimit(side orderbookv1.Side, price int64) (orderbookv1.LimitView, bool) {
	if !side.Valid() {
		return orderbookv1.LimitView{}, false
	}

	limit, ok := ob.ladder(side).Get(price)
	if !ok {
		return orderbookv1.LimitView{}, false
	}

	return orderbookv1.LimitView{
		Price:       limit.Price,
		Side:        limit.Side,
		TotalVolume: limit.TotalVolume,
		OrderCount:  limit.OrderCount(),
		OrderIDs:    limit.OrderIDs(),
	}, true
}

// Depth returns the number of price levels on side.
func (ob *Orderbook) Depth(side orderbookv1.Side) int {
	if !side.Valid() {
		return 0
	}
	return ob.ladder(side).Len()
}

// OrderCount returns the number of resting orders.
func (ob *Orderbook) OrderCount() int {
	return ob.orders.Len()
}

// Reset releases every order and level. The trading state is kept.
func (ob *Orderbook) Reset() {
	ob.bids.Reset()
	ob.asks.Reset()
	ob.orders.Reset()
	ob.arena.Reset()
}

// Validate walks the whole book and reports every broken invariant in one
// *errors.BaseError. It matches orderbookv1.ErrInvariantViolation with
// errors.Is. It is O(orders + levels) and meant for tests and diagnostics.
func (ob *Orderbook) Validate() error {
	report := errors.NewBaseError()
	violation := func(field, format string, args ...any) {
		report.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf(format, args...),
			string(errors.InvariantViolationError),
			field,
		))
	}

	queued := 0
	for _, ladder := range []*orderbookv1.Ladder{ob.bids, ob.asks} {
		side := ladder.Side()
		if ladder.Len() != ladder.IndexedLen() {
			violation("levels", "%s ladder orders %d prices, indexes %d", side, ladder.Len(), ladder.IndexedLen())
		}

		first := true
		var prev int64
		ladder.Walk(func(limit *orderbookv1.Limit) bool {
			if first {
				if best, _ := ladder.Best(); best != limit.Price {
					violation("best", "%s best %d is not the first level %d", side, best, limit.Price)
				}
			} else if !better(side, prev, limit.Price) {
				violation("price", "%s level %d is out of order after %d", side, limit.Price, prev)
			}
			first = false
			prev = limit.Price

			if limit.IsEmpty() || limit.TotalVolume <= 0 {
				violation("total_volume", "%s level %d is kept with volume %d", side, limit.Price, limit.TotalVolume)
			}
			if err := limit.Validate(); err != nil {
				violation("total_volume", "%s", err.Error())
			}

			limit.Walk(func(h orderbookv1.Handle, o *orderbookv1.Order) bool {
				queued++
				if indexed, ok := ob.orders.Get(o.ID); !ok || indexed != h {
					violation("order_id", "order %d is queued at %s %d but not indexed", o.ID, side, limit.Price)
				}
				return true
			})
			return true
		})
	}

	ob.orders.Range(func(id int64, h orderbookv1.Handle) bool {
		o := ob.arena.Get(h)
		if o == nil {
			violation("order_id", "order %d is indexed to released slot %d", id, h)
			return true
		}
		if o.ID != id {
			violation("order_id", "index key %d points at order %d", id, o.ID)
		}
		if _, ok := ob.ladder(o.Side).Get(o.Price); !ok {
			violation("price", "order %d rests at %s %d which has no level", id, o.Side, o.Price)
		}
		return true
	})

	if queued != ob.orders.Len() {
		violation("order_id", "%d orders queued, %d indexed", queued, ob.orders.Len())
	}
	if ob.arena.Len() != ob.orders.Len() {
		violation("order_id", "%d arena slots live, %d orders indexed", ob.arena.Len(), ob.orders.Len())
	}

	if report.HasDetails() {
		return report
	}
	return nil
}

func (ob *Orderbook) accept(t orderbookv1.EventType) error {
	if !ob.state.Accepts(t) {
		return fmt.Errorf("%w: %s while %s", orderbookv1.ErrBookHalted, t, ob.state)
	}
	return nil
}

func (ob *Orderbook) ladder(side orderbookv1.Side) *orderbookv1.Ladder {
	if side == orderbookv1.SideBid {
		return ob.bids
	}
	return ob.asks
}

// lookup resolves a resting order and its level without changing anything.
func (ob *Orderbook) lookup(id int64) (orderbookv1.Handle, *orderbookv1.Order, *orderbookv1.Limit, error) {
	h, ok := ob.orders.Get(id)
	if !ok {
		return orderbookv1.NilHandle, nil, nil, fmt.Errorf("%w: id=%d", orderbookv1.ErrUnknownOrder, id)
	}

	o := ob.arena.Get(h)
	if o == nil {
		return orderbookv1.NilHandle, nil, nil, fmt.Errorf("%w: order %d is indexed to released slot %d", orderbookv1.ErrInvariantViolation, id, h)
	}

	limit, ok := ob.ladder(o.Side).Get(o.Price)
	if !ok {
		return orderbookv1.NilHandle, nil, nil, fmt.Errorf("%w: order %d rests at %s %d which has no level", orderbookv1.ErrInvariantViolation, id, o.Side, o.Price)
	}

	return h, o, limit, nil
}

// shrinkOrRemove takes quantity off a resting order and reports whether the
// order was removed.
func (ob *Orderbook) shrinkOrRemove(h orderbookv1.Handle, o *orderbookv1.Order, limit *orderbookv1.Limit, quantity int64) bool {
	if quantity >= o.Remaining {
		ob.remove(h, o.ID, limit)
		return true
	}

	limit.Shrink(h, quantity)
	return false
}

func (ob *Orderbook) remove(h orderbookv1.Handle, id int64, limit *orderbookv1.Limit) {
	limit.Remove(h)
	if limit.IsEmpty() {
		ob.ladder(limit.Side).RemoveIfPresent(limit.Price)
	}

	ob.orders.Remove(id)
	ob.arena.Free(h)
}

func better(side orderbookv1.Side, price, than int64) bool {
	if side == orderbookv1.SideBid {
		return price > than
	}
	return price < than
}
