package orderbook

import (
	"math/rand/v2"
	"sort"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a small trading book
func newTestOrderbook(t testing.TB) *Orderbook {
	t.Helper()

	ob := NewOrderbookWithOptions(Options{OrderBuckets: 64, LevelBuckets: 16})
	ob.SetState(orderbookv1.StateTrading)
	return ob
}

func bidQuote(levels []orderbookv1.Level, i int) orderbookv1.Quote {
	return levels[i].Bid
}

func askQuote(levels []orderbookv1.Level, i int) orderbookv1.Quote {
	return levels[i].Ask
}

func TestNewOrderbook(t *testing.T) {
	ob := NewOrderbook()

	assert.NotNil(t, ob)
	assert.Equal(t, orderbookv1.StateHalted, ob.State())
	assert.Equal(t, 0, ob.OrderCount())
	assert.Equal(t, 0, ob.Depth(orderbookv1.SideBid))
	assert.Equal(t, 0, ob.Depth(orderbookv1.SideAsk))
	assert.NoError(t, ob.Validate())

	err := ob.AddOrder(1, orderbookv1.SideBid, 100, 10)
	assert.ErrorIs(t, err, orderbookv1.ErrBookHalted, "a new book starts halted")
}

// Scenario A: a single bid shows up as the best level
func TestOrderbook_ScenarioA(t *testing.T) {
	ob := newTestOrderbook(t)

	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 50))

	levels := ob.Snapshot(1)
	require.Len(t, levels, 1)
	assert.Equal(t, orderbookv1.Quote{Price: 100, Size: 50}, bidQuote(levels, 0))
	assert.True(t, askQuote(levels, 0).Empty())
	assert.NoError(t, ob.Validate())
}

// Scenario B: deleting the head keeps the level with the remaining order
func TestOrderbook_ScenarioB(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 50))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideBid, 100, 30))

	require.NoError(t, ob.DeleteOrder(1))

	assert.Equal(t, orderbookv1.Quote{Price: 100, Size: 30}, bidQuote(ob.Snapshot(1), 0))
	_, ok := ob.GetOrder(1)
	assert.False(t, ok)

	view, ok := ob.GetLimit(orderbookv1.SideBid, 100)
	require.True(t, ok)
	assert.Equal(t, []int64{2}, view.OrderIDs)
	assert.NoError(t, ob.Validate())
}

// Scenario C: emptying the only level leaves no best bid
func TestOrderbook_ScenarioC(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 50))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideBid, 100, 30))
	require.NoError(t, ob.DeleteOrder(1))

	require.NoError(t, ob.DeleteOrder(2))

	_, ok := ob.BestBid()
	assert.False(t, ok)
	assert.Equal(t, 0, ob.Depth(orderbookv1.SideBid))
	assert.True(t, bidQuote(ob.Snapshot(1), 0).Empty())
	assert.NoError(t, ob.Validate())
}

// Scenario D: a full visible execution removes the order
func TestOrderbook_ScenarioD(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(3, orderbookv1.SideAsk, 200, 10))

	trade, err := ob.ExecuteOrder(3, 10)

	require.NoError(t, err)
	assert.Equal(t, &orderbookv1.Trade{
		Type:     orderbookv1.EventExecuteVisible,
		OrderID:  3,
		Side:     orderbookv1.SideAsk,
		Price:    200,
		Quantity: 10,
		Filled:   true,
	}, trade)
	assert.Equal(t, 0, ob.Depth(orderbookv1.SideAsk))
	assert.Equal(t, 0, ob.OrderCount())
	assert.NoError(t, ob.Validate())
}

// Scenario E: a partial cancellation shrinks the order and its level
func TestOrderbook_ScenarioE(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(4, orderbookv1.SideBid, 100, 20))

	require.NoError(t, ob.CancelOrder(4, 5))

	order, ok := ob.GetOrder(4)
	require.True(t, ok)
	assert.Equal(t, int64(15), order.Remaining)
	assert.Equal(t, orderbookv1.Quote{Price: 100, Size: 15}, bidQuote(ob.Snapshot(1), 0))
	assert.NoError(t, ob.Validate())
}

// Scenario F: a hidden execution never touches the book
func TestOrderbook_ScenarioF(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 50))
	before := ob.Snapshot(5)

	trade, err := ob.ExecuteHidden(99, orderbookv1.SideAsk, 101, 7)

	require.NoError(t, err)
	assert.True(t, trade.IsHidden())
	assert.Equal(t, int64(7), trade.Quantity)
	assert.Equal(t, before, ob.Snapshot(5))
	assert.Equal(t, 1, ob.OrderCount())
}

func TestOrderbook_ExecuteHidden_VisibleIDIsViolation(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 50))

	_, err := ob.ExecuteHidden(1, orderbookv1.SideBid, 100, 5)

	assert.ErrorIs(t, err, orderbookv1.ErrInvariantViolation)
	assert.Equal(t, string(errors.InvariantViolationError), errors.CodeOf(err))
}

func TestOrderbook_PartialExecutionKeepsPriority(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideAsk, 200, 10))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideAsk, 200, 5))

	trade, err := ob.ExecuteOrder(1, 4)

	require.NoError(t, err)
	assert.False(t, trade.Filled)
	view, ok := ob.GetLimit(orderbookv1.SideAsk, 200)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, view.OrderIDs)
	assert.Equal(t, int64(11), view.TotalVolume)
	assert.NoError(t, ob.Validate())
}

func TestOrderbook_OverfillRemovesOrder(t *testing.T) {
	testCases := []struct {
		name  string
		apply func(ob *Orderbook) error
	}{
		{
			name:  "cancel more than resting",
			apply: func(ob *Orderbook) error { return ob.CancelOrder(1, 15) },
		},
		{
			name: "execute more than resting",
			apply: func(ob *Orderbook) error {
				trade, err := ob.ExecuteOrder(1, 15)
				if err == nil {
					assert.True(t, trade.Filled)
				}
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := newTestOrderbook(t)
			require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
			require.NoError(t, ob.AddOrder(2, orderbookv1.SideBid, 100, 5))

			require.NoError(t, tc.apply(ob))

			_, ok := ob.GetOrder(1)
			assert.False(t, ok)
			assert.Equal(t, orderbookv1.Quote{Price: 100, Size: 5}, bidQuote(ob.Snapshot(1), 0))
			assert.NoError(t, ob.Validate())
		})
	}
}

func TestOrderbook_BestPriceAfterRemovingBest(t *testing.T) {
	ob := newTestOrderbook(t)
	for i, price := range []int64{100, 103, 101, 102} {
		require.NoError(t, ob.AddOrder(int64(i+1), orderbookv1.SideBid, price, 10))
		require.NoError(t, ob.AddOrder(int64(i+11), orderbookv1.SideAsk, price+10, 10))
	}

	require.NoError(t, ob.DeleteOrder(2))  // bid 103
	require.NoError(t, ob.DeleteOrder(11)) // ask 110

	bid, ok := ob.BestBid()
	require.True(t, ok)
	assert.Equal(t, int64(102), bid)

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.Equal(t, int64(111), ask)

	levels := ob.Snapshot(4)
	assert.Equal(t, []orderbookv1.Quote{{Price: 102, Size: 10}, {Price: 101, Size: 10}, {Price: 100, Size: 10}, {}},
		[]orderbookv1.Quote{levels[0].Bid, levels[1].Bid, levels[2].Bid, levels[3].Bid})
	assert.Equal(t, []orderbookv1.Quote{{Price: 111, Size: 10}, {Price: 112, Size: 10}, {Price: 113, Size: 10}, {}},
		[]orderbookv1.Quote{levels[0].Ask, levels[1].Ask, levels[2].Ask, levels[3].Ask})
}

func TestOrderbook_SnapshotIsIdempotent(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideAsk, 105, 3))

	first := ob.Snapshot(3)
	second := ob.Snapshot(3)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.Empty(t, ob.Snapshot(0))
}

func TestOrderbook_FailuresLeaveBookUnchanged(t *testing.T) {
	testCases := []struct {
		name string
		code errors.ErrorCode
		run  func(ob *Orderbook) error
	}{
		{
			name: "duplicate id",
			code: errors.DuplicateOrderError,
			run:  func(ob *Orderbook) error { return ob.AddOrder(1, orderbookv1.SideAsk, 300, 1) },
		},
		{
			name: "zero quantity",
			code: errors.InvalidEventError,
			run:  func(ob *Orderbook) error { return ob.AddOrder(9, orderbookv1.SideBid, 100, 0) },
		},
		{
			name: "negative price",
			code: errors.InvalidEventError,
			run:  func(ob *Orderbook) error { return ob.AddOrder(9, orderbookv1.SideBid, -5, 1) },
		},
		{
			name: "invalid side",
			code: errors.InvalidEventError,
			run:  func(ob *Orderbook) error { return ob.AddOrder(9, orderbookv1.Side(0), 100, 1) },
		},
		{
			name: "cancel unknown",
			code: errors.UnknownOrderError,
			run:  func(ob *Orderbook) error { return ob.CancelOrder(42, 1) },
		},
		{
			name: "cancel non-positive",
			code: errors.InvalidEventError,
			run:  func(ob *Orderbook) error { return ob.CancelOrder(1, 0) },
		},
		{
			name: "delete unknown",
			code: errors.UnknownOrderError,
			run:  func(ob *Orderbook) error { return ob.DeleteOrder(42) },
		},
		{
			name: "execute unknown",
			code: errors.UnknownOrderError,
			run: func(ob *Orderbook) error {
				_, err := ob.ExecuteOrder(42, 1)
				return err
			},
		},
		{
			name: "halt indicator through Apply",
			code: errors.InvalidEventError,
			run: func(ob *Orderbook) error {
				_, err := ob.Apply(orderbookv1.Event{Type: orderbookv1.EventTradingHalt, Price: -1})
				return err
			},
		},
		{
			name: "unknown event type",
			code: errors.InvalidEventError,
			run: func(ob *Orderbook) error {
				_, err := ob.Apply(orderbookv1.Event{Type: orderbookv1.EventType(12)})
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := newTestOrderbook(t)
			require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
			require.NoError(t, ob.AddOrder(2, orderbookv1.SideAsk, 101, 10))
			before := ob.Snapshot(5)

			err := tc.run(ob)

			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, string(tc.code)), "got %v", err)
			assert.Equal(t, before, ob.Snapshot(5))
			assert.Equal(t, 2, ob.OrderCount())
			assert.Equal(t, orderbookv1.StateTrading, ob.State())
			assert.NoError(t, ob.Validate())
		})
	}
}

func TestOrderbook_StateGating(t *testing.T) {
	events := []orderbookv1.Event{
		{Type: orderbookv1.EventNewOrder, OrderID: 10, Side: orderbookv1.SideBid, Price: 99, Quantity: 1},
		{Type: orderbookv1.EventCancel, OrderID: 1, Quantity: 1},
		{Type: orderbookv1.EventDelete, OrderID: 1},
		{Type: orderbookv1.EventExecuteVisible, OrderID: 1, Quantity: 1},
		{Type: orderbookv1.EventExecuteHidden, OrderID: 77, Side: orderbookv1.SideAsk, Price: 101, Quantity: 1},
		{Type: orderbookv1.EventCrossTrade, OrderID: -1, Side: orderbookv1.SideAsk, Price: 100, Quantity: 1},
	}

	for _, state := range []orderbookv1.State{orderbookv1.StateHalted, orderbookv1.StateQuoting, orderbookv1.StateTrading} {
		for _, event := range events {
			t.Run(state.String()+"/"+event.Type.String(), func(t *testing.T) {
				ob := newTestOrderbook(t)
				require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
				ob.SetState(state)

				_, err := ob.Apply(event)

				if state.Accepts(event.Type) {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, orderbookv1.ErrBookHalted)
					_, ok := ob.GetOrder(1)
					assert.True(t, ok)
				}
				assert.NoError(t, ob.Validate())
			})
		}
	}
}

func TestOrderbook_ApplyCrossTrade(t *testing.T) {
	ob := newTestOrderbook(t)

	trade, err := ob.Apply(orderbookv1.Event{
		Type:     orderbookv1.EventCrossTrade,
		OrderID:  -1,
		Side:     orderbookv1.SideBid,
		Price:    1000,
		Quantity: 250,
	})

	require.NoError(t, err)
	assert.Equal(t, orderbookv1.EventCrossTrade, trade.Type)
	assert.Equal(t, int64(250), trade.Quantity)
	assert.Equal(t, 0, ob.OrderCount())
}

func TestOrderbook_Reset(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideAsk, 101, 10))

	ob.Reset()

	assert.Equal(t, 0, ob.OrderCount())
	assert.Equal(t, 0, ob.Depth(orderbookv1.SideBid))
	assert.Equal(t, orderbookv1.StateTrading, ob.State())
	assert.NoError(t, ob.Validate())
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10), "ids are reusable after reset")
}

func TestOrderbook_ValidateReportsCorruption(t *testing.T) {
	ob := newTestOrderbook(t)
	require.NoError(t, ob.AddOrder(1, orderbookv1.SideBid, 100, 10))
	require.NoError(t, ob.AddOrder(2, orderbookv1.SideBid, 100, 5))

	limit, ok := ob.bids.Get(100)
	require.True(t, ok)
	limit.TotalVolume = 99
	ob.orders.Remove(2)

	err := ob.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, orderbookv1.ErrInvariantViolation)

	var report *errors.BaseError
	require.ErrorAs(t, err, &report)
	assert.GreaterOrEqual(t, len(report.GetDetails()), 2)
	assert.True(t, report.IsAllCodeEqual(string(errors.InvariantViolationError)))
}

func TestOrderbook_ValidateMultiLevelBook(t *testing.T) {
	type order struct {
		id          int64
		side        orderbookv1.Side
		price, size int64
	}

	testCases := []struct {
		name    string
		orders  []order
		mutate  func(t *testing.T, ob *Orderbook)
		wantBid []int64
		wantAsk []int64
	}{
		{
			name: "two levels per side",
			orders: []order{
				{1, orderbookv1.SideBid, 100, 10},
				{2, orderbookv1.SideBid, 99, 10},
				{3, orderbookv1.SideAsk, 101, 10},
				{4, orderbookv1.SideAsk, 102, 10},
			},
			wantBid: []int64{100, 99},
			wantAsk: []int64{101, 102},
		},
		{
			name: "levels added out of price order",
			orders: []order{
				{1, orderbookv1.SideBid, 98, 5},
				{2, orderbookv1.SideBid, 100, 5},
				{3, orderbookv1.SideBid, 99, 5},
				{4, orderbookv1.SideAsk, 103, 5},
				{5, orderbookv1.SideAsk, 101, 5},
			},
			wantBid: []int64{100, 99, 98},
			wantAsk: []int64{101, 103},
		},
		{
			name: "partial execution on a deep book",
			orders: []order{
				{1, orderbookv1.SideBid, 100, 10},
				{2, orderbookv1.SideBid, 99, 10},
				{3, orderbookv1.SideAsk, 101, 10},
				{4, orderbookv1.SideAsk, 102, 10},
			},
			mutate: func(t *testing.T, ob *Orderbook) {
				_, err := ob.ExecuteOrder(1, 4)
				require.NoError(t, err)
				require.NoError(t, ob.DeleteOrder(3))
			},
			wantBid: []int64{100, 99},
			wantAsk: []int64{102},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := newTestOrderbook(t)
			for _, o := range tc.orders {
				require.NoError(t, ob.AddOrder(o.id, o.side, o.price, o.size))
			}
			if tc.mutate != nil {
				tc.mutate(t, ob)
			}

			assert.NoError(t, ob.Validate())

			levels := ob.Snapshot(len(tc.orders))
			var bids, asks []int64
			for _, level := range levels {
				if !level.Bid.Empty() {
					bids = append(bids, level.Bid.Price)
				}
				if !level.Ask.Empty() {
					asks = append(asks, level.Ask.Price)
				}
			}
			assert.Equal(t, tc.wantBid, bids)
			assert.Equal(t, tc.wantAsk, asks)
		})
	}
}

// model is a naive reference book: a map of resting orders aggregated on demand.
type model map[int64]orderbookv1.Order

func (m model) levels(side orderbookv1.Side) []orderbookv1.Quote {
	volume := map[int64]int64{}
	for _, o := range m {
		if o.Side == side {
			volume[o.Price] += o.Remaining
		}
	}

	quotes := make([]orderbookv1.Quote, 0, len(volume))
	for price, size := range volume {
		quotes = append(quotes, orderbookv1.Quote{Price: price, Size: size})
	}
	sort.Slice(quotes, func(i, j int) bool {
		if side == orderbookv1.SideBid {
			return quotes[i].Price > quotes[j].Price
		}
		return quotes[i].Price < quotes[j].Price
	})
	return quotes
}

func TestOrderbook_RandomizedAgainstModel(t *testing.T) {
	const (
		steps = 5000
		ids   = 200
		depth = 64
	)

	r := rand.New(rand.NewPCG(7, 11))
	ob := newTestOrderbook(t)
	ref := model{}

	for step := 0; step < steps; step++ {
		id := int64(r.IntN(ids) + 1)
		qty := int64(r.IntN(20) + 1)

		var err error
		switch r.IntN(4) {
		case 0:
			side := orderbookv1.SideBid
			price := int64(90 + r.IntN(10))
			if r.IntN(2) == 0 {
				side = orderbookv1.SideAsk
				price += 15
			}
			err = ob.AddOrder(id, side, price, qty)
			if _, live := ref[id]; !live {
				require.NoError(t, err, "step %d", step)
				ref[id] = orderbookv1.Order{ID: id, Side: side, Price: price, Remaining: qty}
			}
		case 1:
			err = ob.CancelOrder(id, qty)
			if o, live := ref[id]; live {
				require.NoError(t, err, "step %d", step)
				if o.Remaining <= qty {
					delete(ref, id)
				} else {
					o.Remaining -= qty
					ref[id] = o
				}
			}
		case 2:
			err = ob.DeleteOrder(id)
			if _, live := ref[id]; live {
				require.NoError(t, err, "step %d", step)
				delete(ref, id)
			}
		case 3:
			_, err = ob.ExecuteOrder(id, qty)
			if o, live := ref[id]; live {
				require.NoError(t, err, "step %d", step)
				if o.Remaining <= qty {
					delete(ref, id)
				} else {
					o.Remaining -= qty
					ref[id] = o
				}
			}
		}

		if _, live := ref[id]; !live && err != nil {
			assert.True(t,
				errors.ErrorCodeEquals(err, string(errors.UnknownOrderError)) ||
					errors.ErrorCodeEquals(err, string(errors.DuplicateOrderError)),
				"step %d: %v", step, err)
		}

		require.NoError(t, ob.Validate(), "step %d", step)
		require.Equal(t, len(ref), ob.OrderCount(), "step %d", step)
	}

	levels := ob.Snapshot(depth)
	bids, asks := ref.levels(orderbookv1.SideBid), ref.levels(orderbookv1.SideAsk)
	for i := 0; i < depth; i++ {
		var wantBid, wantAsk orderbookv1.Quote
		if i < len(bids) {
			wantBid = bids[i]
		}
		if i < len(asks) {
			wantAsk = asks[i]
		}
		assert.Equal(t, wantBid, levels[i].Bid, "bid level %d", i)
		assert.Equal(t, wantAsk, levels[i].Ask, "ask level %d", i)
	}
}

func BenchmarkOrderbook_Apply(b *testing.B) {
	ob := NewOrderbook()
	ob.SetState(orderbookv1.StateTrading)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int64(i)
		side := orderbookv1.SideBid
		price := int64(10_000 - i%50)
		if i%2 == 1 {
			side = orderbookv1.SideAsk
			price = int64(10_100 + i%50)
		}

		_, _ = ob.Apply(orderbookv1.Event{Type: orderbookv1.EventNewOrder, OrderID: id, Side: side, Price: price, Quantity: 100})
		_, _ = ob.Apply(orderbookv1.Event{Type: orderbookv1.EventExecuteVisible, OrderID: id, Quantity: 40})
		_ = ob.Snapshot(10)
		_, _ = ob.Apply(orderbookv1.Event{Type: orderbookv1.EventDelete, OrderID: id})
	}
}
