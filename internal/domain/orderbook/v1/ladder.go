package orderbookv1

import (
	"github.com/google/btree"
	"github.com/muhammadchandra19/bookreplay/pkg/index"
)

const ladderDegree = 32

// Quote is the aggregate resting size at one price. The zero Quote marks a
// level that does not exist.
type Quote struct {
	Price int64 `json:"price"`
	Size  int64 `json:"size"`
}

// Empty reports whether q is the no-liquidity sentinel.
func (q Quote) Empty() bool {
	return q.Size == 0
}

// Level is one row of a depth snapshot: the i-th best bid and ask.
type Level struct {
	Bid Quote `json:"bid"`
	Ask Quote `json:"ask"`
}

// Ladder holds the non-empty price levels of one side of the book.
//
// Prices are kept in a btree ordered best-first (descending for bids,
// ascending for asks), so the best price is the tree minimum and the next
// levels follow in order. The price index gives O(1) access to a Limit by
// price. Both structures always hold the same set of prices.
type Ladder struct {
	side   Side
	prices *btree.BTreeG[int64]
	levels *index.Index[*Limit]
	orders *Arena
}

// NewLadder creates an empty ladder for side. buckets sizes the price index.
func NewLadder(side Side, orders *Arena, buckets int) *Ladder {
	better := func(a, b int64) bool { return a < b }
	if side == SideBid {
		better = func(a, b int64) bool { return a > b }
	}

	return &Ladder{
		side:   side,
		prices: btree.NewG[int64](ladderDegree, better),
		levels: index.New[*Limit](buckets),
		orders: orders,
	}
}

// Side returns the side this ladder holds.
func (l *Ladder) Side() Side {
	return l.side
}

// Get returns the Limit resting at price.
func (l *Ladder) Get(price int64) (*Limit, bool) {
	return l.levels.Get(price)
}

// GetOrCreate returns the Limit at price, creating an empty one when absent.
func (l *Ladder) GetOrCreate(price int64) *Limit {
	if limit, ok := l.levels.Get(price); ok {
		return limit
	}

	limit := NewLimit(price, l.side, l.orders)
	_ = l.levels.Insert(price, limit) // absence checked above
	l.prices.ReplaceOrInsert(price)

	return limit
}

// RemoveIfPresent drops the level at price from both the ordering and the
// index. It reports whether a level was removed.
func (l *Ladder) RemoveIfPresent(price int64) bool {
	if _, ok := l.levels.Remove(price); !ok {
		return false
	}

	l.prices.Delete(price)
	return true
}

// Best returns the best price on this side, or false when the side is empty.
func (l *Ladder) Best() (int64, bool) {
	return l.prices.Min()
}

// TopN returns up to n levels starting from the best price. Every call walks
// the tree afresh.
func (l *Ladder) TopN(n int) []Quote {
	if n <= 0 {
		return nil
	}

	quotes := make([]Quote, 0, min(n, l.prices.Len()))
	l.prices.Ascend(func(price int64) bool {
		limit, _ := l.levels.Get(price)
		quotes = append(quotes, Quote{Price: price, Size: limit.TotalVolume})
		return len(quotes) < n
	})

	return quotes
}

// Walk visits levels from best to worst until fn returns false.
func (l *Ladder) Walk(fn func(limit *Limit) bool) {
	l.prices.Ascend(func(price int64) bool {
		limit, _ := l.levels.Get(price)
		return fn(limit)
	})
}

// Len returns the number of price levels.
func (l *Ladder) Len() int {
	return l.prices.Len()
}

// IndexedLen returns the number of levels in the price index. It equals Len
// unless the ladder is corrupt.
func (l *Ladder) IndexedLen() int {
	return l.levels.Len()
}

// Reset drops every level. Orders are not released.
func (l *Ladder) Reset() {
	l.prices.Clear(false)
	l.levels.Reset()
}
