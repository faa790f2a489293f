package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a limit with resting orders of the given sizes.
func createTestLimit(t *testing.T, price int64, sizes ...int64) (*Limit, []Handle) {
	t.Helper()

	arena := NewArena(len(sizes))
	limit := NewLimit(price, SideBid, arena)

	handles := make([]Handle, 0, len(sizes))
	for i, size := range sizes {
		h := arena.Alloc(Order{ID: int64(i + 1), Side: SideBid, Price: price, Remaining: size})
		limit.Add(h)
		handles = append(handles, h)
	}

	require.NoError(t, limit.Validate())
	return limit, handles
}

func TestNewLimit(t *testing.T) {
	limit := NewLimit(100, SideAsk, NewArena(0))

	assert.NotNil(t, limit)
	assert.Equal(t, int64(100), limit.Price)
	assert.Equal(t, SideAsk, limit.Side)
	assert.Equal(t, int64(0), limit.TotalVolume)
	assert.True(t, limit.IsEmpty())
	assert.Equal(t, 0, limit.OrderCount())

	_, ok := limit.Front()
	assert.False(t, ok)
}

func TestLimit_Add(t *testing.T) {
	limit, handles := createTestLimit(t, 100, 10, 20, 30)

	assert.Equal(t, int64(60), limit.TotalVolume)
	assert.Equal(t, 3, limit.OrderCount())
	assert.Equal(t, []int64{1, 2, 3}, limit.OrderIDs())

	front, ok := limit.Front()
	require.True(t, ok)
	assert.Equal(t, handles[0], front)
}

func TestLimit_Remove(t *testing.T) {
	testCases := []struct {
		name      string
		remove    int
		remaining []int64
		volume    int64
	}{
		{name: "head", remove: 0, remaining: []int64{2, 3}, volume: 50},
		{name: "middle", remove: 1, remaining: []int64{1, 3}, volume: 40},
		{name: "tail", remove: 2, remaining: []int64{1, 2}, volume: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limit, handles := createTestLimit(t, 100, 10, 20, 30)

			limit.Remove(handles[tc.remove])

			assert.Equal(t, tc.remaining, limit.OrderIDs())
			assert.Equal(t, tc.volume, limit.TotalVolume)
			assert.Equal(t, 2, limit.OrderCount())
			assert.NoError(t, limit.Validate())
		})
	}

	t.Run("last order empties the limit", func(t *testing.T) {
		limit, handles := createTestLimit(t, 100, 10)

		limit.Remove(handles[0])

		assert.True(t, limit.IsEmpty())
		assert.Equal(t, int64(0), limit.TotalVolume)
		assert.NoError(t, limit.Validate())
	})
}

func TestLimit_ShrinkKeepsPriority(t *testing.T) {
	limit, handles := createTestLimit(t, 100, 10, 20)

	limit.Shrink(handles[0], 4)

	assert.Equal(t, int64(26), limit.TotalVolume)
	assert.Equal(t, []int64{1, 2}, limit.OrderIDs())
	assert.Equal(t, int64(6), limit.orders.Get(handles[0]).Remaining)
	assert.NoError(t, limit.Validate())
}

func TestLimit_Walk(t *testing.T) {
	limit, _ := createTestLimit(t, 100, 1, 2, 3)

	var visited []int64
	limit.Walk(func(_ Handle, o *Order) bool {
		visited = append(visited, o.ID)
		return o.ID < 2
	})

	assert.Equal(t, []int64{1, 2}, visited)
}

func TestLimit_Validate(t *testing.T) {
	t.Run("volume mismatch", func(t *testing.T) {
		limit, _ := createTestLimit(t, 100, 10, 20)
		limit.TotalVolume = 31

		err := limit.Validate()
		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Contains(t, err.Error(), "volume mismatch")
	})

	t.Run("order at wrong price", func(t *testing.T) {
		limit, handles := createTestLimit(t, 100, 10)
		limit.orders.Get(handles[0]).Price = 99

		assert.ErrorIs(t, limit.Validate(), ErrInvariantViolation)
	})

	t.Run("released order still linked", func(t *testing.T) {
		limit, handles := createTestLimit(t, 100, 10, 20)
		limit.orders.Free(handles[1])

		assert.ErrorIs(t, limit.Validate(), ErrInvariantViolation)
	})
}
