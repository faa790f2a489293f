package snapshot

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	mock "github.com/muhammadchandra19/bookreplay/pkg/questdb/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestInsertSnapshot(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	query, args := insertSnapshot(testSnapshot(), ts)

	assert.Equal(t, "INSERT INTO book_snapshots (ts, sequence, event_time, event_type, level, bid_price, bid_size, ask_price, ask_size, rejected) VALUES "+
		"($1, $2, $3, $4, $5, $6, $7, $8, $9, $10), ($1, $11, $12, $13, $14, $15, $16, $17, $18, $19)", query)
	assert.Equal(t, []any{
		ts,
		int64(3), "34200.1", "new_order", 1, int64(5853300), int64(18), int64(5859400), int64(200), "",
		int64(3), "34200.1", "new_order", 2, int64(0), int64(0), int64(5859500), int64(5), "",
	}, args)
}

func TestQuestDBSink_Write(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		snapshot *snapshotv1.Snapshot
		mockFn   func(m *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:     "success",
			snapshot: testSnapshot(),
			mockFn: func(m *mock.MockQuestDBClient) {
				query, args := insertSnapshot(testSnapshot(), ts)
				m.EXPECT().Exec(gomock.Any(), query, args...).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "error",
			snapshot: testSnapshot(),
			mockFn: func(m *mock.MockQuestDBClient) {
				m.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).Return(stderrors.New("table busy")).AnyTimes()
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.SinkWriteError)))
			},
		},
		{
			name:     "no levels",
			snapshot: &snapshotv1.Snapshot{EventType: orderbookv1.EventDelete},
			mockFn:   func(m *mock.MockQuestDBClient) {},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(client)

			sink := NewQuestDBSink(client, logger.NewNopLogger())
			sink.now = func() time.Time { return ts }

			tc.assertFn(t, sink.Write(context.Background(), tc.snapshot))
		})
	}
}

func TestQuestDBSink_EnsureSchemaAndClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockQuestDBClient(ctrl)
	sink := NewQuestDBSink(client, logger.NewNopLogger())

	client.EXPECT().Exec(gomock.Any(), createSnapshotTable).Return(nil)
	assert.NoError(t, sink.EnsureSchema(context.Background()))

	client.EXPECT().Close()
	assert.NoError(t, sink.Close())
}
