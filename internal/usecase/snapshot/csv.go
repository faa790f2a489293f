package snapshot

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/shopspring/decimal"
)

// LOBSTER placeholders for a level that does not exist.
const (
	DummyAskPrice int64 = 9999999999
	DummyBidPrice int64 = -9999999999
)

var _ snapshotv1.Sink = (*CSVSink)(nil)

// CSVSink writes snapshots as a LOBSTER orderbook file: one row per event
// with ask price, ask size, bid price and bid size for every level.
type CSVSink struct {
	out   io.Writer
	w     *csv.Writer
	scale int32
	row   []string
}

// CreateCSVSink writes to the file at path, or to stdout when path is "-".
func CreateCSVSink(path string, scale int32) (*CSVSink, error) {
	if path == "-" || path == "" {
		return NewCSVSink(os.Stdout, scale), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewTracer("create orderbook file").Wrap(err)
	}
	return NewCSVSink(f, scale), nil
}

// NewCSVSink writes rows to w. A positive scale renders prices as decimals
// with that many fractional digits.
func NewCSVSink(w io.Writer, scale int32) *CSVSink {
	return &CSVSink{
		out:   w,
		w:     csv.NewWriter(w),
		scale: scale,
	}
}

// Write appends one row and flushes it.
func (s *CSVSink) Write(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	s.row = s.row[:0]
	for _, level := range snapshot.Levels {
		ask, bid := level.Ask, level.Bid
		if ask.Empty() {
			ask = orderbookv1.Quote{Price: DummyAskPrice}
		}
		if bid.Empty() {
			bid = orderbookv1.Quote{Price: DummyBidPrice}
		}

		s.row = append(s.row,
			s.formatPrice(ask.Price), strconv.FormatInt(ask.Size, 10),
			s.formatPrice(bid.Price), strconv.FormatInt(bid.Size, 10),
		)
	}

	if err := s.w.Write(s.row); err != nil {
		return sinkError("csv", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return sinkError("csv", err)
	}
	return nil
}

// Close flushes pending rows and closes the file. Stdout is left open.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return sinkError("csv", err)
	}

	if f, ok := s.out.(*os.File); ok && f == os.Stdout {
		return nil
	}
	if c, ok := s.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *CSVSink) formatPrice(price int64) string {
	if s.scale <= 0 {
		return strconv.FormatInt(price, 10)
	}
	return decimal.New(price, -s.scale).StringFixed(s.scale)
}

func sinkError(sink string, err error) error {
	return fmt.Errorf("%w: %w", errors.NewErrorDetails(fmt.Sprintf("failed to write snapshot to %s", sink), string(errors.SinkWriteError), sink), err)
}
