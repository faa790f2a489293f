package eventreader

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	eventreaderv1 "github.com/muhammadchandra19/bookreplay/internal/domain/event-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
)

var _ eventreaderv1.EventReader = (*FileReader)(nil)

// FileReader reads events from a LOBSTER message file. Each row becomes one
// event whose Sequence is the row number.
type FileReader struct {
	source io.Reader
	csv    *csv.Reader
	logger *logger.Logger
	row    int64
}

// OpenFileReader opens the message file at path.
func OpenFileReader(path string, log *logger.Logger) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTracer("open message file").Wrap(err)
	}
	return NewFileReader(f, log), nil
}

// NewFileReader reads messages from r. Close closes r when it is an io.Closer.
func NewFileReader(r io.Reader, log *logger.Logger) *FileReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	return &FileReader{
		source: r,
		csv:    reader,
		logger: log,
	}
}

// ReadEvent returns the next message. A malformed row is reported as
// orderbookv1.ErrInvalidEvent with its row number; the following call reads
// the next row.
func (r *FileReader) ReadEvent(ctx context.Context) (orderbookv1.Event, error) {
	if err := ctx.Err(); err != nil {
		return orderbookv1.Event{}, err
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return orderbookv1.Event{}, io.EOF
	}
	r.row++

	if err != nil {
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			return orderbookv1.Event{}, fmt.Errorf("row %d: %w: %v", r.row, orderbookv1.ErrInvalidEvent, parseErr.Err)
		}

		r.logger.ErrorContext(ctx, err, logger.NewField("row", r.row))
		return orderbookv1.Event{}, fmt.Errorf("%w: %w", errors.NewErrorDetails("failed to read message file", string(errors.SourceReadError), "row"), err)
	}

	event, err := ParseMessage(record)
	if err != nil {
		return orderbookv1.Event{}, fmt.Errorf("row %d: %w", r.row, err)
	}
	event.Sequence = r.row

	return event, nil
}

// Close closes the underlying file.
func (r *FileReader) Close() error {
	if c, ok := r.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
