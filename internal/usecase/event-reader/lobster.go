package eventreader

import (
	"fmt"
	"strconv"
	"strings"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
)

// messageFields is the column count of a LOBSTER message file:
// time, type, order id, size, price, direction.
const messageFields = 6

// ParseMessage decodes one row of a LOBSTER message file. Sequence is left
// for the caller to assign.
func ParseMessage(record []string) (orderbookv1.Event, error) {
	if len(record) < messageFields {
		return orderbookv1.Event{}, fmt.Errorf("%w: expected %d fields, got %d", orderbookv1.ErrInvalidEvent, messageFields, len(record))
	}

	var values [messageFields - 1]int64
	for i, column := range []string{"type", "order id", "size", "price", "direction"} {
		v, err := strconv.ParseInt(strings.TrimSpace(record[i+1]), 10, 64)
		if err != nil {
			return orderbookv1.Event{}, fmt.Errorf("%w: %s %q is not an integer", orderbookv1.ErrInvalidEvent, column, record[i+1])
		}
		values[i] = v
	}

	event := orderbookv1.Event{
		Timestamp: strings.TrimSpace(record[0]),
		Type:      orderbookv1.EventType(values[0]),
		OrderID:   values[1],
		Quantity:  values[2],
		Price:     values[3],
	}

	if !event.Type.Valid() {
		return orderbookv1.Event{}, fmt.Errorf("%w: unknown message type %d", orderbookv1.ErrInvalidEvent, values[0])
	}

	side, err := orderbookv1.ParseSide(values[4])
	switch {
	case err == nil:
		event.Side = side
	case event.Type == orderbookv1.EventNewOrder || event.Type == orderbookv1.EventExecuteHidden:
		return orderbookv1.Event{}, err
	}

	return event, nil
}

// FormatMessage encodes an event as a LOBSTER message-file row.
func FormatMessage(event orderbookv1.Event) []string {
	return []string{
		event.Timestamp,
		strconv.Itoa(int(event.Type)),
		strconv.FormatInt(event.OrderID, 10),
		strconv.FormatInt(event.Quantity, 10),
		strconv.FormatInt(event.Price, 10),
		strconv.Itoa(int(event.Side)),
	}
}
