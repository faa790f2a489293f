package orderbookv1

import "github.com/muhammadchandra19/bookreplay/pkg/errors"

// Book errors. Operations wrap them with the offending ids, so match with
// errors.Is and read the code with errors.CodeOf.
var (
	ErrDuplicateOrder     = errors.NewErrorDetails("order already resting", string(errors.DuplicateOrderError), "order_id")
	ErrUnknownOrder       = errors.NewErrorDetails("order not resting", string(errors.UnknownOrderError), "order_id")
	ErrBookHalted         = errors.NewErrorDetails("book state does not accept event", string(errors.BookHaltedError), "state")
	ErrInvariantViolation = errors.NewErrorDetails("book invariant violated", string(errors.InvariantViolationError), "")
	ErrInvalidEvent       = errors.NewErrorDetails("invalid event", string(errors.InvalidEventError), "")
)
