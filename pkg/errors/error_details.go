package errors

import stderrors "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "order already exists".
	Message string

	// Code (required) is the error code string, one of the ErrorCode values.
	// E.g. "duplicate_order".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// Is matches any ErrorDetails carrying the same code, so a freshly built
// detail can be compared against a package sentinel.
func (e *ErrorDetails) Is(target error) bool {
	t, ok := target.(*ErrorDetails)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ErrorCodeEquals checks whether a given `error`, or any error it wraps, has a specific code.
func ErrorCodeEquals(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first ErrorDetails found in err's chain.
// Errors without details report GeneralInternalError; nil reports "".
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return details.Code
	}

	return string(GeneralInternalError)
}
