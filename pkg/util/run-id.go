package util

import (
	"context"

	"github.com/google/uuid"
)

// WithRunID returns a context with a run id.
// It will generate new run id if the provided id is empty.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return context.WithValue(ctx, runIDKey, NewRunID())
	}

	return context.WithValue(ctx, runIDKey, id)
}

// NewRunID returns a uuid-v4 string to use as run id
func NewRunID() string {
	return uuid.NewString()
}
