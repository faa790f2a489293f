package util

import (
	"context"
)

type key string

const (
	runIDKey  = key("run-id")
	sourceKey = key("source")
)

// Fields returns a map of the key-value pairs that this library has set into `context`.
func Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["run_id"] = GetRunID(ctx)
	if source := GetSource(ctx); source != "" {
		mapFields["source"] = source
	}

	return mapFields
}

// WithSource returns a context carrying the name of the event source being replayed.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSource returns the event source name from context
// will return empty string if not present
func GetSource(ctx context.Context) string {
	source, _ := ctx.Value(sourceKey).(string)
	return source
}

// GetRunID returns run id from context
// will return empty string if not present
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}
