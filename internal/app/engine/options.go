package engine

import (
	"fmt"
	"strings"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
)

// ErrorPolicy decides what a rejected event does to the run.
type ErrorPolicy string

const (
	// ErrorPolicySkip logs the rejection, leaves the book unchanged and continues.
	ErrorPolicySkip ErrorPolicy = "skip"
	// ErrorPolicyAbort stops the run with the rejection as its error.
	ErrorPolicyAbort ErrorPolicy = "abort"
)

// ParseErrorPolicy parses "skip" or "abort".
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ErrorPolicySkip, ErrorPolicyAbort:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error policy %q", s)
	}
}

// Options represents configuration options for the Engine.
type Options struct {
	// Depth is the number of levels per side in every snapshot.
	Depth       int
	ErrorPolicy ErrorPolicy
	// InitialState is set on the book when a run starts.
	InitialState orderbookv1.State
	// HonorHaltMessages applies trading halt indicators as state changes.
	// When false they are acknowledged and ignored.
	HonorHaltMessages bool
	// EmitRejected writes a snapshot of the unchanged book for skipped
	// events, keeping one output row per input message.
	EmitRejected bool
	// Metrics is optional.
	Metrics *Metrics
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Depth:             10,
		ErrorPolicy:       ErrorPolicySkip,
		InitialState:      orderbookv1.StateTrading,
		HonorHaltMessages: true,
		EmitRejected:      true,
	}
}

func (o *Options) validate() error {
	if o.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", o.Depth)
	}
	if _, err := ParseErrorPolicy(string(o.ErrorPolicy)); err != nil {
		return err
	}
	return nil
}
