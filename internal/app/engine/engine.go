package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	eventreaderv1 "github.com/muhammadchandra19/bookreplay/internal/domain/event-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/bookreplay/pkg/errors"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/muhammadchandra19/bookreplay/pkg/util"
)

// ErrAlreadyStarted is returned when Start is called on a running or
// finished engine.
var ErrAlreadyStarted = stderrors.New("engine already started")

// Stats counts what a run has done so far.
type Stats struct {
	// Processed counts every event read, rejected ones included.
	Processed int64 `json:"processed"`
	Rejected  int64 `json:"rejected"`
	Trades    int64 `json:"trades"`
	Snapshots int64 `json:"snapshots"`
}

// Engine replays an event stream into an order book and writes one snapshot
// per event to the sink.
type Engine struct {
	orderbook orderbookv1.Orderbook
	reader    eventreaderv1.EventReader
	sink      snapshotv1.Sink
	logger    *logger.Logger
	options   *Options

	mu    sync.RWMutex
	stats Stats
	err   error

	// lastSequence is the position of the last event handled.
	lastSequence int64

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new instance of Engine with the default options.
func NewEngine(
	orderbook orderbookv1.Orderbook,
	reader eventreaderv1.EventReader,
	sink snapshotv1.Sink,
	logger *logger.Logger,
) *Engine {
	return NewEngineWithOptions(orderbook, reader, sink, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	orderbook orderbookv1.Orderbook,
	reader eventreaderv1.EventReader,
	sink snapshotv1.Sink,
	logger *logger.Logger,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}

	return &Engine{
		orderbook: orderbook,
		reader:    reader,
		sink:      sink,
		logger:    logger,
		options:   options,
		done:      make(chan struct{}),
	}
}

// Run replays events until the reader reports io.EOF, ctx is cancelled or a
// fatal error occurs. The end of the stream is not an error.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.options.validate(); err != nil {
		return errors.NewTracer("invalid engine options").Wrap(err)
	}

	if util.GetRunID(ctx) == "" {
		ctx = util.WithRunID(ctx, "")
	}

	e.orderbook.SetState(e.options.InitialState)
	e.logger.InfoContext(ctx, "Replay started",
		logger.NewField("depth", e.options.Depth),
		logger.NewField("error_policy", string(e.options.ErrorPolicy)),
		logger.NewField("initial_state", e.options.InitialState.String()),
	)

	for {
		event, err := e.reader.ReadEvent(ctx)
		if err != nil {
			switch {
			case stderrors.Is(err, io.EOF):
				stats := e.Stats()
				e.logger.InfoContext(ctx, "Replay finished",
					logger.NewField("processed", stats.Processed),
					logger.NewField("rejected", stats.Rejected),
					logger.NewField("trades", stats.Trades),
				)
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			case stderrors.Is(err, orderbookv1.ErrInvalidEvent):
				// The row could not be decoded. It takes the position
				// after the last one seen.
				event = orderbookv1.Event{Sequence: e.nextSequence()}
				if err := e.handle(ctx, event, nil, err); err != nil {
					return err
				}
				continue
			default:
				return errors.NewTracer("read event").Wrap(err)
			}
		}

		if event.Sequence == 0 {
			event.Sequence = e.nextSequence()
		}

		start := time.Now()
		trade, applyErr := e.apply(event)
		e.options.Metrics.observeApply(time.Since(start))

		if err := e.handle(ctx, event, trade, applyErr); err != nil {
			return err
		}
	}
}

// apply changes the book for one decoded event.
func (e *Engine) apply(event orderbookv1.Event) (*orderbookv1.Trade, error) {
	if event.Type != orderbookv1.EventTradingHalt {
		return e.orderbook.Apply(event)
	}

	state, ok := event.HaltState()
	if !ok {
		return nil, fmt.Errorf("%w: halt indicator %d", orderbookv1.ErrInvalidEvent, event.Price)
	}
	if e.options.HonorHaltMessages {
		e.orderbook.SetState(state)
	}
	return nil, nil
}

// handle records the outcome of one event and writes its snapshot.
func (e *Engine) handle(ctx context.Context, event orderbookv1.Event, trade *orderbookv1.Trade, applyErr error) error {
	e.mu.Lock()
	e.lastSequence = event.Sequence
	e.mu.Unlock()

	snapshot := &snapshotv1.Snapshot{
		Sequence:  event.Sequence,
		Timestamp: event.Timestamp,
		EventType: event.Type,
	}

	if applyErr != nil {
		code := errors.CodeOf(applyErr)
		e.record(func(s *Stats) {
			s.Processed++
			s.Rejected++
		})
		e.options.Metrics.rejected(code)
		e.logger.WarnContext(ctx, "Event rejected",
			logger.NewField("sequence", event.Sequence),
			logger.NewField("type", event.Type.String()),
			logger.NewField("order_id", event.OrderID),
			logger.NewField("code", code),
			logger.NewField("error", applyErr.Error()),
		)

		if e.options.ErrorPolicy == ErrorPolicyAbort {
			return errors.NewTracer(fmt.Sprintf("event %d rejected", event.Sequence)).Wrap(applyErr)
		}
		if !e.options.EmitRejected {
			return nil
		}
		snapshot.Rejected = code
	} else {
		e.record(func(s *Stats) {
			s.Processed++
			if trade != nil {
				s.Trades++
			}
		})
		e.options.Metrics.processed(event.Type, trade)
		e.logger.DebugContext(ctx, "Event applied",
			logger.NewField("sequence", event.Sequence),
			logger.NewField("type", event.Type.String()),
			logger.NewField("order_id", event.OrderID),
		)
		snapshot.Trade = trade
	}

	snapshot.State = e.orderbook.State()
	snapshot.Levels = e.orderbook.Snapshot(e.options.Depth)

	if err := e.sink.Write(ctx, snapshot); err != nil {
		e.logger.ErrorContext(ctx, err, logger.NewField("sequence", event.Sequence))
		return errors.NewTracer(fmt.Sprintf("write snapshot %d", event.Sequence)).Wrap(err)
	}

	e.record(func(s *Stats) { s.Snapshots++ })
	e.options.Metrics.book(e.orderbook)
	return nil
}

func (e *Engine) nextSequence() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSequence + 1
}

func (e *Engine) record(fn func(*Stats)) {
	e.mu.Lock()
	fn(&e.stats)
	e.mu.Unlock()
}

// Stats returns a copy of the run counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// Start runs the replay in the background. Use Done and Err to follow it.
// An engine can be started once.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.cancel != nil {
		e.mu.Unlock()
		return errors.NewTracer("start engine").Wrap(ErrAlreadyStarted)
	}
	ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	go func() {
		defer close(e.done)

		err := e.Run(ctx)
		if stderrors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			e.logger.ErrorContext(ctx, err)
		}

		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
	}()

	return nil
}

// Stop cancels a started replay and waits for it to finish.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.RLock()
	cancel := e.cancel
	e.mu.RUnlock()
	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-e.done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Done is closed when a started replay finishes.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Err returns the error that ended a started replay, or nil.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}
