package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/bookreplay/internal/app/engine"
	eventreaderv1 "github.com/muhammadchandra19/bookreplay/internal/domain/event-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/bookreplay/internal/domain/snapshot/v1"
	eventreader "github.com/muhammadchandra19/bookreplay/internal/usecase/event-reader"
	"github.com/muhammadchandra19/bookreplay/internal/usecase/orderbook"
	"github.com/muhammadchandra19/bookreplay/internal/usecase/snapshot"
	"github.com/muhammadchandra19/bookreplay/pkg/config"
	"github.com/muhammadchandra19/bookreplay/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/muhammadchandra19/bookreplay/pkg/questdb"
	"github.com/muhammadchandra19/bookreplay/pkg/redis"
	"github.com/muhammadchandra19/bookreplay/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "bookreplay"

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.Log)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	if err := run(); err != nil {
		log.Error(err, logger.NewField("action", "replay"))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = util.WithRunID(ctx, "")
	ctx = util.WithSource(ctx, cfg.Source)

	options, err := engineOptions(cfg.Book)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error(err, logger.NewField("action", "close_reader"))
		}
	}()

	sink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error(err, logger.NewField("action", "close_sink"))
		}
	}()

	ob := orderbook.NewOrderbookWithOptions(orderbook.Options{
		OrderBuckets: cfg.Book.IndexBuckets,
		LevelBuckets: cfg.Book.LevelBuckets,
	})

	var registry *prometheus.Registry
	if cfg.Metrics != "" {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		options.Metrics = app.NewMetrics(metricsNamespace, registry)
	}

	engine := app.NewEngineWithOptions(ob, reader, sink, log, options)

	if registry != nil {
		server := serveMetrics(cfg.Metrics, engine, registry)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error(err, logger.NewField("action", "stop_metrics_server"))
			}
		}()
	}

	if err := engine.Start(ctx); err != nil {
		return err
	}

	log.InfoContext(ctx, "Book replay started",
		logger.NewField("source", cfg.Source),
		logger.NewField("sinks", cfg.Sinks),
	)

	select {
	case <-engine.Done():
	case <-ctx.Done():
		log.Info("Received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := engine.Stop(shutdownCtx); err != nil {
			log.Error(err, logger.NewField("action", "stop_engine"))
		}
	}

	stats := engine.Stats()
	log.Info("Book replay complete",
		logger.NewField("processed", stats.Processed),
		logger.NewField("rejected", stats.Rejected),
		logger.NewField("trades", stats.Trades),
		logger.NewField("snapshots", stats.Snapshots),
	)

	return engine.Err()
}

func engineOptions(book config.BookConfig) (*app.Options, error) {
	policy, err := app.ParseErrorPolicy(book.ErrorPolicy)
	if err != nil {
		return nil, err
	}
	state, err := orderbookv1.ParseState(book.InitialState)
	if err != nil {
		return nil, err
	}

	options := app.DefaultEngineOptions()
	options.Depth = book.Depth
	options.ErrorPolicy = policy
	options.InitialState = state
	options.HonorHaltMessages = book.HonorHalt
	options.EmitRejected = book.EmitRejected
	return options, nil
}

func newReader(ctx context.Context, cfg *config.Config) (eventreaderv1.EventReader, error) {
	switch cfg.Source {
	case "file":
		if cfg.Input == "" {
			return nil, stderrors.New("INPUT_PATH is required for the file source")
		}
		return eventreader.OpenFileReader(cfg.Input, log)
	case "kafka":
		log.InfoContext(ctx, "Reading events from kafka",
			logger.NewField("brokers", cfg.Kafka.Brokers),
			logger.NewField("topic", cfg.Kafka.EventTopic),
		)
		return eventreader.NewKafkaReader(cfg.Kafka, log)
	default:
		return nil, fmt.Errorf("unknown event source %q", cfg.Source)
	}
}

func newSink(ctx context.Context, cfg *config.Config) (snapshotv1.Sink, error) {
	if len(cfg.Sinks) == 0 {
		return nil, stderrors.New("at least one sink is required")
	}

	var sinks snapshot.MultiSink
	for _, name := range cfg.Sinks {
		sink, err := openSink(ctx, name, cfg)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, sink)
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}

func openSink(ctx context.Context, name string, cfg *config.Config) (snapshotv1.Sink, error) {
	switch name {
	case "csv":
		return snapshot.CreateCSVSink(cfg.Output, cfg.Scale)

	case "kafka":
		return snapshot.NewKafkaSink(cfg.Kafka, log), nil

	case "redis":
		rclient := redis.NewClient(log, &cfg.Redis)
		if err := rclient.Connect(ctx); err != nil {
			log.Error(err, logger.NewField("action", "connect_redis"))
			return nil, err
		}
		return snapshot.NewRedisSink(rclient, snapshot.RedisSinkConfig{
			Prefix:       cfg.Redis.PrefixKey,
			TTL:          cfg.Redis.DefaultTTL,
			Stream:       cfg.Redis.Stream,
			StreamMaxLen: cfg.Redis.StreamMaxLen,
		}, log), nil

	case "questdb":
		qclient, err := questdb.NewClient(ctx, cfg.QuestDB)
		if err != nil {
			log.Error(err, logger.NewField("action", "connect_questdb"))
			return nil, err
		}
		sink := snapshot.NewQuestDBSink(qclient, log)
		if err := sink.EnsureSchema(ctx); err != nil {
			qclient.Close()
			return nil, err
		}
		return sink, nil

	case "nats":
		return snapshot.ConnectNATSSink(cfg.NATS, log)

	case "pebble":
		return snapshot.OpenPebbleStore(cfg.Pebble, log)

	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}

func serveMetrics(addr string, engine *app.Engine, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           healthcheck.HealthCheck{Check: engine.Err}.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error(err, logger.NewField("action", "serve_metrics"))
		}
	}()

	log.Info("Metrics available", logger.NewField("addr", addr))
	return server
}
