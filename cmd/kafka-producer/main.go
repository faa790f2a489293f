package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	eventreader "github.com/muhammadchandra19/bookreplay/internal/usecase/event-reader"
	"github.com/muhammadchandra19/bookreplay/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// summary counts published events by type.
type summary map[orderbookv1.EventType]int

func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic   = flag.String("topic", "book-events", "Kafka topic name")
		file    = flag.String("file", "", "LOBSTER message file to publish")
		delay   = flag.Duration("delay", 0, "Delay between sending events")
		limit   = flag.Int("limit", 0, "Stop after this many events, 0 publishes the whole file")
		batch   = flag.Int("batch", 500, "Events per WriteMessages call")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if *file == "" {
		log.Error(stderrors.New("-file is required"))
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reader, err := eventreader.OpenFileReader(*file, log)
	if err != nil {
		log.Error(err, logger.NewField("file", *file))
		os.Exit(1)
	}
	defer reader.Close()

	// One key for the whole file keeps every event on one partition, in order.
	key := []byte(filepath.Base(*file))

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    *batch,
	}
	defer writer.Close()

	log.Info("Sending events to Kafka",
		logger.NewField("brokers", *brokers),
		logger.NewField("topic", *topic),
		logger.NewField("file", *file),
	)

	sent := summary{}
	pending := make([]kafka.Message, 0, *batch)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := writer.WriteMessages(ctx, pending...); err != nil {
			return err
		}
		pending = pending[:0]
		return nil
	}

	total := 0
	for *limit <= 0 || total < *limit {
		event, err := reader.ReadEvent(ctx)
		if err == io.EOF {
			break
		}
		if stderrors.Is(err, orderbookv1.ErrInvalidEvent) {
			log.Warn("Skipping malformed row", logger.NewField("error", err.Error()))
			continue
		}
		if err != nil {
			log.Error(err, logger.NewField("sent", total))
			os.Exit(1)
		}

		value, err := json.Marshal(event)
		if err != nil {
			log.Error(err, logger.NewField("sequence", event.Sequence))
			continue
		}

		pending = append(pending, kafka.Message{
			Key:   key,
			Value: value,
			Time:  time.Now(),
		})
		sent[event.Type]++
		total++

		if len(pending) >= *batch || *delay > 0 {
			if err := flush(); err != nil {
				log.Error(err, logger.NewField("sent", total))
				os.Exit(1)
			}
		}

		if total%10000 == 0 {
			log.Info("Progress", logger.NewField("sent", total))
		}

		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	if err := flush(); err != nil {
		log.Error(err, logger.NewField("sent", total))
		os.Exit(1)
	}

	fields := []logger.Field{logger.NewField("total", total)}
	for t := orderbookv1.EventNewOrder; t <= orderbookv1.EventTradingHalt; t++ {
		fields = append(fields, logger.NewField(t.String(), sent[t]))
	}
	log.Info("Successfully sent all events", fields...)
}
