package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tableside/pkg/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

const retryBackoff = time.Second

// ErrBadEvent marks events that can never be folded. They are skipped
// rather than retried.
var ErrBadEvent = errors.New("event cannot be folded")

var eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tableside",
	Subsystem: "stats",
	Name:      "events_total",
	Help:      "Events consumed by outcome.",
}, []string{"type", "outcome"})

type Consumer struct {
	Reader   MessageReader
	Store    StoreInterface
	Location *time.Location
	Logger   *slog.Logger
	Backoff  time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location, logger *slog.Logger) *Consumer {
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
		Logger:   logger,
		Backoff:  retryBackoff,
	}
}

// Start reads until ctx is cancelled or the reader is closed. Offsets are
// committed only once a message is folded or skipped, so a redis outage
// delays stats instead of losing them.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info("stats consumer started")
	for {
		msg, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.Logger.Info("stats consumer stopped")
				return nil
			}
			c.Logger.Error("fetch message", "error", err)
			if !c.wait(ctx) {
				return nil
			}
			continue
		}
		if err := c.Handle(ctx, msg); err != nil {
			c.Logger.Info("stats consumer stopped", "uncommitted_offset", msg.Offset)
			return nil
		}
		if err := c.Reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.Logger.Error("commit offset", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		}
	}
}

// Handle folds one message, retrying store failures until they succeed or
// ctx ends. Malformed and unfoldable messages are logged and dropped so one
// bad record never blocks the partition. The only error returned is ctx's.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	e, err := events.Decode(msg.Value)
	if err != nil {
		eventsTotal.WithLabelValues("unknown", "malformed").Inc()
		c.Logger.Warn("skipping malformed message",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	for {
		err := c.Apply(ctx, e)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrBadEvent) {
			eventsTotal.WithLabelValues(e.Type, "rejected").Inc()
			c.Logger.Warn("skipping event", "event_id", e.ID, "type", e.Type, "error", err)
			return nil
		}
		eventsTotal.WithLabelValues(e.Type, "failed").Inc()
		c.Logger.Error("apply event", "event_id", e.ID, "type", e.Type, "error", err)
		if !c.wait(ctx) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.Backoff):
		return true
	}
}

func (c *Consumer) Apply(ctx context.Context, e events.Event) error {
	delta, err := Fold(e, c.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if delta.Empty() {
		eventsTotal.WithLabelValues(e.Type, "ignored").Inc()
		c.Logger.Debug("event does not change stats", "event_id", e.ID, "type", e.Type)
		return nil
	}

	id := e.ID.String()
	seen, err := c.Store.Seen(ctx, id)
	if err != nil {
		return fmt.Errorf("check event %s: %w", id, err)
	}
	if seen {
		eventsTotal.WithLabelValues(e.Type, "duplicate").Inc()
		c.Logger.Debug("duplicate event", "event_id", id)
		return nil
	}

	if err := c.Store.Apply(ctx, delta); err != nil {
		return fmt.Errorf("fold event %s: %w", id, err)
	}
	if err := c.Store.MarkProcessed(ctx, id); err != nil {
		c.Logger.Warn("could not mark event processed", "event_id", id, "error", err)
	}

	eventsTotal.WithLabelValues(e.Type, "applied").Inc()
	c.Logger.Debug("event applied", "event_id", id, "type", e.Type, "date", delta.Date)
	return nil
}
