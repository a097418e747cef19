package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableside/pkg/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	e := events.New(events.OrderCreated, time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC))
	e.TableID = "table-1"
	e.Amount = "13.00"

	require.NoError(t, NewKafkaPublisher(w).Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, []byte("table-1"), msg.Key)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte(events.OrderCreated)}}, msg.Headers)

	decoded, err := events.Decode(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, "13.00", decoded.Amount)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}

	err := NewKafkaPublisher(w).Publish(context.Background(), events.New(events.TableReleased, time.Now()))
	assert.ErrorContains(t, err, "leader not available")
}
