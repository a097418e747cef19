package service

import (
	"context"

	"tableside/stats-svc/internal/domain"
	"tableside/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type StoreInterface interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Apply(ctx context.Context, delta domain.Delta) error
	MarkProcessed(ctx context.Context, eventID string) error
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
