package storage

import (
	"context"
	"time"

	"tableside/pkg/statskeys"
	"tableside/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Store keeps the dashboard aggregates in redis. Every key expires ttl
// after its last write.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, statskeys.Seen(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) MarkProcessed(ctx context.Context, eventID string) error {
	return s.rdb.Set(ctx, statskeys.Seen(eventID), 1, s.ttl).Err()
}

func (s *Store) Apply(ctx context.Context, delta domain.Delta) error {
	dailyKey := statskeys.Daily(delta.Date)
	itemsKey := statskeys.Items(delta.Date)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, n := range delta.Counters {
			pipe.HIncrBy(ctx, dailyKey, field, n)
		}
		if !delta.Revenue.IsZero() {
			pipe.HIncrByFloat(ctx, dailyKey, statskeys.Revenue, delta.Revenue.InexactFloat64())
		}
		if len(delta.Counters) > 0 || !delta.Revenue.IsZero() {
			pipe.Expire(ctx, dailyKey, s.ttl)
		}

		if len(delta.Items) > 0 {
			for name, qty := range delta.Items {
				pipe.ZIncrBy(ctx, itemsKey, float64(qty), name)
			}
			pipe.ZRemRangeByScore(ctx, itemsKey, "-inf", "0")
			pipe.Expire(ctx, itemsKey, s.ttl)
		}
		return nil
	})
	return err
}
