package service

import (
	"context"

	"tableside/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	Summary(ctx context.Context, date string) (*domain.DailySummary, error)
	TopItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error)
	Revenue(ctx context.Context, days int) ([]domain.RevenuePoint, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
