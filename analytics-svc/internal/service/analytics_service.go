package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tableside/analytics-svc/internal/domain"
	"tableside/pkg/statskeys"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopItemsLimit = 10
	MaxTopItemsLimit     = 100
	DefaultRevenueDays   = 7
	MaxRevenueDays       = 90
)

// AnalyticsService reads the aggregates stats-svc keeps in redis. When a
// Postgres pool is configured it answers from the orders table whenever
// redis is down or has nothing for the requested day.
type AnalyticsService struct {
	rdb    *redis.Client
	db     *sql.DB
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

func NewAnalyticsService(rdb *redis.Client, db *sql.DB, loc *time.Location, now func() time.Time, logger *slog.Logger) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{rdb: rdb, db: db, loc: loc, now: now, logger: logger}
}

func (s *AnalyticsService) Summary(ctx context.Context, date string) (*domain.DailySummary, error) {
	date, start, err := s.day(date)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		fields, err := s.rdb.HGetAll(ctx, statskeys.Daily(date)).Result()
		switch {
		case err != nil && s.db == nil:
			return nil, fmt.Errorf("read daily stats: %w", err)
		case err != nil:
			s.logger.Warn("redis unavailable, reading summary from postgres", "date", date, "error", err)
		case len(fields) > 0 || s.db == nil:
			return summaryFromHash(date, fields), nil
		}
	}
	return s.summaryFromDB(ctx, date, start)
}

func summaryFromHash(date string, fields map[string]string) *domain.DailySummary {
	sum := &domain.DailySummary{
		Date:           date,
		Orders:         parseCount(fields[statskeys.Orders]),
		Served:         parseCount(fields[statskeys.Served]),
		Cancelled:      parseCount(fields[statskeys.Cancelled]),
		PaidOrders:     parseCount(fields[statskeys.Paid]),
		Reservations:   parseCount(fields[statskeys.Reservations]),
		TablesReleased: parseCount(fields[statskeys.Released]),
		Source:         domain.SourceRedis,
	}
	setMoney(sum, parseMoney(fields[statskeys.Revenue]))
	return sum
}

func (s *AnalyticsService) summaryFromDB(ctx context.Context, date string, start time.Time) (*domain.DailySummary, error) {
	end := start.AddDate(0, 0, 1)
	sum := &domain.DailySummary{Date: date, Source: domain.SourcePostgres}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'served'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`, start, end).
		Scan(&sum.Orders, &sum.Served, &sum.Cancelled)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	var revenue decimal.Decimal
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE is_paid AND paid_at >= $1 AND paid_at < $2`, start, end).
		Scan(&sum.PaidOrders, &revenue)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE created_at >= $1 AND created_at < $2`, start, end).
		Scan(&sum.Reservations)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	setMoney(sum, revenue)
	return sum, nil
}

// TopItems ranks menu items by quantity ordered on date, cancelled orders
// excluded.
func (s *AnalyticsService) TopItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error) {
	date, start, err := s.day(date)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultTopItemsLimit
	}
	if limit < 0 || limit > MaxTopItemsLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxTopItemsLimit)
	}

	if s.rdb != nil {
		zs, err := s.rdb.ZRevRangeWithScores(ctx, statskeys.Items(date), 0, int64(limit-1)).Result()
		switch {
		case err != nil && s.db == nil:
			return nil, fmt.Errorf("read top items: %w", err)
		case err != nil:
			s.logger.Warn("redis unavailable, reading top items from postgres", "date", date, "error", err)
		case len(zs) > 0 || s.db == nil:
			items := make([]domain.ItemCount, 0, len(zs))
			for _, z := range zs {
				name, _ := z.Member.(string)
				items = append(items, domain.ItemCount{Name: name, Quantity: int64(z.Score)})
			}
			return items, nil
		}
	}
	return s.topItemsFromDB(ctx, start, limit)
}

func (s *AnalyticsService) topItemsFromDB(ctx context.Context, start time.Time, limit int) ([]domain.ItemCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item->>'name' AS name, SUM((item->>'quantity')::int) AS quantity
		FROM orders, jsonb_array_elements(items) AS item
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
		GROUP BY name
		ORDER BY quantity DESC, name
		LIMIT $3`, start, start.AddDate(0, 0, 1), limit)
	if err != nil {
		return nil, fmt.Errorf("query top items: %w", err)
	}
	defer rows.Close()

	items := []domain.ItemCount{}
	for rows.Next() {
		var item domain.ItemCount
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Revenue returns one point per day, oldest first, ending today.
func (s *AnalyticsService) Revenue(ctx context.Context, days int) ([]domain.RevenuePoint, error) {
	if days == 0 {
		days = DefaultRevenueDays
	}
	if days < 0 || days > MaxRevenueDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, MaxRevenueDays)
	}

	today := s.now().In(s.loc)
	first := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -(days - 1))
	points := make([]domain.RevenuePoint, days)
	for i := range points {
		points[i] = domain.RevenuePoint{Date: first.AddDate(0, 0, i).Format(domain.DateLayout), Revenue: "0.00"}
	}

	if s.rdb != nil {
		found, err := s.revenueFromRedis(ctx, points)
		switch {
		case err != nil && s.db == nil:
			return nil, fmt.Errorf("read revenue: %w", err)
		case err != nil:
			s.logger.Warn("redis unavailable, reading revenue from postgres", "error", err)
		case found || s.db == nil:
			return points, nil
		}
	}
	if err := s.revenueFromDB(ctx, first, first.AddDate(0, 0, days), points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *AnalyticsService) revenueFromRedis(ctx context.Context, points []domain.RevenuePoint) (bool, error) {
	cmds := make([]*redis.SliceCmd, len(points))
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, p := range points {
			cmds[i] = pipe.HMGet(ctx, statskeys.Daily(p.Date), statskeys.Revenue, statskeys.Paid)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	found := false
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) != 2 {
			continue
		}
		revenue, _ := vals[0].(string)
		paid, _ := vals[1].(string)
		if revenue == "" && paid == "" {
			continue
		}
		found = true
		points[i].Revenue = parseMoney(revenue).StringFixed(2)
		points[i].PaidOrders = parseCount(paid)
	}
	return found, nil
}

// revenueFromDB buckets paid orders by the restaurant's local day.
func (s *AnalyticsService) revenueFromDB(ctx context.Context, from, to time.Time, points []domain.RevenuePoint) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT paid_at, total_amount
		FROM orders
		WHERE is_paid AND paid_at >= $1 AND paid_at < $2`, from, to)
	if err != nil {
		return fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int, len(points))
	totals := make([]decimal.Decimal, len(points))
	for i, p := range points {
		index[p.Date] = i
	}
	for rows.Next() {
		var (
			paidAt time.Time
			amount decimal.Decimal
		)
		if err := rows.Scan(&paidAt, &amount); err != nil {
			return fmt.Errorf("scan revenue: %w", err)
		}
		i, ok := index[paidAt.In(s.loc).Format(domain.DateLayout)]
		if !ok {
			continue
		}
		totals[i] = totals[i].Add(amount)
		points[i].PaidOrders++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range points {
		points[i].Revenue = totals[i].StringFixed(2)
	}
	return nil
}

func (s *AnalyticsService) day(date string) (string, time.Time, error) {
	if date == "" {
		date = s.now().In(s.loc).Format(domain.DateLayout)
	}
	start, err := time.ParseInLocation(domain.DateLayout, date, s.loc)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	return date, start, nil
}

func setMoney(sum *domain.DailySummary, revenue decimal.Decimal) {
	sum.Revenue = revenue.StringFixed(2)
	sum.AverageTicket = "0.00"
	if sum.PaidOrders > 0 {
		sum.AverageTicket = revenue.Div(decimal.NewFromInt(sum.PaidOrders)).StringFixed(2)
	}
}

func parseCount(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}

func parseMoney(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
