package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")

const DateLayout = "2006-01-02"

// Source tells the dashboard where a figure came from.
type Source string

const (
	SourceRedis    Source = "redis"
	SourcePostgres Source = "postgres"
)

// DailySummary is one day of the dashboard. Money is rendered with two
// decimal places.
type DailySummary struct {
	Date           string `json:"date"`
	Orders         int64  `json:"orders"`
	Served         int64  `json:"served"`
	Cancelled      int64  `json:"cancelled"`
	PaidOrders     int64  `json:"paid_orders"`
	Reservations   int64  `json:"reservations"`
	TablesReleased int64  `json:"tables_released"`
	Revenue        string `json:"revenue"`
	AverageTicket  string `json:"average_ticket"`
	Source         Source `json:"source"`
}

type ItemCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type RevenuePoint struct {
	Date       string `json:"date"`
	Revenue    string `json:"revenue"`
	PaidOrders int64  `json:"paid_orders"`
}
