// Package statskeys names the redis keys stats-svc writes and
// analytics-svc reads.
package statskeys

const DateLayout = "2006-01-02"

// Fields of the daily hash.
const (
	Orders       = "orders"
	Cancelled    = "cancelled"
	Served       = "served"
	Paid         = "paid"
	Reservations = "reservations"
	Released     = "released"
	Revenue      = "revenue"
)

func Daily(date string) string { return "stats:daily:" + date }

// Items is a sorted set of menu item name to quantity ordered.
func Items(date string) string { return "stats:items:" + date }

func Seen(eventID string) string { return "stats:seen:" + eventID }
