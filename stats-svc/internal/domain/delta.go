package domain

import "github.com/shopspring/decimal"

// Delta is what one event adds to a day's aggregates.
type Delta struct {
	Date     string
	Counters map[string]int64
	Revenue  decimal.Decimal
	// Items holds quantity changes by menu item name; cancellations are negative.
	Items map[string]int64
}

func NewDelta(date string) Delta {
	return Delta{Date: date, Counters: map[string]int64{}, Items: map[string]int64{}}
}

func (d Delta) Empty() bool {
	return len(d.Counters) == 0 && len(d.Items) == 0 && d.Revenue.IsZero()
}
