package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SegmentSummary is one rollup row per price tier. Percentages sum to 100
// across all tiers when the corresponding total is positive, 0 otherwise.
type SegmentSummary struct {
	Segment      Segment
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
	RevenuePct   decimal.Decimal
	QuantityPct  decimal.Decimal
}

// KPISummary holds the headline figures over the current filtered set.
// AvgPrice is computed only over products with positive activity in the
// active display mode; TopProduct is empty when there is no activity.
type KPISummary struct {
	TotalRevenue      decimal.Decimal
	TotalStockRevenue decimal.Decimal
	TotalQuantity     decimal.Decimal
	TotalStock        decimal.Decimal
	AvgPrice          decimal.Decimal
	TopProduct        string
}

// DailyPoint is one calendar day of summed movement activity within the
// active window, with revenue derived from the day's mean price.
type DailyPoint struct {
	Date     time.Time
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// ProductMover is a top/slow mover entry for the active display mode.
type ProductMover struct {
	Id       string
	Name     string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}
