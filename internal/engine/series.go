package engine

import (
	"sort"
	"time"

	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/shopspring/decimal"
)

// Fallback bounds used when no movement entry carries a date at all.
var (
	fallbackMinDate = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	fallbackMaxDate = time.Date(2025, time.May, 25, 0, 0, 0, 0, time.UTC)

	defaultWindowStart = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	defaultWindowEnd   = time.Date(2025, time.May, 18, 0, 0, 0, 0, time.UTC)
)

// DateBounds returns the min/max date observed across all retained
// movement entries, or the fixed fallback range when there are none.
func DateBounds(rows []*entity.ProductRow) entity.TimeRange {
	var min, max time.Time
	for _, r := range rows {
		for _, m := range r.Movements {
			if min.IsZero() || m.Date.Before(min) {
				min = m.Date
			}
			if max.IsZero() || m.Date.After(max) {
				max = m.Date
			}
		}
	}
	if min.IsZero() {
		return entity.TimeRange{From: fallbackMinDate, To: fallbackMaxDate}
	}
	return entity.TimeRange{From: min, To: max}
}

// DefaultWindow clamps the dashboard's default date window into bounds.
func DefaultWindow(bounds entity.TimeRange) entity.TimeRange {
	w := entity.TimeRange{From: defaultWindowStart, To: defaultWindowEnd}
	if bounds.From.After(w.From) {
		w.From = bounds.From
	}
	if bounds.To.Before(w.To) {
		w.To = bounds.To
	}
	return w
}

// DailySeries sums per-day activity for the active mode over movements
// inside the window. Revenue for a day is the day's summed quantity times
// the mean price of the products that moved that day, floored at zero.
func DailySeries(rows []*entity.ProductRow, tr entity.TimeRange, mode entity.DisplayMode) []entity.DailyPoint {
	type acc struct {
		quantity   decimal.Decimal
		priceSum   decimal.Decimal
		priceCount int64
	}
	byDay := map[time.Time]*acc{}

	for _, r := range rows {
		for _, m := range r.Movements {
			if !tr.Contains(m.Date) {
				continue
			}
			q := floorZero(m.StockDecreased)
			if mode == entity.ModeInventory {
				q = floorZero(m.StockIncreased)
			}
			a, ok := byDay[m.Date]
			if !ok {
				a = &acc{quantity: decimal.Zero, priceSum: decimal.Zero}
				byDay[m.Date] = a
			}
			a.quantity = a.quantity.Add(q)
			a.priceSum = a.priceSum.Add(r.Price)
			a.priceCount++
		}
	}

	out := make([]entity.DailyPoint, 0, len(byDay))
	for day, a := range byDay {
		avgPrice := decimal.Zero
		if a.priceCount > 0 {
			avgPrice = a.priceSum.Div(decimal.NewFromInt(a.priceCount))
		}
		revenue := a.quantity.Mul(avgPrice).Round(0)
		if revenue.IsNegative() {
			revenue = decimal.Zero
		}
		out = append(out, entity.DailyPoint{Date: day, Quantity: a.quantity, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Summarize computes the headline KPI figures over the filtered set.
// Average price only counts products with positive activity in the
// active mode; the top product requires some activity, otherwise empty.
func Summarize(rows []*entity.ProductRow, mode entity.DisplayMode) entity.KPISummary {
	s := entity.KPISummary{
		TotalRevenue:      decimal.Zero,
		TotalStockRevenue: decimal.Zero,
		TotalQuantity:     decimal.Zero,
		TotalStock:        decimal.Zero,
		AvgPrice:          decimal.Zero,
	}

	activePriceSum := decimal.Zero
	activeCount := int64(0)
	var top *entity.ProductRow

	for _, r := range rows {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalStockRevenue = s.TotalStockRevenue.Add(r.StockRevenue)
		s.TotalQuantity = s.TotalQuantity.Add(r.QuantitySold)
		s.TotalStock = s.TotalStock.Add(r.StockRemaining)

		if modeActive(r, mode) {
			activePriceSum = activePriceSum.Add(r.Price)
			activeCount++
		}
		q, _ := modeFields(r, mode)
		if q.IsPositive() {
			if top == nil {
				top = r
			} else if tq, _ := modeFields(top, mode); q.GreaterThan(tq) {
				top = r
			}
		}
	}

	if activeCount > 0 {
		s.AvgPrice = activePriceSum.Div(decimal.NewFromInt(activeCount)).Round(0)
	}
	if top != nil {
		s.TopProduct = top.Name
	}
	return s
}

// modeActive reports whether a product had any activity in the mode's
// sense: positive quantity sold for sales, positive stock revenue for
// inventory (matching the dashboard's average-price basis).
func modeActive(r *entity.ProductRow, mode entity.DisplayMode) bool {
	if mode == entity.ModeInventory {
		return r.StockRevenue.IsPositive()
	}
	return r.QuantitySold.IsPositive()
}

// TopMovers returns the n best and n slowest products by the active
// mode's quantity, considering only products with positive activity.
func TopMovers(rows []*entity.ProductRow, mode entity.DisplayMode, n int) (top, slow []entity.ProductMover) {
	movers := make([]entity.ProductMover, 0, len(rows))
	for _, r := range rows {
		q, rev := modeFields(r, mode)
		if q.IsPositive() {
			movers = append(movers, entity.ProductMover{Id: r.Id, Name: r.Name, Quantity: q, Revenue: rev})
		}
	}
	sort.SliceStable(movers, func(i, j int) bool { return movers[i].Quantity.GreaterThan(movers[j].Quantity) })

	if n > len(movers) {
		n = len(movers)
	}
	top = append(top, movers[:n]...)
	for i := len(movers) - 1; i >= len(movers)-n; i-- {
		slow = append(slow, movers[i])
	}
	return top, slow
}
