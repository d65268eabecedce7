package engine

import (
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rollup groups the product set by tier and computes per-tier totals and
// percentage shares for the active display mode. It always returns
// exactly three rows in Low, Medium, High order, synthesizing zero rows
// for absent tiers so consumers can render a fixed number of slices.
// Percentages are rounded to 1 decimal and are 0 when the total is 0.
func Rollup(rows []*entity.ProductRow, mode entity.DisplayMode) []entity.SegmentSummary {
	type acc struct {
		quantity decimal.Decimal
		revenue  decimal.Decimal
	}
	byTier := map[entity.Segment]*acc{}
	for _, seg := range entity.SegmentOrder {
		byTier[seg] = &acc{quantity: decimal.Zero, revenue: decimal.Zero}
	}

	for _, r := range rows {
		a, ok := byTier[r.Segment]
		if !ok {
			// Undefined tier is excluded from the three-slice rollup.
			continue
		}
		q, rev := modeFields(r, mode)
		a.quantity = a.quantity.Add(q)
		a.revenue = a.revenue.Add(rev)
	}

	totalQuantity := decimal.Zero
	totalRevenue := decimal.Zero
	for _, a := range byTier {
		totalQuantity = totalQuantity.Add(a.quantity)
		totalRevenue = totalRevenue.Add(a.revenue)
	}

	out := make([]entity.SegmentSummary, 0, len(entity.SegmentOrder))
	for _, seg := range entity.SegmentOrder {
		a := byTier[seg]
		out = append(out, entity.SegmentSummary{
			Segment:      seg,
			QuantitySold: a.quantity,
			Revenue:      a.revenue,
			RevenuePct:   pctShare(a.revenue, totalRevenue),
			QuantityPct:  pctShare(a.quantity, totalQuantity),
		})
	}
	return out
}

// modeFields selects the sales or inventory column pair. Keyed off the
// explicit mode flag, never auto-detected from data shape.
func modeFields(r *entity.ProductRow, mode entity.DisplayMode) (quantity, revenue decimal.Decimal) {
	if mode == entity.ModeInventory {
		return r.StockRemaining, r.StockRevenue
	}
	return r.QuantitySold, r.Revenue
}

func pctShare(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(1)
}
