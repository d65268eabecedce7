package engine

import (
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/shopspring/decimal"
)

// LifetimeTotals sums a movement list into (total_sold, total_stock_increased).
// Negative source values contribute zero, they are not treated as reversing
// adjustments. Sums are rounded to whole units; an empty list sums to zero.
func LifetimeTotals(movements []entity.MovementEntry) (decimal.Decimal, decimal.Decimal) {
	sold := decimal.Zero
	increased := decimal.Zero
	for _, m := range movements {
		sold = sold.Add(floorZero(m.StockDecreased))
		increased = increased.Add(floorZero(m.StockIncreased))
	}
	return sold.Round(0), increased.Round(0)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
