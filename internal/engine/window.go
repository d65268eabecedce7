package engine

import (
	"fmt"
	"log/slog"

	"github.com/kingfoodmart/kfm-insights/internal/entity"
)

// ApplyWindow filters every product's movements to the inclusive range
// [tr.From, tr.To] and recomputes quantity_sold, stock_remaining, revenue
// and stock_revenue from the filtered subset only. Lifetime totals and
// segment tiers are left untouched; the input rows are never mutated.
//
// From > To is the caller's problem and simply yields empty windows for
// every product, not an error. A row whose recomputation fails falls back
// to its pre-filter values; the batch never aborts. The int reports how
// many rows fell back.
func ApplyWindow(rows []*entity.ProductRow, tr entity.TimeRange) ([]*entity.ProductRow, int) {
	out := make([]*entity.ProductRow, 0, len(rows))
	fallbacks := 0
	for _, row := range rows {
		if row == nil {
			// No pre-filter values to fall back to; count it and move on.
			slog.Default().Error("window recompute skipped nil row")
			fallbacks++
			continue
		}
		wr, err := windowRow(row, tr)
		if err != nil {
			slog.Default().Error("window recompute fell back to lifetime values",
				slog.String("product", row.Id),
				slog.String("err", err.Error()),
			)
			fallbacks++
			out = append(out, row.Clone())
			continue
		}
		out = append(out, wr)
	}
	return out, fallbacks
}

func windowRow(row *entity.ProductRow, tr entity.TimeRange) (wr *entity.ProductRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			wr, err = nil, fmt.Errorf("recompute panicked: %v", r)
		}
	}()

	wr = row.Clone()
	filtered := wr.Movements[:0]
	for _, m := range wr.Movements {
		if tr.Contains(m.Date) {
			filtered = append(filtered, m)
		}
	}
	wr.Movements = filtered

	wr.QuantitySold, wr.StockRemaining = LifetimeTotals(filtered)
	wr.Revenue = wr.Price.Mul(wr.QuantitySold).Round(0)
	wr.StockRevenue = wr.Price.Mul(wr.StockRemaining).Round(0)
	return wr, nil
}
