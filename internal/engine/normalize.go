package engine

import (
	"math"
	"time"

	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/shopspring/decimal"
)

// Normalize converts one raw product record into a ProductRow with a
// cleaned, bounded movement list and lifetime totals. It returns nil when
// the record fails price validity (the source pipeline already excludes
// invalid prices, this is defense in depth). The int reports how many
// movement entries were dropped; malformed entries never abort the record.
func Normalize(doc dto.ProductDoc) (*entity.ProductRow, int) {
	if !validPrice(doc.Price) {
		return nil, 0
	}

	price := decimal.NewFromFloat(math.Max(entity.MinPrice, doc.Price)).Round(0)

	hist := doc.StockHistory
	if len(hist) > entity.StoredMovementCap {
		hist = hist[:entity.StoredMovementCap]
	}

	movements := make([]entity.MovementEntry, 0, len(hist))
	dropped := 0
	for _, e := range hist {
		d, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			dropped++
			continue
		}
		if !isFinite(e.StockDecreased) || !isFinite(e.StockIncreased) {
			dropped++
			continue
		}
		movements = append(movements, entity.MovementEntry{
			Date:           d,
			StockDecreased: decimal.NewFromFloat(e.StockDecreased),
			StockIncreased: decimal.NewFromFloat(e.StockIncreased),
		})
	}

	row := &entity.ProductRow{
		Id:        doc.Id,
		Name:      doc.Name,
		Category:  doc.Category,
		Promotion: doc.Promotion,
		Price:     price,
		Movements: movements,
	}

	row.TotalSold, row.TotalStockIncreased = LifetimeTotals(movements)
	row.Revenue = price.Mul(row.TotalSold).Round(0)
	row.StockRevenue = price.Mul(row.TotalStockIncreased).Round(0)

	// Windowed metrics start at the lifetime figures until a window is applied.
	row.QuantitySold = row.TotalSold
	row.StockRemaining = row.TotalStockIncreased

	return row, dropped
}

func validPrice(p float64) bool {
	return isFinite(p) && p > 0 && p < entity.MaxPrice
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
