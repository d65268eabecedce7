package engine

import (
	"testing"
	"time"

	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func window(from, to string) entity.TimeRange {
	return entity.TimeRange{From: day(from), To: day(to)}
}

func testRows(t *testing.T) []*entity.ProductRow {
	t.Helper()
	p1, _ := Normalize(dto.ProductDoc{
		Id: "p1", Name: "first", Price: 1000,
		StockHistory: []dto.MovementDoc{
			{Date: "2025-03-10", StockDecreased: 5, StockIncreased: 2},
		},
	})
	p2, _ := Normalize(dto.ProductDoc{
		Id: "p2", Name: "second", Price: 5000,
		StockHistory: []dto.MovementDoc{
			{Date: "2025-04-01", StockDecreased: 3, StockIncreased: 0},
		},
	})
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	return []*entity.ProductRow{p1, p2}
}

func TestApplyWindow_FiltersByDate(t *testing.T) {
	rows := testRows(t)
	assert.Equal(t, "5", rows[0].TotalSold.String())
	assert.Equal(t, "3", rows[1].TotalSold.String())

	out, fallbacks := ApplyWindow(rows, window("2025-04-01", "2025-04-01"))
	require.Len(t, out, 2)
	assert.Equal(t, 0, fallbacks)

	assert.Equal(t, "0", out[0].QuantitySold.String())
	assert.Equal(t, "0", out[0].Revenue.String())
	assert.Equal(t, "3", out[1].QuantitySold.String())
	assert.Equal(t, "15000", out[1].Revenue.String())
}

func TestApplyWindow_FullRangeEqualsLifetime(t *testing.T) {
	rows := testRows(t)
	out, _ := ApplyWindow(rows, window("2025-03-10", "2025-04-01"))
	for i, r := range out {
		assert.True(t, r.QuantitySold.Equal(rows[i].TotalSold), "product %s", r.Id)
		assert.True(t, r.StockRemaining.Equal(rows[i].TotalStockIncreased), "product %s", r.Id)
		assert.True(t, r.Revenue.Equal(rows[i].Price.Mul(rows[i].TotalSold)), "product %s", r.Id)
	}
}

func TestApplyWindow_DisjointRangeYieldsZeros(t *testing.T) {
	rows := testRows(t)
	out, fallbacks := ApplyWindow(rows, window("2030-01-01", "2030-12-31"))
	assert.Equal(t, 0, fallbacks)
	for _, r := range out {
		assert.Empty(t, r.Movements)
		assert.True(t, r.QuantitySold.IsZero())
		assert.True(t, r.StockRemaining.IsZero())
		assert.True(t, r.Revenue.IsZero())
		assert.True(t, r.StockRevenue.IsZero())
	}
}

func TestApplyWindow_InvertedRangeIsEmptyNotError(t *testing.T) {
	rows := testRows(t)
	out, fallbacks := ApplyWindow(rows, window("2025-04-01", "2025-03-10"))
	assert.Equal(t, 0, fallbacks)
	for _, r := range out {
		assert.Empty(t, r.Movements)
		assert.True(t, r.QuantitySold.IsZero())
	}
}

func TestApplyWindow_DoesNotTouchLifetimeSnapshot(t *testing.T) {
	rows := testRows(t)
	rows[0].Segment = entity.SegmentLow
	rows[1].Segment = entity.SegmentHigh

	out, _ := ApplyWindow(rows, window("2030-01-01", "2030-12-31"))

	// The input snapshot keeps its movements and lifetime totals.
	assert.Len(t, rows[0].Movements, 1)
	assert.Equal(t, "5", rows[0].TotalSold.String())
	assert.Equal(t, "5", rows[0].QuantitySold.String())

	// Lifetime totals and segments carry over unchanged to the output.
	assert.Equal(t, "5", out[0].TotalSold.String())
	assert.Equal(t, entity.SegmentLow, out[0].Segment)
	assert.Equal(t, entity.SegmentHigh, out[1].Segment)
}

func TestApplyWindow_EmptySet(t *testing.T) {
	out, fallbacks := ApplyWindow(nil, window("2025-03-01", "2025-03-31"))
	assert.Empty(t, out)
	assert.Equal(t, 0, fallbacks)
}

func TestApplyWindow_NilRowCountedNotFatal(t *testing.T) {
	rows := testRows(t)
	rows = append(rows, nil)

	var out []*entity.ProductRow
	var fallbacks int
	require.NotPanics(t, func() {
		out, fallbacks = ApplyWindow(rows, window("2025-04-01", "2025-04-01"))
	})

	// The bad row is counted and skipped; the rest still recompute.
	assert.Equal(t, 1, fallbacks)
	require.Len(t, out, 2)
	assert.Equal(t, "0", out[0].QuantitySold.String())
	assert.Equal(t, "3", out[1].QuantitySold.String())
}

func TestApplyWindow_InclusiveBounds(t *testing.T) {
	rows := testRows(t)
	out, _ := ApplyWindow(rows, window("2025-03-10", "2025-03-10"))
	assert.Equal(t, "5", out[0].QuantitySold.String())
	assert.Equal(t, "0", out[1].QuantitySold.String())
}
