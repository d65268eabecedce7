package dto

import (
	"testing"

	"github.com/kingfoodmart/kfm-insights/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSegmentLabel(t *testing.T) {
	assert.Equal(t, "Thấp", SegmentLabel(entity.SegmentLow))
	assert.Equal(t, "Trung bình", SegmentLabel(entity.SegmentMedium))
	assert.Equal(t, "Cao", SegmentLabel(entity.SegmentHigh))
	assert.Equal(t, "Không xác định", SegmentLabel(entity.SegmentUndefined))
	assert.Equal(t, "Không xác định", SegmentLabel(entity.Segment("bogus")))
}

func TestConvertKPISummary_TopProductFallback(t *testing.T) {
	v := ConvertKPISummary(entity.KPISummary{
		TotalRevenue: decimal.NewFromInt(1000),
	})
	assert.Equal(t, "N/A", v.TopProduct)
	assert.Equal(t, "1000", v.TotalRevenue)

	v = ConvertKPISummary(entity.KPISummary{TopProduct: "rice"})
	assert.Equal(t, "rice", v.TopProduct)
}
