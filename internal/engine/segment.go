package engine

import (
	"math"
	"sort"

	"github.com/kingfoodmart/kfm-insights/internal/entity"
)

// Classify assigns every product a price tier relative to the current
// set's price distribution. It is recomputed from scratch on every
// invocation; tiers are percentile-relative, not absolute price bands.
// Classification never fails, at worst every product ends up Undefined.
//
// Policy:
//   - distinct p25/p75: price <= p25 is Low, <= p75 Medium, above High
//   - p25 == p75 but min != max: two tiers only, split at the midpoint
//     (below is Low, at/above is High)
//   - min == max: every product is Medium
//   - no finite prices at all: Undefined for all
func Classify(rows []*entity.ProductRow) {
	if len(rows) == 0 {
		return
	}

	prices := make([]float64, 0, len(rows))
	for _, r := range rows {
		if p, ok := finitePrice(r); ok {
			prices = append(prices, p)
		}
	}
	if len(prices) == 0 {
		for _, r := range rows {
			r.Segment = entity.SegmentUndefined
		}
		return
	}

	sort.Float64s(prices)
	p25 := percentile(prices, 0.25)
	p75 := percentile(prices, 0.75)
	min, max := prices[0], prices[len(prices)-1]

	switch {
	case p25 != p75:
		for _, r := range rows {
			p, ok := finitePrice(r)
			switch {
			case !ok:
				r.Segment = entity.SegmentUndefined
			case p <= p25:
				r.Segment = entity.SegmentLow
			case p <= p75:
				r.Segment = entity.SegmentMedium
			default:
				r.Segment = entity.SegmentHigh
			}
		}
	case min != max:
		// Near-uniform pricing: the percentiles collapsed but prices still
		// spread. Only two tiers are produced in this branch.
		mid := (min + max) / 2
		for _, r := range rows {
			p, ok := finitePrice(r)
			switch {
			case !ok:
				r.Segment = entity.SegmentUndefined
			case p < mid:
				r.Segment = entity.SegmentLow
			default:
				r.Segment = entity.SegmentHigh
			}
		}
	default:
		for _, r := range rows {
			if _, ok := finitePrice(r); !ok {
				r.Segment = entity.SegmentUndefined
				continue
			}
			r.Segment = entity.SegmentMedium
		}
	}
}

func finitePrice(r *entity.ProductRow) (float64, bool) {
	p := r.Price.InexactFloat64()
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

// percentile returns the q-quantile of a sorted sample using linear
// interpolation between order statistics.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
