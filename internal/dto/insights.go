package dto

import (
	"time"

	"github.com/kingfoodmart/kfm-insights/internal/entity"
)

// InsightsQuery carries the filter controls of one recomputation pass.
// Zero-valued filters mean "all"; Mode is explicit and defaults to sales.
type InsightsQuery struct {
	Category string
	Segment  entity.Segment
	Product  string
	Mode     entity.DisplayMode
	From     *time.Time
	To       *time.Time
}

// SegmentLabel maps an engine tier to the display label used by the
// dashboard. The engine itself only works with the ordered tiers.
func SegmentLabel(s entity.Segment) string {
	switch s {
	case entity.SegmentLow:
		return "Thấp"
	case entity.SegmentMedium:
		return "Trung bình"
	case entity.SegmentHigh:
		return "Cao"
	default:
		return "Không xác định"
	}
}

// ProductView is one row of the full product table at the output boundary.
type ProductView struct {
	Id                  string `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	Price               string `json:"price"`
	Promotion           string `json:"promotion,omitempty"`
	TotalSold           string `json:"total_sold"`
	Revenue             string `json:"revenue"`
	TotalStockIncreased string `json:"total_stock_increased"`
	StockRevenue        string `json:"stock_revenue"`
	QuantitySold        string `json:"quantity_sold"`
	StockRemaining      string `json:"stock_remaining"`
	Movements           int    `json:"movements"`
	Segment             string `json:"segment"`
	SegmentLabel        string `json:"segment_label"`
}

type SegmentSummaryView struct {
	Segment      string `json:"segment"`
	SegmentLabel string `json:"segment_label"`
	QuantitySold string `json:"quantity_sold"`
	Revenue      string `json:"revenue"`
	RevenuePct   string `json:"revenue_pct"`
	QuantityPct  string `json:"quantity_pct"`
}

type KPISummaryView struct {
	TotalRevenue      string `json:"total_revenue"`
	TotalStockRevenue string `json:"total_stock_revenue"`
	TotalQuantity     string `json:"total_quantity"`
	TotalStock        string `json:"total_stock"`
	AvgPrice          string `json:"avg_price"`
	TopProduct        string `json:"top_product"`
}

type DailyPointView struct {
	Date     string `json:"date"`
	Quantity string `json:"quantity"`
	Revenue  string `json:"revenue"`
}

type ProductMoverView struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Revenue  string `json:"revenue"`
}

// InsightsResult is one full recomputation pass over the snapshot:
// the filtered product table plus every derived view the presentation
// layer renders from it.
type InsightsResult struct {
	SnapshotId   string               `json:"snapshot_id"`
	Mode         string               `json:"mode"`
	WindowStart  string               `json:"window_start"`
	WindowEnd    string               `json:"window_end"`
	Products     []ProductView        `json:"products"`
	Rollup       []SegmentSummaryView `json:"rollup"`
	Summary      KPISummaryView       `json:"summary"`
	Daily        []DailyPointView     `json:"daily"`
	TopProducts  []ProductMoverView   `json:"top_products"`
	SlowProducts []ProductMoverView   `json:"slow_products"`
}

// Dictionary lists the values the filter controls can take for the
// current snapshot.
type Dictionary struct {
	Categories []string `json:"categories"`
	Segments   []string `json:"segments"`
	Products   []string `json:"products"`
	Modes      []string `json:"modes"`
}

type DateBounds struct {
	MinDate      string `json:"min_date"`
	MaxDate      string `json:"max_date"`
	DefaultStart string `json:"default_start"`
	DefaultEnd   string `json:"default_end"`
}

func ConvertProductRow(p *entity.ProductRow) ProductView {
	return ProductView{
		Id:                  p.Id,
		Name:                p.Name,
		Category:            p.Category,
		Price:               p.Price.String(),
		Promotion:           p.Promotion,
		TotalSold:           p.TotalSold.String(),
		Revenue:             p.Revenue.String(),
		TotalStockIncreased: p.TotalStockIncreased.String(),
		StockRevenue:        p.StockRevenue.String(),
		QuantitySold:        p.QuantitySold.String(),
		StockRemaining:      p.StockRemaining.String(),
		Movements:           len(p.Movements),
		Segment:             p.Segment.String(),
		SegmentLabel:        SegmentLabel(p.Segment),
	}
}

func ConvertSegmentSummary(s entity.SegmentSummary) SegmentSummaryView {
	return SegmentSummaryView{
		Segment:      s.Segment.String(),
		SegmentLabel: SegmentLabel(s.Segment),
		QuantitySold: s.QuantitySold.String(),
		Revenue:      s.Revenue.String(),
		RevenuePct:   s.RevenuePct.String(),
		QuantityPct:  s.QuantityPct.String(),
	}
}

func ConvertKPISummary(k entity.KPISummary) KPISummaryView {
	top := k.TopProduct
	if top == "" {
		top = "N/A"
	}
	return KPISummaryView{
		TotalRevenue:      k.TotalRevenue.String(),
		TotalStockRevenue: k.TotalStockRevenue.String(),
		TotalQuantity:     k.TotalQuantity.String(),
		TotalStock:        k.TotalStock.String(),
		AvgPrice:          k.AvgPrice.String(),
		TopProduct:        top,
	}
}

func ConvertDailyPoint(d entity.DailyPoint) DailyPointView {
	return DailyPointView{
		Date:     d.Date.Format(time.DateOnly),
		Quantity: d.Quantity.String(),
		Revenue:  d.Revenue.String(),
	}
}

func ConvertProductMover(m entity.ProductMover) ProductMoverView {
	return ProductMoverView{
		Id:       m.Id,
		Name:     m.Name,
		Quantity: m.Quantity.String(),
		Revenue:  m.Revenue.String(),
	}
}
