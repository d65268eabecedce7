package insights

import (
	"context"
	"time"

	"log/slog"

	"github.com/kingfoodmart/kfm-insights/internal/dependency"
	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/engine"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	gerr "github.com/kingfoodmart/kfm-insights/internal/errors"
	"github.com/kingfoodmart/kfm-insights/internal/observe"
	"golang.org/x/exp/slices"
)

type Config struct {
	TopMovers int `mapstructure:"top_movers"`
}

// Server answers recomputation requests over the cached snapshot. Every
// query is a pure pass: filter, window, rollup; the snapshot itself is
// never mutated, so concurrent sessions can share it freely.
type Server struct {
	cache dependency.SnapshotCache
	reg   *observe.Registry
	c     *Config
}

func New(cache dependency.SnapshotCache, reg *observe.Registry, c *Config) *Server {
	if c == nil {
		c = &Config{}
	}
	if c.TopMovers == 0 {
		c.TopMovers = 5
	}
	return &Server{cache: cache, reg: reg, c: c}
}

// Query runs one full recomputation pass for the given filter controls.
func (s *Server) Query(ctx context.Context, q dto.InsightsQuery) (*dto.InsightsResult, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	mode := q.Mode
	if !entity.IsValidDisplayMode(mode) {
		mode = entity.ModeSales
	}

	rows := filterRows(snap.Rows, q)
	if len(rows) == 0 {
		return nil, gerr.ErrEmptyResult
	}

	window := s.resolveWindow(snap, q)
	rows, fallbacks := engine.ApplyWindow(rows, window)
	if fallbacks > 0 && s.reg != nil {
		s.reg.WindowFallbacks.Add(float64(fallbacks))
	}

	top, slow := engine.TopMovers(rows, mode, s.c.TopMovers)

	res := &dto.InsightsResult{
		SnapshotId:  snap.Id,
		Mode:        mode.String(),
		WindowStart: window.From.Format(time.DateOnly),
		WindowEnd:   window.To.Format(time.DateOnly),
		Products:    make([]dto.ProductView, 0, len(rows)),
		Summary:     dto.ConvertKPISummary(engine.Summarize(rows, mode)),
	}
	for _, r := range rows {
		res.Products = append(res.Products, dto.ConvertProductRow(r))
	}
	for _, summary := range engine.Rollup(rows, mode) {
		res.Rollup = append(res.Rollup, dto.ConvertSegmentSummary(summary))
	}
	for _, p := range engine.DailySeries(rows, window, mode) {
		res.Daily = append(res.Daily, dto.ConvertDailyPoint(p))
	}
	for _, m := range top {
		res.TopProducts = append(res.TopProducts, dto.ConvertProductMover(m))
	}
	for _, m := range slow {
		res.SlowProducts = append(res.SlowProducts, dto.ConvertProductMover(m))
	}

	slog.Default().DebugContext(ctx, "insights query recomputed",
		slog.String("snapshot", snap.Id),
		slog.String("mode", mode.String()),
		slog.Int("products", len(rows)),
	)

	return res, nil
}

// Dates returns the observed movement date bounds and the clamped
// default window for the current snapshot.
func (s *Server) Dates(ctx context.Context) (*dto.DateBounds, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	def := engine.DefaultWindow(snap.Bounds)
	return &dto.DateBounds{
		MinDate:      snap.Bounds.From.Format(time.DateOnly),
		MaxDate:      snap.Bounds.To.Format(time.DateOnly),
		DefaultStart: def.From.Format(time.DateOnly),
		DefaultEnd:   def.To.Format(time.DateOnly),
	}, nil
}

// Dictionary returns the filter control values for the current snapshot.
func (s *Server) Dictionary(ctx context.Context) (*dto.Dictionary, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	categories := map[string]bool{}
	products := map[string]bool{}
	segments := map[entity.Segment]bool{}
	for _, r := range snap.Rows {
		if r.Category != "" {
			categories[r.Category] = true
		}
		if r.Name != "" {
			products[r.Name] = true
		}
		segments[r.Segment] = true
	}

	d := &dto.Dictionary{
		Categories: sortedKeys(categories),
		Products:   sortedKeys(products),
		Modes:      []string{entity.ModeSales.String(), entity.ModeInventory.String()},
	}
	for _, seg := range entity.SegmentOrder {
		if segments[seg] {
			d.Segments = append(d.Segments, seg.String())
		}
	}
	if segments[entity.SegmentUndefined] {
		d.Segments = append(d.Segments, entity.SegmentUndefined.String())
	}
	return d, nil
}

// resolveWindow fills missing range ends from the snapshot's default
// window. From > To is allowed and yields empty per-product windows.
func (s *Server) resolveWindow(snap *entity.Snapshot, q dto.InsightsQuery) entity.TimeRange {
	window := engine.DefaultWindow(snap.Bounds)
	if q.From != nil {
		window.From = *q.From
	}
	if q.To != nil {
		window.To = *q.To
	}
	return window
}

func filterRows(rows []*entity.ProductRow, q dto.InsightsQuery) []*entity.ProductRow {
	out := make([]*entity.ProductRow, 0, len(rows))
	for _, r := range rows {
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		if q.Segment != "" && r.Segment != q.Segment {
			continue
		}
		if q.Product != "" && r.Name != q.Product {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
