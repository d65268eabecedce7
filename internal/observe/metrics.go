package observe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry collects the engine's partial-failure and load counters.
// Per-row failures are swallowed with safe defaults, so counting them
// here is the only way they stay visible.
type Registry struct {
	reg *prometheus.Registry

	ProductsLoaded    prometheus.Gauge
	RecordsSkipped    prometheus.Counter
	EntriesDropped    prometheus.Counter
	WindowFallbacks   prometheus.Counter
	SnapshotRefreshes prometheus.Counter
	SnapshotFetchedAt prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	loaded := prometheus.NewGauge(prometheus.GaugeOpts{Name: "insights_products_loaded"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "insights_records_skipped_total"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "insights_movement_entries_dropped_total"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{Name: "insights_window_fallback_rows_total"})
	refreshes := prometheus.NewCounter(prometheus.CounterOpts{Name: "insights_snapshot_refreshes_total"})
	// Unix timestamp of the last rebuild; age is derived at query time.
	fetchedAt := prometheus.NewGauge(prometheus.GaugeOpts{Name: "insights_snapshot_fetched_timestamp_seconds"})

	r.MustRegister(loaded, skipped, dropped, fallbacks, refreshes, fetchedAt)
	return &Registry{
		reg:               r,
		ProductsLoaded:    loaded,
		RecordsSkipped:    skipped,
		EntriesDropped:    dropped,
		WindowFallbacks:   fallbacks,
		SnapshotRefreshes: refreshes,
		SnapshotFetchedAt: fetchedAt,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
