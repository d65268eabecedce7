package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinPrice is the safety floor applied during normalization. The
	// source pipeline already excludes price <= 0 and >= MaxPrice.
	MinPrice = 1000
	// MaxPrice is the exclusive upper bound for a valid product price.
	MaxPrice = 1e9

	// FetchedMovementCap is applied by the source adapter's pipeline.
	FetchedMovementCap = 100
	// StoredMovementCap re-caps the fetched list before storage: only the
	// first 50 of the fetched entries are retained.
	StoredMovementCap = 50
)

// MovementEntry is a dated record of stock in/out for one product on one
// calendar day. Date carries no time-of-day component.
type MovementEntry struct {
	Date           time.Time
	StockDecreased decimal.Decimal
	StockIncreased decimal.Decimal
}

// ProductRow is one product in the analytical table. Lifetime totals are
// computed once per snapshot load; the windowed fields (QuantitySold,
// StockRemaining, Revenue, StockRevenue) start equal to the lifetime
// figures and are recomputed by window recomputation.
type ProductRow struct {
	Id        string
	Name      string
	Category  string
	Promotion string
	Price     decimal.Decimal

	Movements []MovementEntry

	TotalSold           decimal.Decimal
	TotalStockIncreased decimal.Decimal

	QuantitySold   decimal.Decimal
	StockRemaining decimal.Decimal
	Revenue        decimal.Decimal
	StockRevenue   decimal.Decimal

	Segment Segment
}

// Clone returns a copy that shares no mutable state with the receiver,
// so window recomputation never touches the lifetime snapshot.
func (p *ProductRow) Clone() *ProductRow {
	cp := *p
	cp.Movements = make([]MovementEntry, len(p.Movements))
	copy(cp.Movements, p.Movements)
	return &cp
}

type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d falls in the inclusive range [From, To].
func (tr TimeRange) Contains(d time.Time) bool {
	return !d.Before(tr.From) && !d.After(tr.To)
}

// Snapshot is the immutable product set built wholesale on every load.
// Concurrent sessions share it read-only; it is replaced, never mutated.
type Snapshot struct {
	Id        string
	Rows      []*ProductRow
	Bounds    TimeRange
	FetchedAt time.Time
}
