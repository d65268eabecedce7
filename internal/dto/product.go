package dto

// ProductDoc is one raw product record as returned by the document-store
// adapter. Fields are already coerced from the dynamic document shape with
// per-field defaulting; the record is read-only input for the engine.
type ProductDoc struct {
	Id           string
	Name         string
	Category     string
	Price        float64
	Promotion    string
	StockHistory []MovementDoc
}

// MovementDoc is one stock movement entry as found in a product document.
// Date is the raw string-encoded calendar date (expected YYYY-MM-DD);
// quantities may be negative or zero straight from the source.
type MovementDoc struct {
	Date           string
	StockDecreased float64
	StockIncreased float64
}
