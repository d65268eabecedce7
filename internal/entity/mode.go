package entity

// DisplayMode selects which derived column pair is active for filtering
// and rollup: quantity_sold/revenue or stock_remaining/stock_revenue.
// It is always passed explicitly, never inferred from data shape.
type DisplayMode string

const (
	ModeSales     DisplayMode = "sales"
	ModeInventory DisplayMode = "inventory"
)

func (m DisplayMode) String() string {
	switch m {
	case ModeInventory:
		return string(ModeInventory)
	default:
		return string(ModeSales)
	}
}

func IsValidDisplayMode(m DisplayMode) bool {
	return m == ModeSales || m == ModeInventory
}
