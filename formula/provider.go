package formula

// CellDataProvider supplies cell contents to the evaluator. the engine
// only ever reads through it; any host that can resolve cell IDs to
// values can back a formula evaluation.
type CellDataProvider interface {
	// GetCellValue returns the stored value for a cell ID, or nil if the
	// cell is absent. absence is represented, never signaled.
	GetCellValue(cellID string) Value

	// GetCellRange returns the rectangle spanned by two opposite corner
	// cells as rows (increasing row number) of columns (increasing column
	// index). the corners may arrive in any order; row and column bounds
	// are normalized independently. fails if either endpoint is not a
	// valid cell ID.
	GetCellRange(startCell, endCell string) ([][]Value, error)
}
