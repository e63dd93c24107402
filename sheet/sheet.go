// Package sheet provides an in-memory grid of cells keyed by cell ID,
// usable as the data provider behind formula evaluation.
package sheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wewei/excel-agent/formula"
)

// Sheet stores cell values in a map keyed by normalized (uppercase)
// cell ID. absent cells read as nil. Sheet implements
// formula.CellDataProvider.
type Sheet struct {
	cells map[string]formula.Value
}

// New creates an empty sheet
func New() *Sheet {
	return &Sheet{
		cells: make(map[string]formula.Value),
	}
}

// Set stores a value at a cell ID. the ID must have the letters-then-digits
// cell shape; it is normalized to uppercase. setting nil clears the cell.
func (s *Sheet) Set(cellID string, value formula.Value) error {
	id, err := normalize(cellID)
	if err != nil {
		return err
	}
	if value == nil {
		delete(s.cells, id)
		return nil
	}
	s.cells[id] = value
	return nil
}

// Remove clears a cell
func (s *Sheet) Remove(cellID string) error {
	id, err := normalize(cellID)
	if err != nil {
		return err
	}
	delete(s.cells, id)
	return nil
}

// Len returns the number of non-empty cells
func (s *Sheet) Len() int {
	return len(s.cells)
}

// Cells returns the IDs of all non-empty cells, ordered by row then column
func (s *Sheet) Cells() []string {
	ids := make([]string, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		colI, rowI, _ := formula.ParseCellID(ids[i])
		colJ, rowJ, _ := formula.ParseCellID(ids[j])
		if rowI != rowJ {
			return rowI < rowJ
		}
		return colI < colJ
	})
	return ids
}

// GetCellValue returns the stored value for a cell ID, or nil if the cell
// is absent or the ID is not a valid cell reference
func (s *Sheet) GetCellValue(cellID string) formula.Value {
	id, err := normalize(cellID)
	if err != nil {
		return nil
	}
	return s.cells[id]
}

// GetCellRange materializes the rectangle spanned by two opposite corner
// cells, rows outer (increasing row number), columns inner (increasing
// column index). row and column bounds are normalized independently, so
// the corners may arrive in any order.
func (s *Sheet) GetCellRange(startCell, endCell string) ([][]formula.Value, error) {
	startCol, startRow, err := formula.ParseCellID(startCell)
	if err != nil {
		return nil, fmt.Errorf("无效的单元格范围: %s:%s", startCell, endCell)
	}
	endCol, endRow, err := formula.ParseCellID(endCell)
	if err != nil {
		return nil, fmt.Errorf("无效的单元格范围: %s:%s", startCell, endCell)
	}

	minRow, maxRow := minMax(startRow, endRow)
	minCol, maxCol := minMax(startCol, endCol)

	rows := make([][]formula.Value, 0, maxRow-minRow+1)
	for row := minRow; row <= maxRow; row++ {
		cols := make([]formula.Value, 0, maxCol-minCol+1)
		for col := minCol; col <= maxCol; col++ {
			cols = append(cols, s.cells[formula.ColumnLabel(col)+strconv.Itoa(row)])
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// normalize validates the cell shape and uppercases the ID
func normalize(cellID string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(cellID))
	if _, _, err := formula.ParseCellID(id); err != nil {
		return "", err
	}
	return id, nil
}
