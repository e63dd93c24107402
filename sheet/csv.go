package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/wewei/excel-agent/formula"
)

// LoadCSV reads a CSV file into a new sheet. record (r, c) lands in the
// cell at column c+1, row r+1; numeric-looking fields become numbers,
// empty fields are skipped.
func LoadCSV(filename string) (*Sheet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1 // ragged rows are fine
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	s := New()
	for rIdx, row := range records {
		for cIdx, field := range row {
			if field == "" {
				continue
			}
			id := formula.ColumnLabel(cIdx+1) + strconv.Itoa(rIdx+1)
			if num, err := strconv.ParseFloat(field, 64); err == nil {
				s.cells[id] = num
			} else {
				s.cells[id] = field
			}
		}
	}
	return s, nil
}

// SaveCSV writes the sheet's bounding rectangle to a CSV file
func SaveCSV(s *Sheet, filename string) error {
	maxRow, maxCol := 0, 0
	for id := range s.cells {
		col, row, err := formula.ParseCellID(id)
		if err != nil {
			continue
		}
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if maxRow == 0 || maxCol == 0 {
		return nil
	}

	out := make([][]string, maxRow)
	for row := 1; row <= maxRow; row++ {
		fields := make([]string, maxCol)
		for col := 1; col <= maxCol; col++ {
			id := formula.ColumnLabel(col) + strconv.Itoa(row)
			if value, ok := s.cells[id]; ok {
				fields[col-1] = formula.FormatValue(value)
			}
		}
		out[row-1] = fields
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(out); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}
