package formula

import (
	"fmt"
	"strconv"
)

// ParseCellID parses a cell ID like "A1" or "ab12" into a 1-based column
// index and row number. column letters are base-26 (A=1, Z=26, AA=27, ...)
// and case-insensitive.
func ParseCellID(cellID string) (col int, row int, err error) {
	letterEnd := 0
	for i := 0; i < len(cellID); i++ {
		ch := cellID[i]
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			letterEnd = i + 1
		} else {
			break
		}
	}

	// must have at least one letter and one digit
	if letterEnd == 0 || letterEnd == len(cellID) {
		return 0, 0, fmt.Errorf("无效的单元格引用: %s", cellID)
	}

	for i := 0; i < letterEnd; i++ {
		ch := cellID[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 32
		}
		col = col*26 + int(ch-'A'+1)
	}

	// digits only: Atoi alone would accept a leading sign
	for i := letterEnd; i < len(cellID); i++ {
		if cellID[i] < '0' || cellID[i] > '9' {
			return 0, 0, fmt.Errorf("无效的单元格引用: %s", cellID)
		}
	}

	row, err = strconv.Atoi(cellID[letterEnd:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("无效的单元格引用: %s", cellID)
	}

	return col, row, nil
}

// ColumnLabel is the inverse of ParseCellID's column decoding: it encodes
// a 1-based column index as letters (1="A", 26="Z", 27="AA").
func ColumnLabel(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// isCellID checks if a string has the cell reference shape: one or more
// letters followed by one or more digits, nothing else.
func isCellID(s string) bool {
	if len(s) < 2 {
		return false
	}

	letterEnd := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			letterEnd = i + 1
		} else {
			break
		}
	}

	if letterEnd == 0 || letterEnd == len(s) {
		return false
	}

	for i := letterEnd; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
