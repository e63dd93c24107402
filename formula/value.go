package formula

import (
	"fmt"
	"math"
	"strconv"
)

// Value represents basic formula value types.
// types:
//   - float64: numeric values (integers are converted to float64)
//   - string: text values, including in-band error values prefixed with '#'
//   - bool: boolean values (TRUE/FALSE)
//   - nil: empty/null cells
//
// a [][]Value (rows outer, columns inner) is produced by range references
// and is only a valid operand to builtin functions, never to operators.
type Value = any

// in-band error values returned by the evaluator. these are ordinary
// string Values, not Go errors: they flow through further computation
// like any other cell content.
const (
	errDivZero     = "#DIV/0!"
	errBareError   = "#ERROR"
	errNonNumeric  = "#ERROR: 无法执行数值运算"
	errUnknownNode = "#ERROR: 未知节点类型"
)

func errUnknownFunction(name string) string {
	return "#ERROR: 未知函数 " + name
}

// toNumber converts a value to a number, returning ok=false if the
// conversion fails. empty cells and empty strings coerce to 0; a range's
// 2-D structure never coerces.
func toNumber(value Value) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		if v == "" {
			return 0, true
		}
		num, err := strconv.ParseFloat(v, 64)
		// ParseFloat accepts "NaN" and "Inf" spellings; neither is a
		// usable number
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			return 0, false
		}
		return num, true
	case nil:
		return 0, true
	default:
		return 0, false
	}
}

// isTruthy checks if a value is truthy. 0, nil, empty string and false
// are falsy; everything else is truthy.
func isTruthy(value Value) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

// FormatValue renders a value for display. empty cells render as the
// empty string, booleans as TRUE/FALSE, and integral numbers without
// a decimal part.
func FormatValue(value Value) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
