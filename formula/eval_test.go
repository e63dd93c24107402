package formula_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/wewei/excel-agent/formula"
	"github.com/wewei/excel-agent/sheet"
)

// testSheet builds a provider pre-populated with the given cells
func testSheet(t testing.TB, cells map[string]formula.Value) *sheet.Sheet {
	t.Helper()
	s := sheet.New()
	for id, value := range cells {
		if err := s.Set(id, value); err != nil {
			t.Fatalf("Set(%s) failed: %v", id, err)
		}
	}
	return s
}

func TestEvaluateArithmetic(t *testing.T) {
	s := sheet.New()
	tests := []struct {
		input string
		want  formula.Value
	}{
		{"=2+3*4", 14.0},
		{"=(2+3)*4", 20.0},
		{"=1/2", 0.5},
		{"=10-4-3", 3.0},
		{"=2*3/4", 1.5},
		{"= 1 + 2 ", 3.0},
		{"=1/0", "#DIV/0!"},
		{"=0/5", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formula.Evaluate(tt.input, s); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateCellReferences(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{
		"A1": 10.0,
		"A2": 20.0,
		"B1": 30.0,
		"B2": 40.0,
	})

	tests := []struct {
		input string
		want  formula.Value
	}{
		{"=A1+B2", 50.0},
		{"=a1+b2", 50.0}, // cell IDs are case-insensitive
		{"=SUM(A1:B2)", 100.0},
		{"=SUM(B2:A1)", 100.0}, // corners in either order
		{"=SUM(A2:B1)", 100.0}, // swapped row/column magnitude
		{"=AVERAGE(A1:A2)", 15.0},
		{"=COUNT(A1:B2)", 4.0},
		{"=MAX(A1:B2)", 40.0},
		{"=MIN(A1:B2)", 10.0},
		{"=C9", nil},     // absent cell reads as null
		{"=C9+A1", 10.0}, // and coerces to 0 in arithmetic
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formula.Evaluate(tt.input, s); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateCoercion(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{
		"A1": "5",     // numeric text coerces
		"A2": "hello", // non-numeric text does not
		"A3": true,
		"A4": "",
	})

	tests := []struct {
		input string
		want  formula.Value
	}{
		{"=A1*2", 10.0},
		{"=A3+A3", 2.0}, // booleans coerce to 1/0
		{"=A4+1", 1.0},  // empty string coerces to 0
		{"=A2+1", "#ERROR: 无法执行数值运算"},
		{`="12"+"0.5"`, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formula.Evaluate(tt.input, s); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateNaNTextIsNotNumeric(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{
		"A1": "NaN",
		"A2": "Inf",
	})

	// cells holding NaN/Inf spellings behave like any other text:
	// arithmetic errors out, aggregates skip them
	tests := []struct {
		input string
		want  formula.Value
	}{
		{"=A1+1", "#ERROR: 无法执行数值运算"},
		{"=A2*2", "#ERROR: 无法执行数值运算"},
		{"=SUM(A1, 5)", 5.0},
		{"=SUM(A1:A2)", 0.0},
		{"=COUNT(A1:A2)", 0.0},
		{"=MAX(A1, A2)", "#ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formula.Evaluate(tt.input, s); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateBuiltins(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{
		"A1": 1.0,
		"A2": "skip me", // non-coercible cells are skipped, not errors
		"A3": 3.0,
	})

	tests := []struct {
		input string
		want  formula.Value
	}{
		{"=SUM(A1:A3)", 4.0},
		{"=SUM(1, 2, A1:A3)", 7.0},
		{"=COUNT(A1:A3)", 2.0},
		{"=AVERAGE(A1:A3)", 2.0},
		{"=MAX(A1:A3)", 3.0},
		{"=MIN(A1:A3)", 1.0},
		{"=sum(1,2)", 3.0}, // function names are case-insensitive
		{"=Sum(1,2)", 3.0},

		// empty-aggregate policy: SUM/AVERAGE/COUNT default to zero,
		// MAX/MIN error out
		{"=SUM()", 0.0},
		{"=AVERAGE()", 0.0},
		{"=COUNT()", 0.0},
		{"=MAX()", "#ERROR"},
		{"=MIN()", "#ERROR"},
		{`=MAX("not a number")`, "#ERROR"},

		// IF
		{"=IF(1, 2, 3)", 2.0},
		{"=IF(0, 2, 3)", 3.0},
		{"=IF(A1, 2, 3)", 2.0},
		{`=IF("", 2, 3)`, 3.0},
		{`=IF("text", 2, 3)`, 2.0},
		{"=IF(0, 2)", nil},
		{"=IF(1)", "#ERROR: IF 函数需要至少 2 个参数"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formula.Evaluate(tt.input, s); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateUnknownFunction(t *testing.T) {
	got := formula.Evaluate("=UNKNOWNFN(1)", sheet.New())
	str, ok := got.(string)
	if !ok || !strings.HasPrefix(str, "#ERROR") || !strings.Contains(str, "UNKNOWNFN") {
		t.Errorf("Evaluate(=UNKNOWNFN(1)) = %v, want error value naming the function", got)
	}
}

func TestEvaluatePlainLiterals(t *testing.T) {
	s := sheet.New()
	for _, input := range []string{"hello", "", "123", "A1", " =1+2"} {
		if got := formula.Evaluate(input, s); got != input {
			t.Errorf("Evaluate(%q) = %v, want the input unchanged", input, got)
		}
	}
}

func TestEvaluateNeverEscapesErrors(t *testing.T) {
	s := sheet.New()
	// malformed in various stages: all must come back as in-band error
	// values, never as anything else
	inputs := []string{
		"=",
		"=SUM(1,2",
		"=(1+2",
		`="unterminated`,
		"=1+",
		"=foo",
		"=A1>B1",
		"=1$2",
		"=UNKNOWNFN(1)",
		"=IF(1)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := formula.Evaluate(input, s)
			str, ok := got.(string)
			if !ok || !strings.HasPrefix(str, "#") {
				t.Errorf("Evaluate(%q) = %v, want a '#'-prefixed error value", input, got)
			}
		})
	}
}

func TestEvaluateErrorValuesFlowAsValues(t *testing.T) {
	s := sheet.New()
	// a division by zero inside a larger expression is just a
	// non-numeric string operand to the outer operator
	if got := formula.Evaluate("=1/0+2", s); got != "#ERROR: 无法执行数值运算" {
		t.Errorf("Evaluate(=1/0+2) = %v", got)
	}
	// and inside an aggregate it is skipped like any other text
	if got := formula.Evaluate("=SUM(1/0, 5)", s); got != 5.0 {
		t.Errorf("Evaluate(=SUM(1/0, 5)) = %v, want 5", got)
	}
}

func TestEvaluateEmptyRangeCellsCoerce(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{"A1": 10.0})
	// empty cells in a range coerce to 0 and count
	if got := formula.Evaluate("=AVERAGE(A1:A2)", s); got != 5.0 {
		t.Errorf("Evaluate(=AVERAGE(A1:A2)) = %v, want 5", got)
	}
	if got := formula.Evaluate("=COUNT(A1:A2)", s); got != 2.0 {
		t.Errorf("Evaluate(=COUNT(A1:A2)) = %v, want 2", got)
	}
	if got := formula.Evaluate("=MIN(A1:A2)", s); got != 0.0 {
		t.Errorf("Evaluate(=MIN(A1:A2)) = %v, want 0", got)
	}
}

func TestEvaluateRangeNotValidOperand(t *testing.T) {
	s := testSheet(t, map[string]formula.Value{"A1": 1.0, "A2": 2.0})
	// a range is only a valid operand to functions, never to operators
	if got := formula.Evaluate("=A1:A2+1", s); got != "#ERROR: 无法执行数值运算" {
		t.Errorf("Evaluate(=A1:A2+1) = %v", got)
	}
}

func BenchmarkEvaluateArithmetic(b *testing.B) {
	s := sheet.New()
	for i := 0; i < b.N; i++ {
		formula.Evaluate("=(2+3)*4-10/2", s)
	}
}

func BenchmarkEvaluateRangeSum(b *testing.B) {
	s := testSheet(b, map[string]formula.Value{})
	for row := 1; row <= 100; row++ {
		if err := s.Set("A"+strconv.Itoa(row), float64(row)); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		formula.Evaluate("=SUM(A1:A100)", s)
	}
}
