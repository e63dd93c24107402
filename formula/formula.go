// Package formula implements a spreadsheet-style formula engine: a
// lexer, a recursive-descent parser and a tree-walking evaluator over
// a pluggable source of cell values.
//
// Evaluate is the sole entry point. it never fails: inputs without a
// leading '=' pass through unchanged, and every lexing, parsing or
// evaluation failure surfaces as an in-band '#'-prefixed string value.
package formula

import "strings"

// Evaluate evaluates a formula string against the given provider. a
// string not starting with '=' is a plain literal and is returned as-is.
func Evaluate(input string, provider CellDataProvider) Value {
	if !strings.HasPrefix(input, "=") {
		return input
	}

	body := strings.TrimSpace(input[1:])

	tokens, err := NewLexer(body).Tokenize()
	if err != nil {
		return errorValue(err)
	}

	node, err := NewParser(tokens).Parse()
	if err != nil {
		return errorValue(err)
	}

	result, err := NewEvaluator(provider).EvalNode(node)
	if err != nil {
		return errorValue(err)
	}

	return result
}

// errorValue converts a pipeline failure into its in-band representation.
// this is the single boundary: no failure from tokenizing, parsing or
// evaluating ever escapes to the caller of Evaluate.
func errorValue(err error) Value {
	msg := err.Error()
	if msg == "" {
		return errBareError
	}
	return "#ERROR: " + msg
}
