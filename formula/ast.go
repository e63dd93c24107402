package formula

import (
	"fmt"
	"strings"
)

// NodePosition records where a node came from in the formula body
type NodePosition struct {
	Start int
	End   int
}

// Node is the closed set of expression nodes produced by parsing. the
// evaluator matches on the concrete types exhaustively; a node is
// well-formed only if it came out of a successful Parse.
type Node interface {
	GetPosition() NodePosition
	ToString() string
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value    float64
	Position NodePosition
}

func (n *NumberNode) GetPosition() NodePosition {
	return n.Position
}

func (n *NumberNode) ToString() string {
	// format without unnecessary decimals
	if n.Value == float64(int64(n.Value)) {
		return fmt.Sprintf("%d", int64(n.Value))
	}
	return fmt.Sprintf("%g", n.Value)
}

// StringNode represents a string literal
type StringNode struct {
	Value    string
	Position NodePosition
}

func (n *StringNode) GetPosition() NodePosition {
	return n.Position
}

func (n *StringNode) ToString() string {
	return fmt.Sprintf("%q", n.Value)
}

// CellRefNode represents a single cell reference like "B2"
type CellRefNode struct {
	Cell     string
	Position NodePosition
}

func (n *CellRefNode) GetPosition() NodePosition {
	return n.Position
}

func (n *CellRefNode) ToString() string {
	return n.Cell
}

// RangeRefNode represents a rectangular range denoted by two opposite
// corner cells, like "A1:B2". the corners may arrive in any order; the
// data provider normalizes them.
type RangeRefNode struct {
	Start    string
	End      string
	Position NodePosition
}

func (n *RangeRefNode) GetPosition() NodePosition {
	return n.Position
}

func (n *RangeRefNode) ToString() string {
	return n.Start + ":" + n.End
}

// BinaryOpNode represents a binary arithmetic operation
type BinaryOpNode struct {
	Op       string // one of "+", "-", "*", "/"
	Left     Node
	Right    Node
	Position NodePosition
}

func (n *BinaryOpNode) GetPosition() NodePosition {
	return n.Position
}

func (n *BinaryOpNode) ToString() string {
	return fmt.Sprintf("(%s%s%s)", n.Left.ToString(), n.Op, n.Right.ToString())
}

// FunctionCallNode represents a function call with ordered arguments
type FunctionCallNode struct {
	Name     string
	Args     []Node
	Position NodePosition
}

func (n *FunctionCallNode) GetPosition() NodePosition {
	return n.Position
}

func (n *FunctionCallNode) ToString() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.ToString()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ","))
}
