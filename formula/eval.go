package formula

// Evaluator walks an AST against a CellDataProvider. it holds no other
// state: every evaluation is a pure function of the tree and the
// provider's current contents.
type Evaluator struct {
	provider CellDataProvider
}

// NewEvaluator creates an evaluator reading cells from the given provider
func NewEvaluator(provider CellDataProvider) *Evaluator {
	return &Evaluator{provider: provider}
}

// EvalNode evaluates a single node. evaluation failures are in-band
// '#'-prefixed string Values; the error return carries only provider
// failures (invalid cell ranges), which the Evaluate boundary converts.
func (e *Evaluator) EvalNode(node Node) (Value, error) {
	switch n := node.(type) {
	case *NumberNode:
		return n.Value, nil

	case *StringNode:
		return n.Value, nil

	case *CellRefNode:
		return e.provider.GetCellValue(n.Cell), nil

	case *RangeRefNode:
		rows, err := e.provider.GetCellRange(n.Start, n.End)
		if err != nil {
			return nil, err
		}
		return rows, nil

	case *BinaryOpNode:
		return e.evalBinaryOp(n)

	case *FunctionCallNode:
		return e.evalFunctionCall(n)

	default:
		// unreachable from a well-formed parse
		return errUnknownNode, nil
	}
}

// evalBinaryOp evaluates both operands, coerces them to numbers, and
// applies the operator. ranges and unparseable strings are not numeric
// operands; division by a coerced zero is its own error value.
func (e *Evaluator) evalBinaryOp(n *BinaryOpNode) (Value, error) {
	leftVal, err := e.EvalNode(n.Left)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.EvalNode(n.Right)
	if err != nil {
		return nil, err
	}

	left, leftOk := toNumber(leftVal)
	right, rightOk := toNumber(rightVal)
	if !leftOk || !rightOk {
		return errNonNumeric, nil
	}

	switch n.Op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return errDivZero, nil
		}
		return left / right, nil
	default:
		// the lexer only emits the four operators above
		return "#ERROR: 未知运算符 " + n.Op, nil
	}
}

// evalFunctionCall eagerly evaluates the arguments left to right, then
// dispatches on the function name
func (e *Evaluator) evalFunctionCall(n *FunctionCallNode) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, argNode := range n.Args {
		val, err := e.EvalNode(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	return callBuiltin(n.Name, args), nil
}
