package formula

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Parser parses tokens into an AST via recursive descent over two
// precedence tiers: additive below multiplicative, both left-associative.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser over the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses the tokens into a single AST root
func (p *Parser) Parse() (Node, error) {
	return p.parseAddSub()
}

// parseAddSub handles addition and subtraction
func (p *Parser) parseAddSub() (Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}

	for p.currentIsOperator("+", "-") {
		op := p.tokens[p.pos].Value
		p.pos++

		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:       op,
			Left:     left,
			Right:    right,
			Position: NodePosition{Start: left.GetPosition().Start, End: right.GetPosition().End},
		}
	}

	return left, nil
}

// parseMulDiv handles multiplication and division
func (p *Parser) parseMulDiv() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.currentIsOperator("*", "/") {
		op := p.tokens[p.pos].Value
		p.pos++

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:       op,
			Left:     left,
			Right:    right,
			Position: NodePosition{Start: left.GetPosition().Start, End: right.GetPosition().End},
		}
	}

	return left, nil
}

// parsePrimary handles primary expressions: literals, cell and range
// references, function calls, and parenthesized groups
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.pos++
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("无效的数字: %s", tok.Value)
		}
		return &NumberNode{
			Value:    val,
			Position: NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
		}, nil

	case TokenString:
		p.pos++
		// positions are rune indices, so measure the literal in runes
		return &StringNode{
			Value:    tok.Value,
			Position: NodePosition{Start: tok.Pos, End: tok.Pos + utf8.RuneCountInString(tok.Value) + 2}, // +2 for quotes
		}, nil

	case TokenCellRef:
		p.pos++
		// a colon directly followed by another cell reference makes
		// this corner of a range; a lone colon leaves the cell as-is
		if p.current().Type == TokenColon && p.peek(1).Type == TokenCellRef {
			end := p.peek(1)
			p.pos += 2
			return &RangeRefNode{
				Start:    tok.Value,
				End:      end.Value,
				Position: NodePosition{Start: tok.Pos, End: end.Pos + len(end.Value)},
			}, nil
		}
		return &CellRefNode{
			Cell:     tok.Value,
			Position: NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
		}, nil

	case TokenFunction:
		return p.parseFunctionCall()

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRightParen {
			return nil, errors.New("缺少右括号")
		}
		p.pos++
		return node, nil

	default:
		return nil, fmt.Errorf("无法解析的表达式: %s", tok.Value)
	}
}

// parseFunctionCall parses a function name with its parenthesized,
// comma-separated argument list
func (p *Parser) parseFunctionCall() (Node, error) {
	funcTok := p.current()
	p.pos++

	if p.current().Type != TokenLeftParen {
		return nil, fmt.Errorf("函数 %s 后缺少左括号", funcTok.Value)
	}
	p.pos++

	args := []Node{}

	// empty argument list
	if p.current().Type == TokenRightParen {
		endPos := p.current().Pos + 1
		p.pos++
		return &FunctionCallNode{
			Name:     funcTok.Value,
			Args:     args,
			Position: NodePosition{Start: funcTok.Pos, End: endPos},
		}, nil
	}

	for {
		arg, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.current().Type == TokenRightParen {
			p.pos++
			break
		}
		if p.current().Type != TokenComma {
			return nil, fmt.Errorf("函数 %s 缺少右括号", funcTok.Value)
		}
		p.pos++
	}

	return &FunctionCallNode{
		Name:     funcTok.Value,
		Args:     args,
		Position: NodePosition{Start: funcTok.Pos, End: p.tokens[p.pos-1].Pos + 1},
	}, nil
}

// current returns the token at the cursor. the token sequence always ends
// with EOF, so running past the end just keeps returning it.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: p.pos}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: pos}
	}
	return p.tokens[pos]
}

func (p *Parser) currentIsOperator(ops ...string) bool {
	tok := p.current()
	if tok.Type != TokenOperator {
		return false
	}
	for _, op := range ops {
		if tok.Value == op {
			return true
		}
	}
	return false
}
