// Package reader turns s-expression source into expression trees:
//
//	program := s_expr*
//	s_expr  := number | '(' name s_expr? s_expr? ')'
//
// Trees are built bottom-up with expr.NewNumberNode and expr.NewFuncNode.
package reader

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/cilisp/pkg/expr"
)

// ErrIncomplete is wrapped by the error returned when input ends inside an
// open call. Interactive callers can read another line and retry.
var ErrIncomplete = errors.New("incomplete expression")

// SyntaxError reports malformed input at a source position.
type SyntaxError struct {
	Line, Col  int
	Msg        string
	incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrIncomplete && e.incomplete
}

// maxOperands is the number of operand slots on a call node.
const maxOperands = 2

// Parser reads expressions from a token stream.
type Parser struct {
	lex *Lexer
	cur Token
}

func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// Parse returns every top-level expression in src. On error, trees already
// built are released.
func Parse(src string) ([]expr.Node, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	var nodes []expr.Node
	for p.cur.Type != TokEOF {
		n, err := p.parseExpr()
		if err != nil {
			for _, n := range nodes {
				expr.Free(n)
			}
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseOne parses src as exactly one expression.
func ParseOne(src string) (expr.Node, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == TokEOF {
		return nil, p.incomplete("empty input")
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokEOF {
		expr.Free(n)
		return nil, p.errorf("unexpected %s after expression", p.cur.Type)
	}
	return n, nil
}

func (p *Parser) parseExpr() (expr.Node, error) {
	switch p.cur.Type {
	case TokNumber:
		n := expr.NewNumberNode(p.cur.Number)
		return n, p.advance()
	case TokLParen:
		return p.parseCall()
	case TokEOF:
		return nil, p.incomplete("unexpected end of input")
	default:
		return nil, p.errorf("unexpected %s", p.cur.Type)
	}
}

func (p *Parser) parseCall() (expr.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.cur.Type {
	case TokSymbol:
	case TokEOF:
		return nil, p.incomplete("expected function name")
	default:
		return nil, p.errorf("expected function name, got %s", p.cur.Type)
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}

	var ops []expr.Node
	release := func() {
		for _, op := range ops {
			expr.Free(op)
		}
	}
	for p.cur.Type != TokRParen {
		if p.cur.Type == TokEOF {
			release()
			return nil, p.incomplete(fmt.Sprintf("missing ')' in call to %s", name))
		}
		if len(ops) == maxOperands {
			release()
			return nil, p.errorf("too many operands to %s (at most %d)", name, maxOperands)
		}
		op, err := p.parseExpr()
		if err != nil {
			release()
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := p.advance(); err != nil {
		release()
		return nil, err
	}

	var op1, op2 expr.Node
	if len(ops) > 0 {
		op1 = ops[0]
	}
	if len(ops) > 1 {
		op2 = ops[1]
	}
	return expr.NewFuncNode(name, op1, op2), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.cur.Line, Col: p.cur.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) incomplete(msg string) error {
	return &SyntaxError{Line: p.cur.Line, Col: p.cur.Col, Msg: msg, incomplete: true}
}
