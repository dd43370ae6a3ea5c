package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// String methods render the node as source that the reader accepts again.

func (n *NumberNode) String() string {
	return formatLiteral(n.val)
}

func (n *FuncNode) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Name())
	for _, op := range n.Operands() {
		b.WriteByte(' ')
		b.WriteString(op.String())
	}
	b.WriteByte(')')
	return b.String()
}

// formatLiteral keeps integers free of exponents and fractions.
func formatLiteral(v Value) string {
	if v.Type == IntType {
		return strconv.FormatFloat(v.Val, 'f', -1, 64)
	}
	return strconv.FormatFloat(v.Val, 'g', -1, 64)
}

var latexFuncs = map[OperType]string{
	OpLog:  `\ln`,
	OpMax:  `\max`,
	OpMin:  `\min`,
	OpRead: `\operatorname{read}`,
	OpRand: `\operatorname{rand}`,
}

// LaTeX methods

func (n *NumberNode) LaTeX() string {
	return formatLiteral(n.val)
}

func (n *FuncNode) LaTeX() string {
	a, b := latexOperand(n.op1), latexOperand(n.op2)
	switch n.oper {
	case OpNeg:
		return fmt.Sprintf("-{%s}", a)
	case OpAbs:
		return fmt.Sprintf("|%s|", a)
	case OpExp:
		return fmt.Sprintf("e^{%s}", a)
	case OpSqrt:
		return fmt.Sprintf("\\sqrt{%s}", a)
	case OpCbrt:
		return fmt.Sprintf("\\sqrt[3]{%s}", a)
	case OpExp2:
		return fmt.Sprintf("2^{%s}", a)
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", a, b)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", a, b)
	case OpMult:
		return fmt.Sprintf("{%s} \\cdot {%s}", a, b)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", a, b)
	case OpRemainder:
		return fmt.Sprintf("{%s} \\bmod {%s}", a, b)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", a, b)
	case OpHypot:
		return fmt.Sprintf("\\sqrt{{%s}^2 + {%s}^2}", a, b)
	case OpEqual:
		return fmt.Sprintf("[{%s} = {%s}]", a, b)
	case OpLess:
		return fmt.Sprintf("[{%s} < {%s}]", a, b)
	case OpGreater:
		return fmt.Sprintf("[{%s} > {%s}]", a, b)
	case OpPrint:
		return a
	}
	name, ok := latexFuncs[n.oper]
	if !ok {
		name = fmt.Sprintf("\\operatorname{%s}", n.ident)
	}
	var args []string
	for _, op := range n.Operands() {
		args = append(args, op.LaTeX())
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// latexOperand renders a missing operand as an empty group.
func latexOperand(n Node) string {
	if isNil(n) {
		return ""
	}
	return n.LaTeX()
}
