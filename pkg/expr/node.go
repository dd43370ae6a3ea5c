package expr

// Node is an expression tree node: either a *NumberNode or a *FuncNode.
type Node interface {
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
	exprNode()
}

// NumberNode is a numeric literal.
type NumberNode struct {
	val      Value
	released bool
}

// FuncNode applies an operation to up to two operands. Ident is only kept for
// custom operations.
type FuncNode struct {
	oper     OperType
	ident    string
	op1, op2 Node
	released bool
}

func (*NumberNode) exprNode() {}
func (*FuncNode) exprNode()   {}

// NewNumberNode builds a literal, classifying v once.
func NewNumberNode(v float64) *NumberNode {
	return &NumberNode{val: NewValue(v)}
}

// NewFuncNode resolves name and builds a call node owning op1 and op2.
// The name is retained only when it does not match a built-in. Operand count
// is not checked here; op2 is nil for unary calls.
func NewFuncNode(name string, op1, op2 Node) *FuncNode {
	n := &FuncNode{
		oper: Resolve(name),
		op1:  op1,
		op2:  op2,
	}
	if n.oper == OpCustom {
		n.ident = name
	}
	return n
}

func (n *NumberNode) Value() Value { return n.val }

func (n *FuncNode) Oper() OperType { return n.oper }

// Ident is the custom operation name, empty for built-ins and after Free.
func (n *FuncNode) Ident() string { return n.ident }

// Name is Ident for custom calls and the table name otherwise.
func (n *FuncNode) Name() string {
	if n.oper == OpCustom {
		return n.ident
	}
	return n.oper.String()
}

// Operands returns the present operands in order.
func (n *FuncNode) Operands() []Node {
	var ops []Node
	if !isNil(n.op1) {
		ops = append(ops, n.op1)
	}
	if !isNil(n.op2) {
		ops = append(ops, n.op2)
	}
	return ops
}

func (n *FuncNode) Op1() Node { return n.op1 }
func (n *FuncNode) Op2() Node { return n.op2 }

// Released reports whether Free has been called on the node.
func (n *NumberNode) Released() bool { return n.released }
func (n *FuncNode) Released() bool   { return n.released }
