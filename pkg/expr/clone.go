package expr

// Clone returns a deep copy of n. Trees never share nodes, so a subtree that
// is needed twice has to be cloned.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *NumberNode:
		if n == nil {
			return nil
		}
		return n.Clone()
	case *FuncNode:
		if n == nil {
			return nil
		}
		return n.Clone()
	default:
		return nil
	}
}

func (n *NumberNode) Clone() *NumberNode {
	return &NumberNode{val: n.val}
}

func (n *FuncNode) Clone() *FuncNode {
	return &FuncNode{
		oper:  n.oper,
		ident: n.ident,
		op1:   Clone(n.op1),
		op2:   Clone(n.op2),
	}
}
