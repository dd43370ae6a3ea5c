package expr

func (n *NumberNode) NodeCount() int { return 1 }
func (n *FuncNode) NodeCount() int {
	return 1 + nodeCount(n.op1) + nodeCount(n.op2)
}

func (n *NumberNode) Depth() int { return 1 }
func (n *FuncNode) Depth() int {
	ld := depth(n.op1)
	rd := depth(n.op2)
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// nodeCount and depth treat a missing operand as an empty tree.
func nodeCount(n Node) int {
	if isNil(n) {
		return 0
	}
	return n.NodeCount()
}

func depth(n Node) int {
	if isNil(n) {
		return 0
	}
	return n.Depth()
}

// isNil reports whether n is absent, including typed nil pointers.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *NumberNode:
		return n == nil
	case *FuncNode:
		return n == nil
	default:
		return false
	}
}
