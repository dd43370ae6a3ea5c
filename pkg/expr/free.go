package expr

// Free releases n and everything it owns: both operands, recursively, and the
// custom operation name. It returns the number of nodes released. Nodes that
// were already released are skipped, so freeing twice releases nothing.
func Free(n Node) int {
	switch n := n.(type) {
	case *NumberNode:
		if n == nil || n.released {
			return 0
		}
		n.released = true
		return 1
	case *FuncNode:
		if n == nil || n.released {
			return 0
		}
		count := Free(n.op1) + Free(n.op2)
		if n.oper == OpCustom {
			n.ident = ""
		}
		n.op1, n.op2 = nil, nil
		n.released = true
		return count + 1
	default:
		return 0
	}
}
