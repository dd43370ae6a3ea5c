package builtins

import "github.com/wildfunctions/cilisp/pkg/expr"

func init() {
	register(expr.OpEqual, relation(func(a, b float64) bool { return a == b }))
	register(expr.OpLess, relation(func(a, b float64) bool { return a < b }))
	register(expr.OpGreater, relation(func(a, b float64) bool { return a > b }))
}

// relation yields 1 when holds(a, b), else 0.
func relation(holds func(a, b float64) bool) constructor {
	return func(*environment) expr.HandlerFunc {
		return func(args []expr.Value) (float64, error) {
			if holds(args[0].Val, args[1].Val) {
				return 1, nil
			}
			return 0, nil
		}
	}
}
