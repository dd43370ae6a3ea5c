package builtins

import "github.com/wildfunctions/cilisp/pkg/expr"

func init() {
	register(expr.OpRand, newRand)
}

// newRand returns a uniform value in [0, 1).
func newRand(env *environment) expr.HandlerFunc {
	return func([]expr.Value) (float64, error) {
		return env.Rand.Float64(), nil
	}
}
