package builtins

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/wildfunctions/cilisp/pkg/expr"
)

var ErrNoInput = errors.New("no input available")

func init() {
	register(expr.OpRead, newRead)
	register(expr.OpPrint, newPrint)
}

// newRead consumes the next whitespace-separated number from the input.
func newRead(env *environment) expr.HandlerFunc {
	return func([]expr.Value) (float64, error) {
		if env.scan == nil {
			return 0, ErrNoInput
		}
		if !env.scan.Scan() {
			if err := env.scan.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, ErrNoInput
		}
		word := env.scan.Text()
		v, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return 0, fmt.Errorf("read %q: not a number", word)
		}
		return v, nil
	}
}

// newPrint writes its operand and passes the magnitude through.
func newPrint(env *environment) expr.HandlerFunc {
	return func(args []expr.Value) (float64, error) {
		if env.Out != nil {
			if err := expr.WriteValue(env.Out, args[0]); err != nil {
				return 0, err
			}
		}
		return args[0].Val, nil
	}
}
