package expr

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func num(v float64) Node { return NewNumberNode(v) }

func call(name string, ops ...Node) *FuncNode {
	var op1, op2 Node
	if len(ops) > 0 {
		op1 = ops[0]
	}
	if len(ops) > 1 {
		op2 = ops[1]
	}
	return NewFuncNode(name, op1, op2)
}

func assertValue(t *testing.T, got Value, wantVal float64, wantType NumType) {
	t.Helper()
	if got.Type != wantType {
		t.Errorf("type = %v, want %v (value %v)", got.Type, wantType, got.Val)
	}
	switch {
	case math.IsNaN(wantVal):
		if !math.IsNaN(got.Val) {
			t.Errorf("value = %v, want NaN", got.Val)
		}
	case math.IsInf(wantVal, 0):
		if got.Val != wantVal {
			t.Errorf("value = %v, want %v", got.Val, wantVal)
		}
	default:
		if math.Abs(got.Val-wantVal) > 1e-12 {
			t.Errorf("value = %v, want %v", got.Val, wantVal)
		}
	}
}

func TestEvalBuiltins(t *testing.T) {
	cases := []struct {
		name     string
		node     Node
		want     float64
		wantType NumType
	}{
		{"neg", call("neg", num(5)), -5, IntType},
		{"abs", call("abs", num(-2.5)), 2.5, DoubleType},
		{"exp", call("exp", num(0)), 1, IntType},
		{"sqrt", call("sqrt", num(16)), 4, IntType},
		{"sqrt2", call("sqrt", num(2)), math.Sqrt2, DoubleType},
		{"add", call("add", num(2), num(3)), 5, IntType},
		{"add frac", call("add", num(2.5), num(0.25)), 2.75, DoubleType},
		{"add to int", call("add", num(2.5), num(0.5)), 3, IntType},
		{"sub", call("sub", num(2), num(7)), -5, IntType},
		{"mult", call("mult", num(1.5), num(4)), 6, IntType},
		{"div", call("div", num(1), num(4)), 0.25, DoubleType},
		{"remainder", call("remainder", num(7), num(3)), 1, IntType},
		{"remainder neg", call("remainder", num(-7.5), num(2)), -1.5, DoubleType},
		{"log", call("log", num(1)), 0, IntType},
		{"pow", call("pow", num(2), num(10)), 1024, IntType},
		{"pow frac", call("pow", num(4), num(0.5)), 2, IntType},
		{"max", call("max", num(3), num(-1)), 3, IntType},
		{"min", call("min", num(3), num(-1.5)), -1.5, DoubleType},
		{"exp2", call("exp2", num(3)), 8, IntType},
		{"cbrt", call("cbrt", num(-0.125)), -0.5, DoubleType},
		{"hypot", call("hypot", num(3), num(4)), 5, IntType},
		{"nested", call("add", call("neg", num(3)), call("mult", num(2), num(4))), 5, IntType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertValue(t, Eval(tc.node), tc.want, tc.wantType)

			got, err := Evaluate(tc.node)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			assertValue(t, got, tc.want, tc.wantType)
		})
	}
}

func TestEvalDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want float64
	}{
		{"div by zero", call("div", num(1), num(0)), math.Inf(1)},
		{"neg div by zero", call("div", num(-1), num(0)), math.Inf(-1)},
		{"zero by zero", call("div", num(0), num(0)), math.NaN()},
		{"sqrt neg", call("sqrt", num(-1)), math.NaN()},
		{"log neg", call("log", num(-1)), math.NaN()},
		{"log zero", call("log", num(0)), math.Inf(-1)},
		{"remainder zero", call("remainder", num(1), num(0)), math.NaN()},
		{"propagates", call("add", num(1), call("sqrt", num(-4))), math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertValue(t, Eval(tc.node), tc.want, DoubleType)

			got, err := Evaluate(tc.node)
			if err != nil {
				t.Fatalf("domain errors are not evaluation errors: %v", err)
			}
			assertValue(t, got, tc.want, DoubleType)
		})
	}
}

// max and min follow math.Max and math.Min: a NaN on either side wins,
// including the sentinel standing in for a missing operand.
func TestEvalMaxMinPropagateNaN(t *testing.T) {
	for _, n := range []Node{
		call("max", num(1), call("log", num(-1))),
		call("min", num(1), call("sqrt", num(-4))),
		call("min", call("sqrt", num(-4)), num(1)),
		call("max", num(7)),
	} {
		assertValue(t, Eval(n), math.NaN(), DoubleType)
	}
}

func TestEvalNil(t *testing.T) {
	assertValue(t, Eval(nil), math.NaN(), IntType)

	var typed *FuncNode
	assertValue(t, Eval(typed), math.NaN(), IntType)

	if _, err := Evaluate(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("Evaluate(nil) error = %v, want ErrNilNode", err)
	}
}

func TestEvalMissingOperand(t *testing.T) {
	n := call("add", num(1))
	// the missing side evaluates to the sentinel and NaN flows upward
	assertValue(t, Eval(n), math.NaN(), DoubleType)

	_, err := Evaluate(n)
	if !errors.Is(err, ErrMissingOperand) {
		t.Fatalf("Evaluate error = %v, want ErrMissingOperand", err)
	}
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Op != OpAdd {
		t.Errorf("error %v should be an *EvalError for add", err)
	}

	_, err = Evaluate(NewFuncNode("sub", nil, num(2)))
	if !errors.Is(err, ErrMissingOperand) {
		t.Errorf("gap in operands: error = %v, want ErrMissingOperand", err)
	}
}

func TestEvaluateNestedErrorIsInnermost(t *testing.T) {
	n := call("mult", num(2), call("hypot", num(1)))
	_, err := Evaluate(n)
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Op != OpHypot {
		t.Errorf("error = %v, want one raised by hypot", err)
	}
}

func TestEvalExtraOperand(t *testing.T) {
	n := call("neg", num(4), num(9))
	// the lenient path ignores the second operand
	assertValue(t, Eval(n), -4, IntType)

	if _, err := Evaluate(n); !errors.Is(err, ErrExtraOperand) {
		t.Errorf("Evaluate error = %v, want ErrExtraOperand", err)
	}
}

func TestEvalUnsupported(t *testing.T) {
	for _, name := range []string{"read", "rand", "print", "equal", "less", "greater", "myFunc"} {
		t.Run(name, func(t *testing.T) {
			var diag bytes.Buffer
			ev := NewEvaluator(WithDiagnostics(&diag))
			n := call(name, num(1), num(2))

			assertValue(t, ev.Eval(n), math.NaN(), DoubleType)
			if !strings.Contains(diag.String(), "not supported") {
				t.Errorf("diagnostic = %q, want a not supported report", diag.String())
			}

			_, err := ev.Evaluate(n)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("Evaluate error = %v, want ErrUnsupported", err)
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	ev := NewEvaluator(WithDiagnostics(&bytes.Buffer{}))
	ev.Handle(OpLess, func(args []Value) (float64, error) {
		if args[0].Val < args[1].Val {
			return 1, nil
		}
		return 0, nil
	})
	ev.HandleCustom("avg", 2, func(args []Value) (float64, error) {
		return (args[0].Val + args[1].Val) / 2, nil
	})
	ev.HandleCustom("count", AnyArity, func(args []Value) (float64, error) {
		return float64(len(args)), nil
	})

	assertValue(t, ev.Eval(call("less", num(1), num(2))), 1, IntType)
	assertValue(t, ev.Eval(call("avg", num(1), num(2))), 1.5, DoubleType)

	got, err := ev.Evaluate(call("avg", num(3), call("add", num(1), num(4))))
	if err != nil {
		t.Fatal(err)
	}
	assertValue(t, got, 4, IntType)

	if _, err := ev.Evaluate(call("avg", num(3))); !errors.Is(err, ErrMissingOperand) {
		t.Errorf("avg with one operand: error = %v, want ErrMissingOperand", err)
	}

	for want, n := range map[float64]Node{0: call("count"), 1: call("count", num(7)), 2: call("count", num(7), num(8))} {
		got, err := ev.Evaluate(n)
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		assertValue(t, got, want, IntType)
	}
}

func TestHandlerError(t *testing.T) {
	var diag bytes.Buffer
	ev := NewEvaluator(WithDiagnostics(&diag))
	boom := errors.New("boom")
	ev.HandleCustom("fail", AnyArity, func([]Value) (float64, error) { return 0, boom })

	assertValue(t, ev.Eval(call("fail")), math.NaN(), DoubleType)
	if !strings.Contains(diag.String(), "fail: boom") {
		t.Errorf("diagnostic = %q", diag.String())
	}
	if _, err := ev.Evaluate(call("fail")); !errors.Is(err, boom) {
		t.Errorf("Evaluate error = %v, want boom", err)
	}
}

func TestHandlePanicsForBuiltins(t *testing.T) {
	ev := NewEvaluator()
	for _, fn := range []func(){
		func() { ev.Handle(OpAdd, nil) },
		func() { ev.Handle(OpCustom, nil) },
		func() { ev.HandleCustom("sqrt", 1, nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		}()
	}
}

// strayNode satisfies Node by embedding a NumberNode but is not one of the
// evaluator's variants.
type strayNode struct{ *NumberNode }

func TestEvalMalformedNode(t *testing.T) {
	var diag bytes.Buffer
	ev := NewEvaluator(WithDiagnostics(&diag))
	n := strayNode{NewNumberNode(1)}

	assertValue(t, ev.Eval(n), math.NaN(), IntType)
	if !strings.Contains(diag.String(), "invalid node type") {
		t.Errorf("diagnostic = %q", diag.String())
	}
	if _, err := ev.Evaluate(n); !errors.Is(err, ErrMalformedNode) {
		t.Errorf("Evaluate error = %v, want ErrMalformedNode", err)
	}
}

func TestEvaluateReleased(t *testing.T) {
	n := call("add", num(1), num(2))
	Free(n)
	if _, err := Evaluate(n); !errors.Is(err, ErrReleased) {
		t.Errorf("Evaluate(freed) error = %v, want ErrReleased", err)
	}
}

func TestEvalDoesNotMutate(t *testing.T) {
	n := call("pow", call("add", num(1), num(1)), num(3))
	before := n.String()
	for i := 0; i < 3; i++ {
		assertValue(t, Eval(n), 8, IntType)
	}
	if n.String() != before {
		t.Errorf("tree changed from %s to %s", before, n.String())
	}
}

func TestEvalConcurrent(t *testing.T) {
	n := call("hypot", call("mult", num(3), num(1)), num(4))
	done := make(chan Value)
	for i := 0; i < 8; i++ {
		go func() { done <- Eval(n) }()
	}
	for i := 0; i < 8; i++ {
		assertValue(t, <-done, 5, IntType)
	}
}
