package expr

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var (
	ErrNilNode        = errors.New("nil node")
	ErrMalformedNode  = errors.New("invalid node type")
	ErrMissingOperand = errors.New("missing operand")
	ErrExtraOperand   = errors.New("unexpected operand")
	ErrUnsupported    = errors.New("operation not supported")
	ErrReleased       = errors.New("node already released")
)

// EvalError ties an evaluation failure to the call that raised it.
type EvalError struct {
	Op    OperType
	Ident string
	Err   error
}

func (e *EvalError) Error() string {
	name := e.Op.String()
	if e.Op == OpCustom && e.Ident != "" {
		name = e.Ident
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// HandlerFunc computes the magnitude of an extension operation from its
// evaluated operands. The slice always has the operation's arity.
type HandlerFunc func(args []Value) (float64, error)

type customHandler struct {
	arity int
	fn    HandlerFunc
}

// Evaluator walks expression trees. Handlers must be registered before the
// evaluator is shared; evaluation itself never mutates nodes.
type Evaluator struct {
	diag     io.Writer
	handlers map[OperType]HandlerFunc
	custom   map[string]customHandler
}

type Option func(*Evaluator)

// WithDiagnostics sends diagnostics to w instead of os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(ev *Evaluator) { ev.diag = w }
}

func NewEvaluator(opts ...Option) *Evaluator {
	ev := &Evaluator{
		diag:     os.Stderr,
		handlers: map[OperType]HandlerFunc{},
		custom:   map[string]customHandler{},
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Handle installs fn for a built-in extension operation (read, rand, print,
// equal, less, greater). It panics for arithmetic operations and OpCustom.
func (ev *Evaluator) Handle(op OperType, fn HandlerFunc) {
	if !op.IsExtension() || op == OpCustom {
		panic(fmt.Sprintf("expr: no handler allowed for %s", op))
	}
	ev.handlers[op] = fn
}

// HandleCustom installs fn for calls to a custom operation name. arity may be
// AnyArity. It panics if name is a built-in.
func (ev *Evaluator) HandleCustom(name string, arity int, fn HandlerFunc) {
	if Resolve(name) != OpCustom {
		panic(fmt.Sprintf("expr: %q is a built-in operation", name))
	}
	ev.custom[name] = customHandler{arity: arity, fn: fn}
}

// lookup returns the handler and arity for an extension call.
func (ev *Evaluator) lookup(n *FuncNode) (HandlerFunc, int, bool) {
	if n.oper == OpCustom {
		h, ok := ev.custom[n.ident]
		return h.fn, h.arity, ok
	}
	fn, ok := ev.handlers[n.oper]
	return fn, n.oper.Arity(), ok
}

func (ev *Evaluator) report(format string, args ...any) {
	fmt.Fprintf(ev.diag, "ERROR: "+format+"\n", args...)
}

var defaultEvaluator = NewEvaluator()

// Eval evaluates n with an evaluator that has no extension handlers and
// reports to os.Stderr.
func Eval(n Node) Value {
	return defaultEvaluator.Eval(n)
}

// Evaluate is the checked counterpart of Eval.
func Evaluate(n Node) (Value, error) {
	return defaultEvaluator.Evaluate(n)
}

// Eval never fails: an absent node yields Sentinel, a missing operand turns
// into NaN that flows upward, unsupported operations yield NaN, and invalid
// nodes are reported to the diagnostics writer.
func (ev *Evaluator) Eval(n Node) Value {
	switch n := n.(type) {
	case nil:
		return Sentinel()
	case *NumberNode:
		if n == nil {
			return Sentinel()
		}
		return n.val
	case *FuncNode:
		if n == nil {
			return Sentinel()
		}
		return ev.evalFunc(n)
	default:
		ev.report("%v %T, probably invalid writes somewhere!", ErrMalformedNode, n)
		return Sentinel()
	}
}

func (ev *Evaluator) evalFunc(n *FuncNode) Value {
	if !n.oper.IsExtension() {
		if n.oper.Arity() == 1 {
			return NewValue(unary(n.oper, ev.Eval(n.op1).Val))
		}
		a := ev.Eval(n.op1).Val
		b := ev.Eval(n.op2).Val
		return NewValue(binary(n.oper, a, b))
	}

	fn, arity, ok := ev.lookup(n)
	if !ok {
		ev.report("%v", &EvalError{Op: n.oper, Ident: n.ident, Err: ErrUnsupported})
		return NewValue(math.NaN())
	}
	args := make([]Value, 0, 2)
	switch arity {
	case 1:
		args = append(args, ev.Eval(n.op1))
	case 2:
		args = append(args, ev.Eval(n.op1), ev.Eval(n.op2))
	case AnyArity:
		for _, op := range n.Operands() {
			args = append(args, ev.Eval(op))
		}
	}
	v, err := fn(args)
	if err != nil {
		ev.report("%v", &EvalError{Op: n.oper, Ident: n.ident, Err: err})
		return NewValue(math.NaN())
	}
	return NewValue(v)
}

// Evaluate checks the tree as it goes: absent, released or invalid nodes,
// wrong operand counts, unsupported operations and handler failures are all
// returned as errors. A NaN produced by the arithmetic itself is a result,
// not an error.
func (ev *Evaluator) Evaluate(n Node) (Value, error) {
	switch n := n.(type) {
	case nil:
		return Sentinel(), ErrNilNode
	case *NumberNode:
		if n == nil {
			return Sentinel(), ErrNilNode
		}
		if n.released {
			return Sentinel(), ErrReleased
		}
		return n.val, nil
	case *FuncNode:
		if n == nil {
			return Sentinel(), ErrNilNode
		}
		if n.released {
			return Sentinel(), &EvalError{Op: n.oper, Ident: n.ident, Err: ErrReleased}
		}
		return ev.evaluateFunc(n)
	default:
		return Sentinel(), fmt.Errorf("%w %T", ErrMalformedNode, n)
	}
}

func (ev *Evaluator) evaluateFunc(n *FuncNode) (Value, error) {
	arity := n.oper.Arity()
	var fn HandlerFunc
	if n.oper.IsExtension() {
		var ok bool
		fn, arity, ok = ev.lookup(n)
		if !ok {
			return Sentinel(), &EvalError{Op: n.oper, Ident: n.ident, Err: ErrUnsupported}
		}
	}
	if err := checkArity(n, arity); err != nil {
		return Sentinel(), &EvalError{Op: n.oper, Ident: n.ident, Err: err}
	}

	ops := n.Operands()
	args := make([]Value, 0, len(ops))
	for _, op := range ops {
		v, err := ev.Evaluate(op)
		if err != nil {
			return Sentinel(), err
		}
		args = append(args, v)
	}

	if fn != nil {
		v, err := fn(args)
		if err != nil {
			return Sentinel(), &EvalError{Op: n.oper, Ident: n.ident, Err: err}
		}
		return NewValue(v), nil
	}
	if arity == 1 {
		return NewValue(unary(n.oper, args[0].Val)), nil
	}
	return NewValue(binary(n.oper, args[0].Val, args[1].Val)), nil
}

func checkArity(n *FuncNode, arity int) error {
	has1, has2 := !isNil(n.op1), !isNil(n.op2)
	if has2 && !has1 {
		return fmt.Errorf("%w: first operand absent", ErrMissingOperand)
	}
	got := 0
	if has1 {
		got++
	}
	if has2 {
		got++
	}
	switch {
	case arity == AnyArity:
		return nil
	case got < arity:
		return fmt.Errorf("%w: want %d, got %d", ErrMissingOperand, arity, got)
	case got > arity:
		return fmt.Errorf("%w: want %d, got %d", ErrExtraOperand, arity, got)
	}
	return nil
}

func unary(op OperType, a float64) float64 {
	switch op {
	case OpNeg:
		return -a
	case OpAbs:
		return math.Abs(a)
	case OpExp:
		return math.Exp(a)
	case OpSqrt:
		return math.Sqrt(a)
	case OpLog:
		return math.Log(a)
	case OpExp2:
		return math.Exp2(a)
	case OpCbrt:
		return math.Cbrt(a)
	default:
		return math.NaN()
	}
}

func binary(op OperType, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMult:
		return a * b
	case OpDiv:
		return a / b
	case OpRemainder:
		return math.Mod(a, b)
	case OpPow:
		return math.Pow(a, b)
	case OpMax:
		return math.Max(a, b)
	case OpMin:
		return math.Min(a, b)
	case OpHypot:
		return math.Hypot(a, b)
	default:
		return math.NaN()
	}
}
