package expr

// OperType identifies a function-call operation.
type OperType int

const (
	OpNeg OperType = iota
	OpAbs
	OpExp
	OpSqrt
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpRemainder
	OpLog
	OpPow
	OpMax
	OpMin
	OpExp2
	OpCbrt
	OpHypot
	OpRead
	OpRand
	OpPrint
	OpEqual
	OpLess
	OpGreater
	OpCustom // any name not in funcNames
)

// funcNames is indexed by OperType. Its length is fixed by OpCustom, so adding
// an operation without a name fails to compile.
var funcNames = [OpCustom]string{
	OpNeg:       "neg",
	OpAbs:       "abs",
	OpExp:       "exp",
	OpSqrt:      "sqrt",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMult:      "mult",
	OpDiv:       "div",
	OpRemainder: "remainder",
	OpLog:       "log",
	OpPow:       "pow",
	OpMax:       "max",
	OpMin:       "min",
	OpExp2:      "exp2",
	OpCbrt:      "cbrt",
	OpHypot:     "hypot",
	OpRead:      "read",
	OpRand:      "rand",
	OpPrint:     "print",
	OpEqual:     "equal",
	OpLess:      "less",
	OpGreater:   "greater",
}

// AnyArity marks an operation that accepts zero, one or two operands.
const AnyArity = -1

var funcArity = [OpCustom]int{
	OpNeg:       1,
	OpAbs:       1,
	OpExp:       1,
	OpSqrt:      1,
	OpAdd:       2,
	OpSub:       2,
	OpMult:      2,
	OpDiv:       2,
	OpRemainder: 2,
	OpLog:       1,
	OpPow:       2,
	OpMax:       2,
	OpMin:       2,
	OpExp2:      1,
	OpCbrt:      1,
	OpHypot:     2,
	OpRead:      0,
	OpRand:      0,
	OpPrint:     1,
	OpEqual:     2,
	OpLess:      2,
	OpGreater:   2,
}

// Resolve maps a function name to its operation. Matching is exact and
// case-sensitive; unknown names resolve to OpCustom.
func Resolve(name string) OperType {
	for i, fn := range funcNames {
		if fn == name {
			return OperType(i)
		}
	}
	return OpCustom
}

func (op OperType) String() string {
	if op >= 0 && op < OpCustom {
		return funcNames[op]
	}
	return "custom"
}

// Arity is the number of operands the operation consumes, or AnyArity.
func (op OperType) Arity() int {
	if op >= 0 && op < OpCustom {
		return funcArity[op]
	}
	return AnyArity
}

// IsExtension reports whether the operation has no built-in arithmetic and
// needs a Handler to produce a value.
func (op OperType) IsExtension() bool {
	return op >= OpRead || op < 0
}

// Names returns the built-in operation names in table order.
func Names() []string {
	names := make([]string, len(funcNames))
	copy(names, funcNames[:])
	return names
}

// Operations returns every built-in operation, OpCustom excluded.
func Operations() []OperType {
	ops := make([]OperType, OpCustom)
	for i := range ops {
		ops[i] = OperType(i)
	}
	return ops
}
