package expr

import "math"

// NumType tags a computed magnitude as integral or fractional.
type NumType int

const (
	IntType NumType = iota
	DoubleType
)

var numNames = [...]string{
	IntType:    "Integer",
	DoubleType: "Double",
}

func (t NumType) String() string {
	if t < 0 || int(t) >= len(numNames) {
		return "Unknown"
	}
	return numNames[t]
}

// Value is the result of evaluating a node. The magnitude is always stored as
// a float64; Type only decides how it is classified and printed.
type Value struct {
	Type NumType
	Val  float64
}

// Classify returns IntType when v has no fractional part. NaN and the
// infinities are always DoubleType.
func Classify(v float64) NumType {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DoubleType
	}
	if math.Ceil(v) == v {
		return IntType
	}
	return DoubleType
}

// NewValue wraps v with its classified type.
func NewValue(v float64) Value {
	return Value{Type: Classify(v), Val: v}
}

// Sentinel is the value produced for an absent or malformed node.
func Sentinel() Value {
	return Value{Type: IntType, Val: math.NaN()}
}

func (v Value) IsNaN() bool { return math.IsNaN(v.Val) }
