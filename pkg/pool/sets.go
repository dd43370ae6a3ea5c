package pool

import (
	"math/rand"

	"github.com/wildfunctions/cilisp/pkg/expr"
)

// opSet is a Pool described entirely by data.
type opSet struct {
	name string
	// decimals is the chance that a leaf is a two-decimal literal
	// rather than a digit.
	decimals float64
	unary    []expr.OperType
	binary   []expr.OperType
}

func (s *opSet) Name() string { return s.name }

func (s *opSet) RandomLeaf(rng *rand.Rand) expr.Node {
	if s.decimals > 0 && rng.Float64() < s.decimals {
		// 0.00 .. 9.99
		return expr.NewNumberNode(float64(rng.Intn(1000)) / 100)
	}
	return expr.NewNumberNode(float64(rng.Intn(10)))
}

func (s *opSet) RandomUnary(rng *rand.Rand) expr.OperType {
	return s.unary[rng.Intn(len(s.unary))]
}

func (s *opSet) RandomBinary(rng *rand.Rand) expr.OperType {
	return s.binary[rng.Intn(len(s.binary))]
}

func (s *opSet) RandomTree(rng *rand.Rand, maxDepth int) expr.Node {
	return randomTree(s, rng, maxDepth)
}

func init() {
	// Digits under ring operations plus max and min: always a finite integer.
	Register("conservative", func() Pool {
		return &opSet{
			name:   "conservative",
			unary:  []expr.OperType{expr.OpNeg, expr.OpAbs},
			binary: []expr.OperType{expr.OpAdd, expr.OpSub, expr.OpMult, expr.OpMax, expr.OpMin},
		}
	})
	Register("moderate", func() Pool {
		return &opSet{
			name:     "moderate",
			decimals: 0.4,
			unary:    []expr.OperType{expr.OpNeg, expr.OpAbs, expr.OpSqrt},
			binary: []expr.OperType{
				expr.OpAdd, expr.OpSub, expr.OpMult, expr.OpDiv,
				expr.OpRemainder, expr.OpMax, expr.OpMin,
			},
		}
	})
	Register("kitchensink", func() Pool {
		s := &opSet{name: "kitchensink", decimals: 0.5}
		for _, op := range expr.Operations() {
			switch {
			case op.IsExtension():
			case op.Arity() == 1:
				s.unary = append(s.unary, op)
			default:
				s.binary = append(s.binary, op)
			}
		}
		return s
	})
}
