// Package pool builds random expression trees from named sets of literals and
// operations. The trees feed the engine's generate mode and property tests.
package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/cilisp/pkg/expr"
)

// Pool supplies the pieces of a random tree.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.Node
	RandomUnary(rng *rand.Rand) expr.OperType
	RandomBinary(rng *rand.Rand) expr.OperType
	RandomTree(rng *rand.Rand, maxDepth int) expr.Node
}

var registry = map[string]func() Pool{}

// Register makes a pool available to Get under name.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names lists the registered pools in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Odds of each node kind below the depth limit.
const (
	leafShare  = 0.4
	unaryShare = 0.2
)

// randomTree grows a tree no deeper than maxDepth. Call nodes are created by
// operation name, the same path the reader takes.
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.Node {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	roll := rng.Float64()
	if roll < leafShare {
		return p.RandomLeaf(rng)
	}
	if roll < leafShare+unaryShare {
		arg := randomTree(p, rng, maxDepth-1)
		return expr.NewFuncNode(p.RandomUnary(rng).String(), arg, nil)
	}
	name := p.RandomBinary(rng).String()
	left := randomTree(p, rng, maxDepth-1)
	right := randomTree(p, rng, maxDepth-1)
	return expr.NewFuncNode(name, left, right)
}
