// Package builtins supplies handlers for the operations that have no
// arithmetic definition in expr: read, rand, print, equal, less and greater.
package builtins

import (
	"bufio"
	"io"
	"math/rand"
	"sort"

	"github.com/wildfunctions/cilisp/pkg/expr"
)

// Env holds the resources the handlers use.
type Env struct {
	In   io.Reader
	Out  io.Writer
	Rand *rand.Rand
}

type constructor func(env *environment) expr.HandlerFunc

var registry = map[expr.OperType]constructor{}

func register(op expr.OperType, c constructor) {
	registry[op] = c
}

// environment is Env plus the buffered reader shared by every read call.
type environment struct {
	Env
	scan *bufio.Scanner
}

// Install registers every handler on ev. The handlers share env's reader and
// random source, so ev must not be used from several goroutines afterwards.
func Install(ev *expr.Evaluator, env Env) {
	e := &environment{Env: env}
	if env.In != nil {
		e.scan = bufio.NewScanner(env.In)
		e.scan.Split(bufio.ScanWords)
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	for op, c := range registry {
		ev.Handle(op, c(e))
	}
}

// Names returns the operations Install provides, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for op := range registry {
		names = append(names, op.String())
	}
	sort.Strings(names)
	return names
}
