package engine

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"sync"

	"github.com/wildfunctions/cilisp/pkg/builtins"
	"github.com/wildfunctions/cilisp/pkg/expr"
	"github.com/wildfunctions/cilisp/pkg/pool"
	"github.com/wildfunctions/cilisp/pkg/reader"
)

// Streams are the engine's input, result and diagnostic channels.
type Streams struct {
	In   io.Reader
	Out  io.Writer
	Diag io.Writer
}

// Engine evaluates source text or generated trees under one Config.
type Engine struct {
	cfg     Config
	ev      *expr.Evaluator
	pool    pool.Pool
	rng     *rand.Rand
	out     io.Writer
	diag    io.Writer
	printed *bytes.Buffer // print output in json format, where out carries the report
	mu      sync.Mutex    // guards diag and printed across Generate workers
}

// New creates a new engine from the given config.
func New(cfg Config, s Streams) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, err
	}
	if s.Out == nil {
		s.Out = io.Discard
	}
	if s.Diag == nil {
		s.Diag = io.Discard
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:  cfg,
		ev:   expr.NewEvaluator(expr.WithDiagnostics(s.Diag)),
		pool: p,
		rng:  rng,
		out:  s.Out,
		diag: s.Diag,
	}
	if cfg.Extensions {
		printOut := s.Out
		if cfg.Format == "json" {
			e.printed = &bytes.Buffer{}
			printOut = e.printed
		}
		builtins.Install(e.ev, builtins.Env{
			In:   s.In,
			Out:  printOut,
			Rand: rand.New(rand.NewSource(rng.Int63())),
		})
	}
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// EvalSource parses every expression in src and evaluates them in order.
// A syntax error aborts before anything is evaluated.
func (e *Engine) EvalSource(src string) ([]Result, error) {
	nodes, err := reader.Parse(src)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(nodes))
	for _, n := range nodes {
		results = append(results, e.EvalNode(n))
	}
	return results, nil
}

// EvalNode evaluates n and then frees it; n must not be used afterwards.
func (e *Engine) EvalNode(n expr.Node) Result {
	r := Result{
		Expr:  n.String(),
		Nodes: n.NodeCount(),
		Depth: n.Depth(),
	}
	if e.cfg.LaTeX {
		r.LaTeX = n.LaTeX()
	}
	if e.cfg.Verbose {
		e.logf("[%d nodes, depth %d] %s", r.Nodes, r.Depth, r.Expr)
	}

	var v expr.Value
	if e.cfg.Strict {
		var err error
		v, err = e.ev.Evaluate(n)
		if err != nil {
			r.Error = err.Error()
		}
	} else {
		v = e.ev.Eval(n)
	}
	if r.Error == "" {
		r.Type = v.Type.String()
		r.Value = strconv.FormatFloat(v.Val, 'g', -1, 64)
		r.Display = expr.FormatValue(v)
	}
	if e.printed != nil {
		e.mu.Lock()
		r.Output = e.printed.String()
		e.printed.Reset()
		e.mu.Unlock()
	}

	if released := expr.Free(n); released != r.Nodes {
		e.logf("ERROR: released %d of %d nodes in %s", released, r.Nodes, r.Expr)
	}
	return r
}

func (e *Engine) logf(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.diag, format+"\n", args...)
}

// Generate builds count random trees from the configured pool and evaluates
// them in parallel. Pool trees only use arithmetic operations, so the shared
// evaluator never reaches an extension handler here.
func (e *Engine) Generate(count int) []Result {
	if count <= 0 {
		return []Result{}
	}
	trees := make([]expr.Node, count)
	for i := range trees {
		trees[i] = e.pool.RandomTree(e.rng, e.cfg.MaxDepth)
	}
	return e.evaluateAll(trees)
}

// evaluateAll evaluates all trees in parallel, keeping their order.
func (e *Engine) evaluateAll(trees []expr.Node) []Result {
	n := len(trees)
	results := make([]Result, n)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx  int
		tree expr.Node
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = e.EvalNode(j.tree)
			}
		}()
	}

	for i, t := range trees {
		jobs <- job{idx: i, tree: t}
	}
	close(jobs)
	wg.Wait()

	return results
}
