package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wildfunctions/cilisp/pkg/engine"
	"github.com/wildfunctions/cilisp/pkg/pool"
	"github.com/wildfunctions/cilisp/pkg/repl"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := engine.DefaultConfig()
	var (
		configPath string
		source     string
		generate   int
	)

	fs := flag.NewFlagSet("cilisp", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "YAML config file (flags override it)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "stop at malformed trees instead of yielding NaN")
	fs.BoolVar(&cfg.Extensions, "ext", cfg.Extensions, "enable read, rand, print, equal, less and greater")
	fs.BoolVar(&cfg.LaTeX, "latex", cfg.LaTeX, "also render each expression as LaTeX")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log each tree before evaluating it")
	fs.StringVar(&source, "e", "", "evaluate the given source text")
	fs.IntVar(&generate, "gen", 0, "evaluate this many random trees from -pool")
	fs.StringVar(&cfg.Pool, "pool", cfg.Pool, "random tree pool ("+strings.Join(pool.Names(), ", ")+")")
	fs.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max random tree depth")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers for -gen")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// The config file sits under the flags: reload it, then replay only the
	// flags that were set on the command line.
	if configPath != "" {
		fileCfg := engine.DefaultConfig()
		if err := engine.LoadConfig(configPath, &fileCfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		cfg = fileCfg
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "config" || f.Name == "e" || f.Name == "gen" {
				return
			}
			_ = fs.Set(f.Name, f.Value.String())
		})
	}

	interactive := generate <= 0 && source == "" && fs.NArg() == 0
	e, err := engine.New(cfg, streams(interactive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var results []engine.Result
	switch {
	case interactive:
		if err := repl.Run(e, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	case generate > 0:
		results = e.Generate(generate)
	case source != "":
		results, err = e.EvalSource(source)
	case fs.NArg() > 0:
		for _, path := range fs.Args() {
			data, rerr := os.ReadFile(path)
			if rerr != nil {
				err = rerr
				break
			}
			rs, perr := e.EvalSource(string(data))
			if perr != nil {
				err = fmt.Errorf("%s:%w", path, perr)
				break
			}
			results = append(results, rs...)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := engine.WriteResults(os.Stdout, os.Stderr, e.Config(), results); err != nil {
		fmt.Fprintf(os.Stderr, "error writing results: %v\n", err)
		return 1
	}
	for _, r := range results {
		if r.Error != "" {
			return 1
		}
	}
	return 0
}

// streams wires the process's standard streams to the engine. The REPL owns
// stdin through liner, so read gets no input there.
func streams(interactive bool) engine.Streams {
	s := engine.Streams{In: os.Stdin, Out: os.Stdout, Diag: os.Stderr}
	if interactive {
		s.In = nil
	}
	return s
}
