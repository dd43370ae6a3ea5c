package main

import (
	"os"
	"strings"
	"testing"

	"github.com/wildfunctions/cilisp/pkg/engine"
)

func TestStreamsInteractive(t *testing.T) {
	if s := streams(false); s.In != os.Stdin {
		t.Errorf("batch mode In = %v, want os.Stdin", s.In)
	}

	s := streams(true)
	if s.In != nil {
		t.Fatalf("interactive In = %v, want nil", s.In)
	}

	cfg := engine.DefaultConfig()
	cfg.Extensions = true
	cfg.Strict = true
	s.Out, s.Diag = nil, nil
	e, err := engine.New(cfg, s)
	if err != nil {
		t.Fatal(err)
	}
	results, err := e.EvalSource("(read)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(results[0].Error, "no input available") {
		t.Errorf("(read) in the REPL = %+v, want a no-input error", results[0])
	}
}
