// Package repl runs an interactive read-eval-print loop over an engine.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/wildfunctions/cilisp/pkg/engine"
	"github.com/wildfunctions/cilisp/pkg/expr"
	"github.com/wildfunctions/cilisp/pkg/reader"
)

const (
	historyFile = ".cilisp_history"
	contPrompt  = "... "
	banner      = "cilisp: type an expression, :help for commands, :quit to exit"
)

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// Run reads expressions from the terminal until EOF or :quit and writes each
// result to out. Syntax and evaluation errors go to diag.
func Run(e *engine.Engine, out, diag io.Writer) error {
	cfg := e.Config()
	histPath := cfg.History
	if histPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			histPath = filepath.Join(home, historyFile)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(out, banner)
	return loop(ln, e, out, diag, ln.AppendHistory)
}

func loop(p prompter, e *engine.Engine, out, diag io.Writer, remember func(string)) error {
	prompt := e.Config().Prompt
	for {
		src, ok, err := readExpr(p, prompt, contPrompt)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			switch strings.ToLower(line) {
			case ":quit", ":q":
				return nil
			case ":help":
				fmt.Fprintln(out, "enter an s-expression such as (add 1 2.5); :quit exits")
			default:
				fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			}
			continue
		}

		if remember != nil {
			remember(strings.ReplaceAll(src, "\n", " "))
		}
		results, err := e.EvalSource(src)
		if err != nil {
			fmt.Fprintf(diag, "ERROR: %v\n", err)
			continue
		}
		if err := engine.WriteResults(out, diag, e.Config(), results); err != nil {
			return err
		}
	}
}

// readExpr keeps prompting while the collected text is an unfinished
// expression. ok is false at end of input.
func readExpr(p prompter, prompt, cont string) (src string, ok bool, err error) {
	var b strings.Builder
	for {
		ps := prompt
		if b.Len() > 0 {
			ps = cont
		}
		line, err := p.Prompt(ps)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true, nil
			}
			return "", false, nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false, err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true, nil
		}
	}
}

func incomplete(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return false
	}
	nodes, err := reader.Parse(src)
	for _, n := range nodes {
		expr.Free(n)
	}
	return errors.Is(err, reader.ErrIncomplete)
}
