package engine

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result describes one evaluated expression.
type Result struct {
	Expr    string `json:"expr"`
	LaTeX   string `json:"latex,omitempty"`
	Type    string `json:"type,omitempty"`
	Value   string `json:"value,omitempty"` // strconv 'g' text, so NaN and Inf survive JSON
	Display string `json:"display,omitempty"`
	Output  string `json:"output,omitempty"` // print output, json format only
	Nodes   int    `json:"nodes"`
	Depth   int    `json:"depth"`
	Error   string `json:"error,omitempty"`
}

// Report is the JSON document for a batch of results.
type Report struct {
	Config  Config   `json:"config"`
	Results []Result `json:"results"`
}

// WriteTextReport writes a result in human-readable format. Failed results go
// to diag so the result stream only carries values.
func WriteTextReport(out, diag io.Writer, r Result, latex bool) {
	if r.Error != "" {
		fmt.Fprintf(diag, "ERROR: %s: %s\n", r.Expr, r.Error)
		return
	}
	fmt.Fprintln(out, r.Display)
	if latex {
		fmt.Fprintf(out, "LaTeX: %s\n", r.LaTeX)
	}
}

// WriteJSONReport writes the report as indented JSON.
func WriteJSONReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteResults writes rs in the configured format.
func WriteResults(out, diag io.Writer, cfg Config, rs []Result) error {
	if cfg.Format == "json" {
		return WriteJSONReport(out, Report{Config: cfg, Results: rs})
	}
	for _, r := range rs {
		WriteTextReport(out, diag, r, cfg.LaTeX)
	}
	return nil
}
