// Package cliout provides structured output formatting for the pac-read
// diagnostic commands.
//
// # Basic Usage
//
//	cliout.Header("Browser")
//	cliout.Label("Strategy", res.Chosen.Strategy)
//	cliout.Success("wrote %s", path)
//	cliout.Warning("no browser command resolved")
//
// # Output Formats
//
// Two formats are supported:
//   - default: Human-readable text with colors and Unicode symbols
//   - json: Structured JSON output for scripting
//
// Print selects between them:
//
//	err := cliout.Print(res, func() {
//	    cliout.Label("Template", res.Chosen.Template)
//	})
//
// # Terminal Detection
//
// Color is enabled only when the output is a terminal (detected with
// golang.org/x/term) and NO_COLOR is unset. The launcher is usually started
// by another program with its output discarded, so plain text is the common
// case. Unicode symbols fall back to ASCII on the classic Windows console.
//
// # Testing
//
// SetOutput redirects output, typically to a bytes.Buffer, which also turns
// color off:
//
//	var buf bytes.Buffer
//	prev := cliout.SetOutput(&buf)
//	defer cliout.SetOutput(prev)
package cliout
