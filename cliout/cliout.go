// Package cliout provides structured output formatting for CLI commands.
// It supports human-readable text and JSON, with consistent styling using
// ANSI colors and Unicode symbols when the output is a terminal.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIArrow   = "->"
)

var (
	// mu protects the output settings below
	mu              sync.RWMutex
	out             io.Writer = os.Stdout
	globalFormat              = FormatDefault
	noColor                   = !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != ""
	supportsUnicode           = detectUnicodeSupport()
)

// isTerminal reports whether f is an interactive terminal. The launcher is
// normally started by another program with no console attached.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- descriptors fit in int
}

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code and PowerShell render Unicode; the classic
	// console host does not.
	return os.Getenv("WT_SESSION") != "" ||
		os.Getenv("TERM_PROGRAM") == "vscode" ||
		os.Getenv("PSModulePath") != "" ||
		os.Getenv("TERM") != ""
}

// SetOutput redirects all output to w and disables color unless w is a
// terminal. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	f, ok := w.(*os.File)
	noColor = !ok || !isTerminal(f) || os.Getenv("NO_COLOR") != ""
	return prev
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat == FormatJSON
}

func writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// color wraps s in code unless color is disabled.
func color(code, s string) string {
	mu.RLock()
	disabled := noColor
	mu.RUnlock()
	if disabled {
		return s
	}
	return code + s + Reset
}

func icon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

func printf(format string, args ...any) {
	_, _ = fmt.Fprintf(writer(), format, args...)
}

// PrintJSON prints data as indented JSON.
func PrintJSON(data any) error {
	encoder := json.NewEncoder(writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format. For the default format it
// calls formatter; for JSON it marshals data.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header with a divider
func Header(text string) {
	printf("\n%s\n%s\n", color(Bold, text), strings.Repeat("=", len(text)))
}

// Success prints a success message with green checkmark
func Success(format string, args ...any) {
	printf("%s %s\n", color(BrightGreen, icon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with red X
func Error(format string, args ...any) {
	printf("%s %s\n", color(BrightRed, icon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...any) {
	printf("%s  %s\n", color(BrightYellow, icon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with blue info icon
func Info(format string, args ...any) {
	printf("%s  %s\n", color(BrightBlue, icon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Item prints an indented item
func Item(format string, args ...any) {
	printf("   %s\n", fmt.Sprintf(format, args...))
}

// Arrow prints an indented item led by an arrow.
func Arrow(format string, args ...any) {
	printf("   %s %s\n", color(Cyan, icon(SymbolArrow, ASCIIArrow)), fmt.Sprintf(format, args...))
}

// Label prints a label and value pair
func Label(label, value string) {
	printf("   %s %s\n", color(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Hint prints compact hints on a single line.
func Hint(hints ...string) {
	if len(hints) == 0 {
		return
	}
	printf("%s\n", color(Dim, strings.Join(hints, " • ")))
}

// Newline prints a blank line
func Newline() {
	printf("\n")
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int)
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			if len(row[header]) > widths[header] {
				widths[header] = len(row[header])
			}
		}
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(color(Bold, fmt.Sprintf("%-*s", widths[header], header)) + "  ")
	}
	b.WriteString("\n   ")
	for _, header := range headers {
		b.WriteString(strings.Repeat("─", widths[header]) + "  ")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("   ")
		for _, header := range headers {
			fmt.Fprintf(&b, "%-*s  ", widths[header], row[header])
		}
		b.WriteString("\n")
	}
	printf("%s", b.String())
}
