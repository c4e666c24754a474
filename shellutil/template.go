// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"errors"
	"strings"
)

// Template symbols.
const (
	symBackslash   = '\\'
	symQuote       = '"'
	symPercent     = '%'
	symPlaceholder = '1'
)

// Placeholder is the token replaced by the substitution value.
const Placeholder = "%1"

// ErrEmptyCommand is returned when a template yields no program to run.
var ErrEmptyCommand = errors.New("command template contains no program")

// Argv is an argument vector. Element 0 is the program path.
type Argv []string

// Program returns the executable path, or "" for an empty vector.
func (a Argv) Program() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Args returns the positional arguments after the program.
func (a Argv) Args() []string {
	if len(a) < 2 {
		return nil
	}
	return a[1:]
}

// String re-encodes the vector with the template quoting rules.
func (a Argv) String() string {
	return Join(a)
}

// templateScanner holds the parser state for a single pass over a template.
// At most one of backslash and percent is pending at any time.
type templateScanner struct {
	value string
	args  Argv
	cur   strings.Builder

	inQuotes  bool
	quoted    bool // a quote was seen since the last push
	backslash bool
	percent   bool
}

// SplitTemplate parses a shell-association command template into an argument
// vector, substituting value for the %1 placeholder.
//
// Example:
//
//	argv, err := shellutil.SplitTemplate(`"C:\Prog\app.exe" --url "%1"`, "file:///x")
//	// argv == Argv{`C:\Prog\app.exe`, "--url", "file:///x"}
func SplitTemplate(template, value string) (Argv, error) {
	s := &templateScanner{value: value}
	for _, r := range template {
		s.step(r)
	}
	s.finish()

	if len(s.args) == 0 {
		return nil, ErrEmptyCommand
	}
	return s.args, nil
}

func (s *templateScanner) step(r rune) {
	if s.backslash {
		s.backslash = false
		switch r {
		case symBackslash, symQuote:
			s.cur.WriteRune(r)
			return
		}
		s.cur.WriteRune(symBackslash)
	}

	if s.percent {
		s.percent = false
		switch r {
		case symPercent:
			s.cur.WriteRune(symPercent)
			return
		case symPlaceholder:
			s.cur.WriteString(s.value)
			return
		}
		s.cur.WriteRune(symPercent)
	}

	switch {
	case r == symBackslash:
		s.backslash = true
	case r == symQuote:
		s.inQuotes = !s.inQuotes
		s.quoted = true
	case r == symPercent:
		s.percent = true
	case isBlank(r) && !s.inQuotes:
		s.push()
	default:
		s.cur.WriteRune(r)
	}
}

// finish flushes dangling escapes and the last argument.
func (s *templateScanner) finish() {
	if s.backslash {
		s.cur.WriteRune(symBackslash)
		s.backslash = false
	}
	if s.percent {
		s.cur.WriteRune(symPercent)
		s.percent = false
	}
	s.push()
}

// push emits the current argument if it has content or was quoted.
func (s *templateScanner) push() {
	if s.cur.Len() == 0 && !s.quoted {
		return
	}
	s.args = append(s.args, s.cur.String())
	s.cur.Reset()
	s.quoted = false
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// Expand substitutes value for the first %1 placeholder without parsing.
// It is a textual helper for diagnostics; use SplitTemplate to build a
// launchable vector.
func Expand(template, value string) string {
	return strings.Replace(template, Placeholder, value, 1)
}

// HasPlaceholder reports whether the template references %1. A doubled
// percent (%%1) does not count.
func HasPlaceholder(template string) bool {
	const marker = "\x00"
	argv, err := SplitTemplate(template, marker)
	if err != nil {
		return false
	}
	for _, arg := range argv {
		if strings.Contains(arg, marker) {
			return true
		}
	}
	return false
}
