// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package shellutil converts Windows shell-association command templates into
// argument vectors ready for process launch.
//
// Shell association records (the "shell\open\command" values written by
// browser installers) describe how to start a program with a placeholder for
// the document to open:
//
//	"C:\Program Files\Mozilla Firefox\firefox.exe" -osint -url "%1"
//
// SplitTemplate walks such a template once, left to right, and produces the
// program path and its arguments with the placeholder replaced. The
// substituted value is inserted verbatim: it is never split on whitespace and
// quotes or percent signs inside it are not interpreted.
//
// # Quoting Rules
//
//   - Whitespace (space or tab) outside double quotes separates arguments.
//     Runs of whitespace never produce empty arguments.
//   - A double quote toggles quoting. A quoted empty string ("") is kept as
//     an empty argument, including at the end of the template.
//   - A backslash escapes a following double quote or backslash. Before any
//     other character it is literal.
//   - %1 is the placeholder. %% is a literal percent sign, so %%1 is the
//     literal text %1. A % before anything else is literal.
//
// The parser is permissive. Unterminated quotes and dangling escapes degrade
// to literal text instead of failing. The only error is ErrEmptyCommand,
// returned when the template contains no program at all.
//
// # Re-encoding
//
// Quote and Join are the inverse of SplitTemplate for vectors that contain no
// placeholder, which makes it possible to log an argument vector in a form
// that parses back to the same vector:
//
//	argv, _ := shellutil.SplitTemplate(tmpl, url)
//	fmt.Println(argv.String())
package shellutil
