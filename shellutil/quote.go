// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import "strings"

// Quote encodes a single argument so that SplitTemplate reads it back
// unchanged. Backslashes, quotes and percent signs are escaped; the result is
// wrapped in quotes when it is empty or contains whitespace.
func Quote(arg string) string {
	needQuotes := arg == "" || strings.ContainsAny(arg, " \t")

	var b strings.Builder
	b.Grow(len(arg) + 2)
	if needQuotes {
		b.WriteRune(symQuote)
	}
	for _, r := range arg {
		switch r {
		case symBackslash:
			b.WriteString(`\\`)
		case symQuote:
			b.WriteString(`\"`)
		case symPercent:
			b.WriteString("%%")
		default:
			b.WriteRune(r)
		}
	}
	if needQuotes {
		b.WriteRune(symQuote)
	}
	return b.String()
}

// Join quotes each argument and joins them with single spaces.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
