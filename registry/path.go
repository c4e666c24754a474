// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package registry

import (
	"fmt"
	"strings"
)

// Root identifies one of the fixed registry roots.
type Root int

const (
	// CurrentUser holds per-user settings and class registrations (HKCU).
	CurrentUser Root = iota + 1
	// LocalMachine holds per-machine settings and class registrations (HKLM).
	LocalMachine
	// ClassesRoot is the legacy merged view of per-user and per-machine
	// class registrations (HKCR).
	ClassesRoot
)

var rootNames = map[Root][2]string{
	CurrentUser:  {"HKCU", "HKEY_CURRENT_USER"},
	LocalMachine: {"HKLM", "HKEY_LOCAL_MACHINE"},
	ClassesRoot:  {"HKCR", "HKEY_CLASSES_ROOT"},
}

// String returns the short root name, e.g. "HKCU".
func (r Root) String() string {
	if names, ok := rootNames[r]; ok {
		return names[0]
	}
	return fmt.Sprintf("Root(%d)", int(r))
}

// ParseRoot accepts the short or long root name, case-insensitively.
func ParseRoot(s string) (Root, error) {
	for root, names := range rootNames {
		if strings.EqualFold(s, names[0]) || strings.EqualFold(s, names[1]) {
			return root, nil
		}
	}
	return 0, fmt.Errorf("unknown registry root %q", s)
}

// Path is a key location: a root and the segment names below it.
type Path struct {
	Root     Root
	Segments []string
}

// NewPath builds a path, copying segments.
func NewPath(root Root, segments ...string) Path {
	return Path{Root: root, Segments: append([]string(nil), segments...)}
}

// ParsePath parses a backslash separated path such as
// `HKCU\Software\Classes`. Empty segments are ignored.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, `\`)
	root, err := ParseRoot(parts[0])
	if err != nil {
		return Path{}, err
	}
	p := Path{Root: root}
	for _, part := range parts[1:] {
		if part != "" {
			p.Segments = append(p.Segments, part)
		}
	}
	return p, nil
}

// MustParsePath is ParsePath for constant paths; it panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Join returns a new path with segments appended. Segments containing
// backslashes are split.
func (p Path) Join(segments ...string) Path {
	out := NewPath(p.Root, p.Segments...)
	for _, segment := range segments {
		for _, part := range strings.Split(segment, `\`) {
			if part != "" {
				out.Segments = append(out.Segments, part)
			}
		}
	}
	return out
}

// String renders the path with backslash separators.
func (p Path) String() string {
	if len(p.Segments) == 0 {
		return p.Root.String()
	}
	return p.Root.String() + `\` + strings.Join(p.Segments, `\`)
}
