// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package registry provides read-only access to a Windows-style registry tree.
//
// The package models the registry as a small set of named roots, each holding
// a tree of keys. Keys are opened one segment at a time and every handle must
// be closed. WithPath performs a multi-segment descent and guarantees that all
// handles opened along the way are released, innermost first, whatever the
// outcome.
//
// Two implementations are provided: System, backed by the operating system
// registry on Windows (and unsupported elsewhere), and Memory, an in-memory
// tree with handle accounting for tests.
package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key or value does not exist.
	ErrNotFound = errors.New("registry: not found")
	// ErrNoMoreEntries is returned when subkey enumeration runs past the end.
	ErrNoMoreEntries = errors.New("registry: no more entries")
)

// Key is an open registry key handle.
type Key interface {
	// OpenSubKey opens the direct child with the given name.
	// It returns ErrNotFound if there is no such child.
	OpenSubKey(name string) (Key, error)
	// SubKeyName returns the name of the child at index.
	// It returns ErrNoMoreEntries once index reaches the number of children.
	SubKeyName(index int) (string, error)
	// Value reads a string value. The empty name reads the default value.
	// It returns ErrNotFound if the value does not exist.
	Value(name string) (string, error)
	// Close releases the handle.
	Close() error
}

// Registry opens root keys.
type Registry interface {
	OpenRoot(root Root) (Key, error)
}

// IsMiss reports whether err means "no value here" rather than a failure.
// Missing keys, exhausted enumerations and platforms without a registry are
// all misses.
func IsMiss(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoMoreEntries) ||
		errors.Is(err, errors.ErrUnsupported)
}

// WithPath opens p one segment at a time and calls fn with the innermost key.
// Every handle opened during the descent, including the root, is closed in
// reverse order before WithPath returns, even if a segment is missing or fn
// panics. Key handles must not be retained after fn returns.
func WithPath(reg Registry, p Path, fn func(Key) error) (err error) {
	root, err := reg.OpenRoot(p.Root)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.Root, err)
	}

	handles := []Key{root}
	defer func() {
		for i := len(handles) - 1; i >= 0; i-- {
			if closeErr := handles[i].Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", p, closeErr)
			}
		}
	}()

	cur := root
	for i, segment := range p.Segments {
		child, openErr := cur.OpenSubKey(segment)
		if openErr != nil {
			return fmt.Errorf("open %s: %w", NewPath(p.Root, p.Segments[:i+1]...), openErr)
		}
		handles = append(handles, child)
		cur = child
	}

	return fn(cur)
}

// ReadValue reads the named value of the key at p.
func ReadValue(reg Registry, p Path, name string) (string, error) {
	var value string
	err := WithPath(reg, p, func(k Key) error {
		v, err := k.Value(name)
		if err != nil {
			return fmt.Errorf("read %s value %q: %w", p, name, err)
		}
		value = v
		return nil
	})
	return value, err
}

// ReadDefault reads the default value of the key at p.
func ReadDefault(reg Registry, p Path) (string, error) {
	return ReadValue(reg, p, "")
}

// SubKeyNames lists the children of the key at p in enumeration order.
func SubKeyNames(reg Registry, p Path) ([]string, error) {
	var names []string
	err := WithPath(reg, p, func(k Key) error {
		for i := 0; ; i++ {
			name, err := k.SubKeyName(i)
			if errors.Is(err, ErrNoMoreEntries) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("enumerate %s: %w", p, err)
			}
			names = append(names, name)
		}
	})
	return names, err
}
