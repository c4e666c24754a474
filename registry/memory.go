// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package registry

import (
	"errors"
	"strings"
	"sync"
)

// errHandleClosed is returned when a closed memory handle is used.
var errHandleClosed = errors.New("registry: handle already closed")

// Memory is an in-memory registry tree with handle accounting.
// Names are matched case-insensitively and children enumerate in insertion
// order. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	roots  map[Root]*memNode
	faults map[string]error

	open    int
	opens   int
	closes  int
	visited []string
}

type memNode struct {
	name     string
	children []*memNode
	values   map[string]string // keyed by lower-cased value name
}

// NewMemory creates an empty registry. All roots exist and are empty.
func NewMemory() *Memory {
	return &Memory{
		roots:  make(map[Root]*memNode),
		faults: make(map[string]error),
	}
}

// CreateKey creates the key at p and any missing parents.
func (m *Memory) CreateKey(p Path) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.node(p, true)
}

// SetValue stores a value, creating the key at p if needed.
func (m *Memory) SetValue(p Path, name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.node(p, true)
	if n.values == nil {
		n.values = make(map[string]string)
	}
	n.values[strings.ToLower(name)] = value
}

// SetDefault stores the default value of the key at p.
func (m *Memory) SetDefault(p Path, value string) {
	m.SetValue(p, "", value)
}

// InjectError makes every attempt to open the key at p fail with err.
func (m *Memory) InjectError(p Path, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[strings.ToLower(p.String())] = err
}

// OpenHandles returns the number of handles currently open.
func (m *Memory) OpenHandles() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open
}

// Opens returns the total number of handles opened.
func (m *Memory) Opens() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opens
}

// Closes returns the total number of handles closed.
func (m *Memory) Closes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closes
}

// Visited returns the paths of every key opened below a root, in order.
func (m *Memory) Visited() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.visited...)
}

// OpenRoot opens a root key.
func (m *Memory) OpenRoot(root Root) (Key, error) {
	if _, ok := rootNames[root]; !ok {
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.faults[strings.ToLower(root.String())]; err != nil {
		return nil, err
	}
	n := m.node(NewPath(root), true)
	m.open++
	m.opens++
	return &memKey{mem: m, node: n, path: NewPath(root)}, nil
}

// node walks to p. Caller must hold mu.
func (m *Memory) node(p Path, create bool) *memNode {
	n, ok := m.roots[p.Root]
	if !ok {
		if !create {
			return nil
		}
		n = &memNode{name: p.Root.String()}
		m.roots[p.Root] = n
	}
	for _, segment := range p.Segments {
		child := n.child(segment)
		if child == nil {
			if !create {
				return nil
			}
			child = &memNode{name: segment}
			n.children = append(n.children, child)
		}
		n = child
	}
	return n
}

func (n *memNode) child(name string) *memNode {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

type memKey struct {
	mem    *Memory
	node   *memNode
	path   Path
	closed bool
}

func (k *memKey) OpenSubKey(name string) (Key, error) {
	k.mem.mu.Lock()
	defer k.mem.mu.Unlock()

	if k.closed {
		return nil, errHandleClosed
	}
	childPath := k.path.Join(name)
	if err := k.mem.faults[strings.ToLower(childPath.String())]; err != nil {
		return nil, err
	}
	child := k.node.child(name)
	if child == nil {
		return nil, ErrNotFound
	}

	k.mem.open++
	k.mem.opens++
	k.mem.visited = append(k.mem.visited, childPath.String())
	return &memKey{mem: k.mem, node: child, path: childPath}, nil
}

func (k *memKey) SubKeyName(index int) (string, error) {
	k.mem.mu.RLock()
	defer k.mem.mu.RUnlock()

	if k.closed {
		return "", errHandleClosed
	}
	if index < 0 || index >= len(k.node.children) {
		return "", ErrNoMoreEntries
	}
	return k.node.children[index].name, nil
}

func (k *memKey) Value(name string) (string, error) {
	k.mem.mu.RLock()
	defer k.mem.mu.RUnlock()

	if k.closed {
		return "", errHandleClosed
	}
	v, ok := k.node.values[strings.ToLower(name)]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (k *memKey) Close() error {
	k.mem.mu.Lock()
	defer k.mem.mu.Unlock()

	if k.closed {
		return errHandleClosed
	}
	k.closed = true
	k.mem.open--
	k.mem.closes++
	return nil
}
