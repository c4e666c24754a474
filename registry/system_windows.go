//go:build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package registry

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	winreg "golang.org/x/sys/windows/registry"
)

// maxKeyNameLen is the longest key name Windows allows, in UTF-16 units.
const maxKeyNameLen = 255

// System returns the operating system registry.
func System() Registry {
	return systemRegistry{}
}

type systemRegistry struct{}

func (systemRegistry) OpenRoot(root Root) (Key, error) {
	switch root {
	case CurrentUser:
		return &systemKey{key: winreg.CURRENT_USER, predefined: true}, nil
	case LocalMachine:
		return &systemKey{key: winreg.LOCAL_MACHINE, predefined: true}, nil
	case ClassesRoot:
		return &systemKey{key: winreg.CLASSES_ROOT, predefined: true}, nil
	default:
		return nil, fmt.Errorf("%s: %w", root, ErrNotFound)
	}
}

// systemKey wraps an open key. Predefined root keys are never closed.
type systemKey struct {
	key        winreg.Key
	predefined bool
}

func (k *systemKey) OpenSubKey(name string) (Key, error) {
	child, err := winreg.OpenKey(k.key, name, winreg.READ)
	if err != nil {
		return nil, translate(err)
	}
	return &systemKey{key: child}, nil
}

func (k *systemKey) SubKeyName(index int) (string, error) {
	if index < 0 {
		return "", ErrNoMoreEntries
	}
	buf := make([]uint16, maxKeyNameLen+1)
	n := uint32(len(buf))
	err := windows.RegEnumKeyEx(windows.Handle(k.key), uint32(index), &buf[0], &n, nil, nil, nil, nil)
	if errors.Is(err, windows.ERROR_NO_MORE_ITEMS) {
		return "", ErrNoMoreEntries
	}
	if err != nil {
		return "", translate(err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (k *systemKey) Value(name string) (string, error) {
	s, valtype, err := k.key.GetStringValue(name)
	if err != nil {
		return "", translate(err)
	}
	if valtype == winreg.EXPAND_SZ {
		if expanded, expandErr := winreg.ExpandString(s); expandErr == nil {
			return expanded, nil
		}
	}
	return s, nil
}

func (k *systemKey) Close() error {
	if k.predefined {
		return nil
	}
	return k.key.Close()
}

func translate(err error) error {
	if errors.Is(err, winreg.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
