//go:build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package registry

import (
	"errors"
	"fmt"
)

// System returns the operating system registry. Outside Windows there is no
// registry and every root fails to open with errors.ErrUnsupported.
func System() Registry {
	return systemRegistry{}
}

type systemRegistry struct{}

func (systemRegistry) OpenRoot(root Root) (Key, error) {
	return nil, fmt.Errorf("%s: %w", root, errors.ErrUnsupported)
}
