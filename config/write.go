// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jongio/pac-read/fileutil"
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// comments documents each key of the default file, by dotted key.
var comments = map[string]string{
	"debug":              "Write debug detail to the log.",
	"base_dir":           "Directory holding the HTML forms. Empty means the directory of pac-read.exe.",
	"messages_dir":       "Where message files are staged for the forms, relative to base_dir.",
	"log":                "Logging. Logs go to stderr and, when file is set, to that file.",
	"log.format":         "text or json.",
	"browser":            "How the viewer is opened.",
	"browser.command":    "Browser command, with %1 for the viewer URL. Empty means look it up in the registry.",
	"browser.exhaustive": "Try every registry lookup and log each match. The first match is still used.",
	"browser.wait":       "Wait for the browser to exit and return its exit code.",
	"legacy":             "Launcher for messages without a form.",
	"legacy.command":     "Command, with %1 for the message file. Empty means do nothing.",
	"notify":             "Show a desktop notification when the viewer cannot be opened.",
}

// DefaultYAML renders the default configuration as commented YAML.
func DefaultYAML() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(Defaults()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	annotate(&doc, "")

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// annotate attaches comments to mapping keys below n.
func annotate(n *yaml.Node, prefix string) {
	if n.Kind != yaml.MappingNode {
		for _, c := range n.Content {
			annotate(c, prefix)
		}
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		dotted := key.Value
		if prefix != "" {
			dotted = prefix + "." + key.Value
		}
		if c, ok := comments[dotted]; ok {
			key.HeadComment = c
		}
		annotate(value, dotted)
	}
}

// WriteDefault writes the default configuration to path, creating its
// directory. An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	data, err := DefaultYAML()
	if err != nil {
		return err
	}
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(path, data, fileutil.FilePermission); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
