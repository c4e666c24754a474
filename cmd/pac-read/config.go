// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jongio/pac-read/cliout"
	"github.com/jongio/pac-read/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the pac-read configuration",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default pac-read.yaml",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if path == "" {
				path = filepath.Join(a.baseDir, config.FileName+".yaml")
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			return cliout.Print(map[string]string{"path": path}, func() {
				cliout.Success("Wrote %s", path)
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "file to write (default: pac-read.yaml in the base directory)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			// Decode back into a map so JSON output uses the file's key names.
			var doc map[string]any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			doc["file"] = a.cfg.File
			doc["resolved_base_dir"] = a.baseDir

			return cliout.Print(doc, func() {
				cliout.Header("Configuration")
				file := a.cfg.File
				if file == "" {
					file = "(none, using defaults)"
				}
				cliout.Label("File", file)
				cliout.Label("Base dir", a.baseDir)
				cliout.Newline()
				for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
					cliout.Item("%s", line)
				}
			})
		},
	}
}
