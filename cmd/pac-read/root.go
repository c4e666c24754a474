// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/pac-read/cliout"
	"github.com/jongio/pac-read/config"
	"github.com/jongio/pac-read/launcher"
	"github.com/jongio/pac-read/logutil"
	"github.com/jongio/pac-read/notify"
	"github.com/jongio/pac-read/procutil"
	"github.com/jongio/pac-read/registry"
	"github.com/jongio/pac-read/version"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	output  string

	cfg      config.Config
	baseDir  string
	logFile  *os.File
	exitCode int

	stderr io.Writer

	// Overrides for tests. Nil means the real thing.
	searchDirs []string
	registry   registry.Registry
	runner     procutil.Runner
	notifier   notify.Notifier
}

func newApp() *app {
	return &app{stderr: os.Stderr}
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(readerArgs(root, args))
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	a.closeLog()
	if err == nil {
		return a.exitCode
	}

	_, _ = fmt.Fprintf(a.stderr, "pac-read: %v\n", err)
	var usage usageError
	switch {
	case errors.As(err, &usage):
		_, _ = fmt.Fprintln(a.stderr, "Run 'pac-read --help' for usage.")
		return launcher.ExitUsage
	case a.exitCode != 0:
		return a.exitCode
	default:
		return launcher.ExitFailure
	}
}

// readerArgs ends flag parsing at the first argument that is not a root
// flag, so reader arguments such as "-r" reach the launcher untouched.
func readerArgs(root *cobra.Command, args []string) []string {
	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()
	sets := []*pflag.FlagSet{root.Flags(), root.PersistentFlags()}

	out := make([]string, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") || arg == "-" {
			return append(out, args[i:]...)
		}

		var f *pflag.Flag
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		for _, set := range sets {
			switch {
			case strings.HasPrefix(arg, "--"):
				f = set.Lookup(name)
			case len(name) == 1:
				f = set.ShorthandLookup(name)
			}
			if f != nil {
				break
			}
		}
		if f == nil {
			out = append(out, "--")
			return append(out, args[i:]...)
		}

		out = append(out, arg)
		if !hasValue && f.NoOptDefVal == "" && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

func newRootCmd(a *app) *cobra.Command {
	info := version.New("pac-read")
	cmd := &cobra.Command{
		Use:   "pac-read [flags] <arg1> <arg2> <message-file>",
		Short: "Open a packet message in its viewer form",
		Long: `pac-read stages a message file for the HTML forms and opens the form named
by its "# FORMFILENAME:" line in the web browser. The browser command comes
from browser.command or, when that is empty, from the registry. Messages
without a form are passed to legacy.command.

Flags must come before the reader arguments.`,
		Version:           info.Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runLaunch,
	}
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: pac-read.yaml next to the executable)")
	pf.StringVarP(&a.output, "output", "o", "default", "output format for diagnostic commands: default or json")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("base-dir", "", "directory holding the forms (default: the executable's directory)")
	pf.String("log-file", "", "also append logs to this file, relative to the base directory")
	pf.String("log-format", "", "log format: text or json")
	pf.String("browser-command", "", `browser command template, with %1 for the viewer URL`)
	pf.Bool("exhaustive", false, "try every registry lookup and log each match")
	pf.Bool("wait", false, "wait for the browser and return its exit code")

	f := cmd.Flags()
	f.String("messages-dir", "", "where messages are staged, relative to the base directory")
	f.String("legacy-command", "", "reader for messages without a form, with %1 for the message file")
	f.Bool("notify", true, "show a desktop notification when the viewer cannot be opened")

	cmd.AddCommand(
		newBrowserCmd(a),
		newConfigCmd(a),
		version.NewCommand(info, &a.output),
	)
	return cmd
}

// setup loads the configuration and configures logging for every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := cliout.SetFormat(a.output); err != nil {
		return usageError{err}
	}

	cfg, err := config.Load(config.Options{
		File:       a.cfgFile,
		SearchDirs: a.searchDirs,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	base, err := cfg.ResolveBaseDir()
	if err != nil {
		return err
	}
	a.cfg, a.baseDir = cfg, base

	a.setupLogging()
	logutil.Debug("configuration loaded", "file", cfg.File, "baseDir", base, "args", os.Args)
	return nil
}

func (a *app) setupLogging() {
	var w = a.stderr
	if path := a.cfg.Log.File; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.baseDir, path)
		}
		f, err := logutil.OpenLogFile(path)
		if err != nil {
			_, _ = fmt.Fprintf(a.stderr, "pac-read: %v\n", err)
		} else {
			a.logFile = f
			w = io.MultiWriter(a.stderr, f)
		}
	}
	logutil.SetupLoggerWithWriter(w, a.cfg.Debug, a.cfg.StructuredLogs())
}

func (a *app) closeLog() {
	if a.logFile == nil {
		return
	}
	logutil.SetOutput(a.stderr)
	_ = a.logFile.Close()
	a.logFile = nil
}

func (a *app) runLaunch(cmd *cobra.Command, args []string) error {
	code, err := a.launcher().Run(cmd.Context(), args)
	a.exitCode = code
	if errors.Is(err, launcher.ErrNoMessageFile) {
		return usageError{err}
	}
	return err
}

// launcher builds the launcher for the loaded configuration.
func (a *app) launcher() *launcher.Launcher {
	l := launcher.New(a.cfg, a.baseDir)
	if a.registry != nil {
		l.Registry = a.registry
	}
	if a.runner != nil {
		l.Runner = a.runner
	}
	if a.notifier != nil {
		l.Notifier = a.notifier
	}
	return l
}
