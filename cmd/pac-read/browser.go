// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/pac-read/browser"
	"github.com/jongio/pac-read/cliout"
	"github.com/jongio/pac-read/launcher"
	"github.com/jongio/pac-read/pathutil"
	"github.com/jongio/pac-read/registry"
	"github.com/jongio/pac-read/urlutil"
)

// Where the browser command came from.
const (
	sourceConfig   = "config"
	sourceRegistry = "registry"
)

// sampleForm and sampleMessage build the URL shown when --url is not given.
const (
	sampleForm    = "form-ics213.html"
	sampleMessage = "6DM-101P"
)

type browserReport struct {
	Source     string             `json:"source,omitempty"`
	Template   string             `json:"template,omitempty"`
	URL        string             `json:"url"`
	Argv       []string           `json:"argv,omitempty"`
	Program    string             `json:"program,omitempty"`
	Installed  bool               `json:"installed"`
	Resolution browser.Resolution `json:"resolution"`
	ExitCode   *int               `json:"exitCode,omitempty"`
}

func newBrowserCmd(a *app) *cobra.Command {
	var (
		url    string
		launch bool
	)
	cmd := &cobra.Command{
		Use:   "browser",
		Short: "Show which browser command would open the viewer",
		Long: `Runs every registry lookup and prints each command found, the one that
would be used, and the argument vector it produces for a viewer URL.
A browser.command setting takes precedence over the registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBrowser(cmd.Context(), url, launch)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "URL to build the command for (default: a sample viewer URL)")
	cmd.Flags().BoolVar(&launch, "launch", false, "open the URL with the chosen command")
	return cmd
}

func (a *app) runBrowser(ctx context.Context, url string, launch bool) error {
	reg := a.registry
	if reg == nil {
		reg = registry.System()
	}
	report := browserReport{
		URL:        url,
		Resolution: browser.NewResolver(reg).Resolve(browser.Options{Exhaustive: true}),
	}
	if report.URL == "" {
		report.URL = launcher.ViewerURL(a.baseDir, sampleForm, sampleMessage)
	} else if err := urlutil.Validate(report.URL); err != nil {
		return usageError{fmt.Errorf("invalid --url: %w", err)}
	}

	if configured := strings.TrimSpace(a.cfg.Browser.Command); configured != "" {
		report.Source, report.Template = sourceConfig, configured
	} else if tmpl, ok := report.Resolution.Template(); ok {
		report.Source, report.Template = sourceRegistry, tmpl
	}
	if report.Template == "" {
		a.exitCode = launcher.ExitNoBrowser
		_ = cliout.Print(report, func() { printBrowserReport(report) })
		return browser.ErrNoBrowser
	}

	argv, err := browser.Argv(report.Template, report.URL)
	if err != nil {
		return err
	}
	report.Argv = argv
	report.Program, report.Installed = pathutil.FindProgram(argv.Program())

	if launch {
		code, err := browser.Launch(ctx, browser.LaunchOptions{
			Template: report.Template,
			URL:      report.URL,
			Wait:     a.cfg.Browser.Wait,
			Runner:   a.launcher().Runner,
		})
		if err != nil {
			return err
		}
		report.ExitCode = &code
		a.exitCode = code
	}
	return cliout.Print(report, func() { printBrowserReport(report) })
}

func printBrowserReport(r browserReport) {
	cliout.Header("Browser")
	if r.Template == "" {
		cliout.Warning("No browser command found")
		cliout.Hint("set browser.command in pac-read.yaml", "or pass --browser-command")
		return
	}

	cliout.Label("Source", r.Source)
	if r.Source == sourceRegistry {
		cliout.Label("Strategy", r.Resolution.Chosen.Strategy)
		cliout.Label("Key", r.Resolution.Chosen.Path)
	}
	cliout.Label("Template", r.Template)
	cliout.Label("URL", r.URL)
	if r.Installed {
		cliout.Label("Program", r.Program)
	} else {
		cliout.Warning("Program %s not found", r.Argv[0])
	}

	cliout.Newline()
	cliout.Info("Arguments")
	for _, arg := range r.Argv {
		cliout.Arrow("%s", arg)
	}

	if r.Resolution.Found {
		rows := []cliout.TableRow{candidateRow(r.Resolution.Chosen, true)}
		for _, c := range r.Resolution.Alternates {
			rows = append(rows, candidateRow(c, false))
		}
		cliout.Newline()
		cliout.Info("Registry")
		cliout.Table([]string{"Strategy", "Key", "Template", "Chosen"}, rows)
	}

	if r.ExitCode != nil {
		cliout.Newline()
		cliout.Success("Launched (exit code %d)", *r.ExitCode)
	}
}

func candidateRow(c browser.Candidate, chosen bool) cliout.TableRow {
	row := cliout.TableRow{
		"Strategy": c.Strategy,
		"Key":      c.Path,
		"Template": c.Template,
	}
	if chosen {
		row["Chosen"] = "yes"
	}
	return row
}
