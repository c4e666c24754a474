// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"fmt"

	"github.com/jongio/pac-read/logutil"
	"github.com/jongio/pac-read/procutil"
	"github.com/jongio/pac-read/shellutil"
)

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// Template is the shell command template, with %1 for the URL.
	Template string
	// URL is substituted for %1 verbatim.
	URL string
	// Wait blocks until the browser exits and reports its exit code.
	Wait bool
	// Runner starts the process. Defaults to procutil.ExecRunner.
	Runner procutil.Runner
	// Logger defaults to the "browser" component logger.
	Logger *logutil.ComponentLogger
}

// Argv builds the argument vector for a template and URL. A template without
// a %1 placeholder gets the URL appended as its last argument.
func Argv(template, url string) (shellutil.Argv, error) {
	argv, err := shellutil.SplitTemplate(template, url)
	if err != nil {
		return nil, fmt.Errorf("invalid browser command %q: %w", template, err)
	}
	if !shellutil.HasPlaceholder(template) {
		argv = append(argv, url)
	}
	return argv, nil
}

// Launch opens URL with the browser described by Template.
// Without Wait the exit code is 0 once the browser has started.
func Launch(ctx context.Context, opts LaunchOptions) (int, error) {
	if opts.Template == "" {
		return -1, ErrNoBrowser
	}
	runner := opts.Runner
	if runner == nil {
		runner = procutil.ExecRunner{}
	}
	log := opts.Logger
	if log == nil {
		log = logutil.NewLogger("browser")
	}

	argv, err := Argv(opts.Template, opts.URL)
	if err != nil {
		return -1, err
	}
	log.Info("launching browser", "template", opts.Template, "argv", argv.String())

	if opts.Wait {
		code, err := runner.Run(ctx, argv)
		if err != nil {
			return code, fmt.Errorf("failed to launch browser: %w", err)
		}
		log.Debug("browser exited", "exitCode", code)
		return code, nil
	}

	if err := runner.Start(ctx, argv); err != nil {
		return -1, fmt.Errorf("failed to launch browser: %w", err)
	}
	return 0, nil
}
