// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package launcher opens a message in its HTML viewer form.
//
// A run takes the arguments the message-handling program passes to its
// reader, stages the message file for the forms, and opens the form named by
// the message in the user's browser. Messages that do not name a form are
// handed to the legacy reader when one is configured.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jongio/pac-read/browser"
	"github.com/jongio/pac-read/config"
	"github.com/jongio/pac-read/fileutil"
	"github.com/jongio/pac-read/logutil"
	"github.com/jongio/pac-read/message"
	"github.com/jongio/pac-read/notify"
	"github.com/jongio/pac-read/procutil"
	"github.com/jongio/pac-read/registry"
	"github.com/jongio/pac-read/shellutil"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitNoBrowser = 2
	ExitUsage     = 64
)

// messageFileArg is the position of the message file in the reader calling
// convention.
const messageFileArg = 2

// ErrNoMessageFile is returned when no arguments are given.
var ErrNoMessageFile = errors.New("no message file given")

// LaunchError reports a viewer or legacy reader that could not be run or
// exited with a failure.
type LaunchError struct {
	// Target is "browser" or "legacy".
	Target string
	Argv   []string
	// ExitCode is the child's exit code, or -1 if it never ran.
	ExitCode int
	Err      error
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("launch %s: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d", e.Target, e.ExitCode)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher carries everything a run needs. A nil Registry or Runner falls
// back to the system one; a nil Notifier sends nothing.
type Launcher struct {
	Config config.Config
	// BaseDir holds the forms. Messages are staged below it.
	BaseDir  string
	Registry registry.Registry
	Runner   procutil.Runner
	Notifier notify.Notifier
	Logger   *logutil.ComponentLogger
}

// New creates a Launcher using the system registry and real processes.
func New(cfg config.Config, baseDir string) *Launcher {
	var n notify.Notifier = notify.Nop{}
	if cfg.Notify {
		n = notify.New(notify.DefaultConfig())
	}
	log := logutil.NewLogger("launcher")
	return &Launcher{
		Config:   cfg,
		BaseDir:  baseDir,
		Registry: registry.System(),
		Runner: procutil.ExecRunner{
			Dir:    baseDir,
			Stdout: childOutput(log, "stdout"),
			Stderr: childOutput(log, "stderr"),
		},
		Notifier: n,
		Logger:   log,
	}
}

// childOutput logs what a waited-for child writes. There is usually no
// console to show it on.
func childOutput(log *logutil.ComponentLogger, stream string) *procutil.LineWriter {
	childLog := log.WithFields("stream", stream)
	return procutil.NewLineWriter(nil, func(line string) {
		childLog.Debug("child output", "line", line)
	})
}

// MessageFile picks the message file out of the reader arguments: the third
// argument, or the last one when fewer are given.
func MessageFile(args []string) (string, error) {
	switch {
	case len(args) == 0:
		return "", ErrNoMessageFile
	case len(args) > messageFileArg:
		return args[messageFileArg], nil
	default:
		return args[len(args)-1], nil
	}
}

// ViewerURL builds the URL that opens form in read-only mode for msgno.
func ViewerURL(base, form, msgno string) string {
	p := filepath.ToSlash(filepath.Join(base, form))
	u := url.URL{
		Scheme:   "file",
		Path:     "/" + strings.TrimPrefix(p, "/"),
		RawQuery: url.Values{"mode": {"readonly"}, "msgno": {msgno}}.Encode(),
	}
	return u.String()
}

// Run processes one invocation and returns the process exit code.
func (l *Launcher) Run(ctx context.Context, args []string) (int, error) {
	log := l.logger().WithOperation("run")

	file, err := MessageFile(args)
	if err != nil {
		return ExitUsage, err
	}
	msgno := message.Number(file)
	log = log.WithFields("message", file, "msgno", msgno)
	log.Debug("message received", "args", args)

	dir := l.Config.MessagesPath(l.BaseDir)
	if staged, err := fileutil.StageMessage(file, dir, msgno); err != nil {
		log.Warn("failed to stage message", "dir", dir, "error", err)
	} else {
		log.Debug("message staged", "path", staged)
	}

	form, err := message.ReadFormFilename(file)
	if errors.Is(err, message.ErrNoForm) {
		return l.runLegacy(ctx, log, file, args)
	}
	if err != nil {
		l.alert(ctx, log, "Cannot read message", err)
		return ExitFailure, err
	}
	log = log.WithFields("form", form)

	template, err := l.browserTemplate(log)
	if err != nil {
		l.alert(ctx, log, "No browser found", err)
		return ExitNoBrowser, err
	}

	viewer := ViewerURL(l.BaseDir, form, msgno)
	code, err := browser.Launch(ctx, browser.LaunchOptions{
		Template: template,
		URL:      viewer,
		Wait:     l.Config.Browser.Wait,
		Runner:   l.runner(),
		Logger:   log,
	})
	if err != nil || code != 0 {
		argv, _ := browser.Argv(template, viewer)
		launchErr := &LaunchError{Target: "browser", Argv: argv, ExitCode: code, Err: err}
		l.alert(ctx, log, "Cannot open message", launchErr)
		if code > 0 {
			return code, launchErr
		}
		return ExitFailure, launchErr
	}
	return ExitOK, nil
}

// browserTemplate returns the configured browser command or resolves one.
func (l *Launcher) browserTemplate(log *logutil.ComponentLogger) (string, error) {
	if cmd := strings.TrimSpace(l.Config.Browser.Command); cmd != "" {
		log.Debug("using configured browser command", "template", cmd)
		return cmd, nil
	}

	res := browser.NewResolver(l.reg()).Resolve(browser.Options{Exhaustive: l.Config.Browser.Exhaustive})
	template, ok := res.Template()
	if !ok {
		return "", browser.ErrNoBrowser
	}
	return template, nil
}

// runLegacy hands a message without a form to the legacy reader.
func (l *Launcher) runLegacy(ctx context.Context, log *logutil.ComponentLogger, file string, args []string) (int, error) {
	template := strings.TrimSpace(l.Config.Legacy.Command)
	if template == "" {
		log.Info("message has no form and no legacy reader is configured")
		return ExitOK, nil
	}

	argv, err := shellutil.SplitTemplate(template, file)
	if err != nil {
		return ExitFailure, &LaunchError{Target: "legacy", ExitCode: -1, Err: err}
	}
	if !shellutil.HasPlaceholder(template) {
		argv = append(argv, args...)
	}
	log.Info("delegating to legacy reader", "argv", argv.String())

	code, err := l.runner().Run(ctx, argv)
	if err != nil {
		launchErr := &LaunchError{Target: "legacy", Argv: argv, ExitCode: code, Err: err}
		l.alert(ctx, log, "Cannot open message", launchErr)
		return ExitFailure, launchErr
	}
	if code != 0 {
		log.Warn("legacy reader failed", "exitCode", code)
	}
	return code, nil
}

// alert logs err and tells the user about it.
func (l *Launcher) alert(ctx context.Context, log *logutil.ComponentLogger, title string, err error) {
	log.Error(title, "error", err)
	if l.Notifier == nil {
		return
	}
	n := notify.Notification{Title: title, Message: err.Error(), Severity: notify.SeverityCritical}
	if sendErr := l.Notifier.Send(ctx, n); sendErr != nil {
		log.Debug("notification failed", "error", sendErr)
	}
}

func (l *Launcher) logger() *logutil.ComponentLogger {
	if l.Logger == nil {
		l.Logger = logutil.NewLogger("launcher")
	}
	return l.Logger
}

func (l *Launcher) runner() procutil.Runner {
	if l.Runner == nil {
		return procutil.ExecRunner{Dir: l.BaseDir}
	}
	return l.Runner
}

func (l *Launcher) reg() registry.Registry {
	if l.Registry == nil {
		return registry.System()
	}
	return l.Registry
}
