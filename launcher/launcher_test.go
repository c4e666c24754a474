// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/pac-read/browser"
	"github.com/jongio/pac-read/config"
	"github.com/jongio/pac-read/notify"
	"github.com/jongio/pac-read/procutil"
	"github.com/jongio/pac-read/registry"
)

const (
	msgno     = "6DM-101P"
	form      = "ICS213_Message_Form.html"
	withForm  = "!SCCoPIFO!\n#T: form-ics213.html\n# FORMFILENAME: " + form + "\nA.: 6DM-101P\n"
	plainText = "Subject: weather\n\nClear skies.\n"
	firefox   = `"C:\Program Files\Mozilla Firefox\firefox.exe" -osint -url "%1"`
)

type fixture struct {
	base     string
	file     string
	mem      *registry.Memory
	runner   *procutil.Recorder
	notifier *notify.Recorder
	launcher *Launcher
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	f := &fixture{
		base:     t.TempDir(),
		mem:      registry.NewMemory(),
		runner:   &procutil.Recorder{},
		notifier: &notify.Recorder{},
	}
	inbox := t.TempDir()
	f.file = filepath.Join(inbox, msgno+"_O_ICS213_Test.txt")
	require.NoError(t, os.WriteFile(f.file, []byte(content), 0600))

	f.launcher = &Launcher{
		Config:   config.Defaults(),
		BaseDir:  f.base,
		Registry: f.mem,
		Runner:   f.runner,
		Notifier: f.notifier,
	}
	t.Cleanup(func() {
		assert.Equal(t, 0, f.mem.OpenHandles(), "registry handles left open")
	})
	return f
}

// args follows the reader calling convention: two leading arguments and the
// message file third.
func (f *fixture) args() []string {
	return []string{"-r", "PACFORMS", f.file}
}

func (f *fixture) run(t *testing.T) (int, error) {
	t.Helper()
	return f.launcher.Run(context.Background(), f.args())
}

func (f *fixture) assertStaged(t *testing.T, content string) {
	t.Helper()
	got, err := os.ReadFile(filepath.Join(f.base, "msgs", msgno))
	require.NoError(t, err, "message not staged")
	assert.Equal(t, content, string(got))
}

func TestRunWithConfiguredBrowser(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	f.assertStaged(t, withForm)

	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Wait)
	assert.Equal(t, []string{
		`C:\Program Files\Mozilla Firefox\firefox.exe`, "-osint", "-url",
		ViewerURL(f.base, form, msgno),
	}, calls[0].Argv)
	assert.Empty(t, f.notifier.Sent())
	assert.Zero(t, f.mem.Opens(), "configured command skips the registry")
}

func TestRunResolvesBrowserFromRegistry(t *testing.T) {
	f := newFixture(t, withForm)
	f.mem.SetDefault(registry.MustParsePath(`HKCU\Software\Classes\FirefoxURL-308046B0AF4A39CB\shell\open\command`), firefox)
	f.mem.SetDefault(registry.MustParsePath(`HKCR\http\shell\open\command`), `"C:\ie\iexplore.exe" %1`)

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, `C:\Program Files\Mozilla Firefox\firefox.exe`, calls[0].Argv[0])
}

func TestRunNoBrowser(t *testing.T) {
	for _, exhaustive := range []bool{false, true} {
		f := newFixture(t, withForm)
		f.launcher.Config.Browser.Exhaustive = exhaustive

		code, err := f.run(t)

		assert.Equal(t, ExitNoBrowser, code)
		assert.ErrorIs(t, err, browser.ErrNoBrowser)
		assert.Empty(t, f.runner.Calls())
		require.Len(t, f.notifier.Sent(), 1)
		assert.Equal(t, "No browser found", f.notifier.Sent()[0].Title)
		assert.Contains(t, f.notifier.Sent()[0].Message, "browser.command")
		f.assertStaged(t, withForm)
	}
}

func TestRunLaunchFailure(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox
	f.runner.Err = errors.New("file does not exist")

	code, err := f.run(t)

	assert.Equal(t, ExitFailure, code)
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "browser", launchErr.Target)
	assert.Equal(t, -1, launchErr.ExitCode)
	assert.ErrorIs(t, err, f.runner.Err)
	assert.Len(t, launchErr.Argv, 4)
	require.Len(t, f.notifier.Sent(), 1)
	assert.Equal(t, notify.SeverityCritical, f.notifier.Sent()[0].Severity)
}

func TestRunWaitPropagatesExitCode(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox
	f.launcher.Config.Browser.Wait = true
	f.runner.ExitCode = 3

	code, err := f.run(t)

	assert.Equal(t, 3, code)
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, 3, launchErr.ExitCode)
	assert.Equal(t, "browser exited with code 3", launchErr.Error())
	require.Len(t, f.runner.Calls(), 1)
	assert.True(t, f.runner.Calls()[0].Wait)
}

func TestRunWaitSuccess(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox
	f.launcher.Config.Browser.Wait = true

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
}

func TestRunWithoutFormAndLegacy(t *testing.T) {
	f := newFixture(t, plainText)
	f.mem.SetDefault(registry.MustParsePath(`HKCR\http\shell\open\command`), `"C:\ie\iexplore.exe" %1`)

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, f.runner.Calls(), "no browser for messages without a form")
	assert.Zero(t, f.mem.Opens())
	f.assertStaged(t, plainText)
}

func TestRunLegacyWithPlaceholder(t *testing.T) {
	f := newFixture(t, plainText)
	f.launcher.Config.Legacy.Command = `"C:\PacFORMS\old read.exe" /view "%1"`

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Wait)
	assert.Equal(t, []string{`C:\PacFORMS\old read.exe`, "/view", f.file}, calls[0].Argv)
}

func TestRunLegacyAppendsReaderArgs(t *testing.T) {
	f := newFixture(t, plainText)
	f.launcher.Config.Legacy.Command = `C:\PacFORMS\oldread.exe`
	f.runner.ExitCode = 5

	code, err := f.run(t)

	require.NoError(t, err, "legacy exit codes are passed through")
	assert.Equal(t, 5, code)
	calls := f.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, append([]string{`C:\PacFORMS\oldread.exe`}, f.args()...), calls[0].Argv)
}

func TestRunLegacyFailure(t *testing.T) {
	f := newFixture(t, plainText)
	f.launcher.Config.Legacy.Command = `oldread.exe %1`
	f.runner.Err = errors.New("not found")

	code, err := f.run(t)

	assert.Equal(t, ExitFailure, code)
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "legacy", launchErr.Target)
	assert.Len(t, f.notifier.Sent(), 1)
}

func TestRunNoArguments(t *testing.T) {
	f := newFixture(t, withForm)

	code, err := f.launcher.Run(context.Background(), nil)

	assert.Equal(t, ExitUsage, code)
	assert.ErrorIs(t, err, ErrNoMessageFile)
	assert.Empty(t, f.runner.Calls())
}

func TestRunShortArgumentList(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox

	code, err := f.launcher.Run(context.Background(), []string{f.file})

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	f.assertStaged(t, withForm)
}

func TestRunMissingMessageFile(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox

	code, err := f.launcher.Run(context.Background(), []string{"a", "b", filepath.Join(t.TempDir(), "X-1_missing.txt")})

	assert.Equal(t, ExitFailure, code)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, f.runner.Calls())
	assert.Len(t, f.notifier.Sent(), 1)
}

func TestRunStagingFailureDoesNotAbort(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox
	require.NoError(t, os.WriteFile(filepath.Join(f.base, "msgs"), []byte("not a directory"), 0600))

	code, err := f.run(t)

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Len(t, f.runner.Calls(), 1)
}

func TestRunAbsoluteMessagesDir(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Config.Browser.Command = firefox
	staging := filepath.Join(t.TempDir(), "staging")
	f.launcher.Config.MessagesDir = staging

	_, err := f.run(t)

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(staging, msgno))
	assert.NoError(t, statErr)
}

func TestRunNilNotifier(t *testing.T) {
	f := newFixture(t, withForm)
	f.launcher.Notifier = nil

	code, err := f.run(t)

	assert.Equal(t, ExitNoBrowser, code)
	assert.ErrorIs(t, err, browser.ErrNoBrowser)
}

func TestMessageFile(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr error
	}{
		{nil, "", ErrNoMessageFile},
		{[]string{"only.txt"}, "only.txt", nil},
		{[]string{"-r", "last.txt"}, "last.txt", nil},
		{[]string{"-r", "PACFORMS", "third.txt"}, "third.txt", nil},
		{[]string{"-r", "PACFORMS", "third.txt", "extra"}, "third.txt", nil},
	}
	for _, tt := range tests {
		got, err := MessageFile(tt.args)
		assert.ErrorIs(t, err, tt.wantErr)
		assert.Equal(t, tt.want, got, "MessageFile(%q)", tt.args)
	}
}

func TestViewerURL(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Equal(t,
			"file:///C:/PacFORMS/form-ics213.html?mode=readonly&msgno=6DM-101P",
			ViewerURL(`C:\PacFORMS`, "form-ics213.html", "6DM-101P"))
		return
	}

	tests := []struct {
		base, form, msgno string
		want              string
	}{
		{"/pacforms", "form-ics213.html", "6DM-101P", "file:///pacforms/form-ics213.html?mode=readonly&msgno=6DM-101P"},
		{"/opt/Pac Forms", "ICS213.html", "XSC-1", "file:///opt/Pac%20Forms/ICS213.html?mode=readonly&msgno=XSC-1"},
		{"/pacforms", "forms/sub.html", "A&B", "file:///pacforms/forms/sub.html?mode=readonly&msgno=A%26B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ViewerURL(tt.base, tt.form, tt.msgno))
	}
}

func TestLaunchErrorMessage(t *testing.T) {
	err := &LaunchError{Target: "browser", ExitCode: -1, Err: errors.New("boom")}
	assert.Equal(t, "launch browser: boom", err.Error())
	assert.Equal(t, "legacy exited with code 7", (&LaunchError{Target: "legacy", ExitCode: 7}).Error())
}

func TestNew(t *testing.T) {
	cfg := config.Defaults()
	l := New(cfg, "/pacforms")
	assert.NotNil(t, l.Registry)
	assert.NotNil(t, l.Runner)
	runner, ok := l.Runner.(procutil.ExecRunner)
	require.True(t, ok)
	assert.Equal(t, "/pacforms", runner.Dir)
	assert.NotNil(t, runner.Stdout)
	assert.NotNil(t, l.Logger)

	cfg.Notify = false
	assert.IsType(t, notify.Nop{}, New(cfg, "/pacforms").Notifier)
}
