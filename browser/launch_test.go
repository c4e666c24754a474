// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/pac-read/procutil"
	"github.com/jongio/pac-read/shellutil"
)

const viewerURL = "file:///C:/PacFORMS/ICS213_Message_Form.html?mode=readonly&msgno=6DM-101P"

func TestArgv(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     shellutil.Argv
	}{
		{
			name:     "quoted placeholder",
			template: firefoxMachine,
			want:     shellutil.Argv{`C:\Program Files\Mozilla Firefox\firefox.exe`, "-osint", "-url", viewerURL},
		},
		{
			name:     "bare placeholder",
			template: iexplore,
			want:     shellutil.Argv{`C:\Program Files\Internet Explorer\iexplore.exe`, viewerURL},
		},
		{
			name:     "no placeholder appends url",
			template: `"C:\Program Files\Opera\launcher.exe" --new-window`,
			want:     shellutil.Argv{`C:\Program Files\Opera\launcher.exe`, "--new-window", viewerURL},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Argv(tt.template, viewerURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgvEmptyTemplate(t *testing.T) {
	_, err := Argv("   ", viewerURL)
	assert.ErrorIs(t, err, shellutil.ErrEmptyCommand)
}

func TestLaunchStartsWithoutWaiting(t *testing.T) {
	rec := &procutil.Recorder{ExitCode: 7}

	code, err := Launch(context.Background(), LaunchOptions{
		Template: firefoxMachine,
		URL:      viewerURL,
		Runner:   rec,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, code, "exit code is ignored without wait")
	require.Len(t, rec.Calls(), 1)
	call := rec.Calls()[0]
	assert.False(t, call.Wait)
	assert.Equal(t, viewerURL, call.Argv[len(call.Argv)-1])
}

func TestLaunchWaitReturnsExitCode(t *testing.T) {
	rec := &procutil.Recorder{ExitCode: 3}

	code, err := Launch(context.Background(), LaunchOptions{
		Template: chrome,
		URL:      viewerURL,
		Wait:     true,
		Runner:   rec,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, code)
	require.Len(t, rec.Calls(), 1)
	assert.True(t, rec.Calls()[0].Wait)
	assert.Equal(t, []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`, "--single-argument", viewerURL,
	}, rec.Calls()[0].Argv)
}

func TestLaunchNoTemplate(t *testing.T) {
	rec := &procutil.Recorder{}
	_, err := Launch(context.Background(), LaunchOptions{URL: viewerURL, Runner: rec})
	assert.ErrorIs(t, err, ErrNoBrowser)
	assert.Empty(t, rec.Calls())
}

func TestLaunchRunnerFailure(t *testing.T) {
	boom := errors.New("file not found")
	for _, wait := range []bool{false, true} {
		rec := &procutil.Recorder{Err: boom}
		_, err := Launch(context.Background(), LaunchOptions{
			Template: iexplore,
			URL:      viewerURL,
			Wait:     wait,
			Runner:   rec,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to launch browser")
	}
}
