// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package message

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"6DM-101P_O_ICS213_Test.txt", "6DM-101P"},
		{`C:\PacFORMS\in\6DM-101P_O_ICS213_Test.txt`, "6DM-101P"},
		{"/tmp/in/XSC-042_R.txt", "XSC-042"},
		{"NOUNDERSCORE.txt", "NOUNDERSCORE.txt"},
		{"_leading.txt", ""},
		{`dir_with_underscore\ABC-1_rest`, "ABC-1"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.path), "Number(%q)", tt.path)
	}
}

func TestFormFilename(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     string
		wantFind bool
	}{
		{
			name:     "marker after header",
			content:  "!SCCoPIFO!\n#T: form-ics213.html\n# FORMFILENAME: ICS213_Message_Form.html\nA.: 6DM-101P\n",
			want:     "ICS213_Message_Form.html",
			wantFind: true,
		},
		{
			name:     "crlf line endings",
			content:  "!SCCoPIFO!\r\n# FORMFILENAME: form-ics213.html\r\n",
			want:     "form-ics213.html",
			wantFind: true,
		},
		{
			name:     "first marker wins",
			content:  "# FORMFILENAME: first.html\n# FORMFILENAME: second.html\n",
			want:     "first.html",
			wantFind: true,
		},
		{
			name:     "surrounding space trimmed",
			content:  "# FORMFILENAME:    spaced.html   \n",
			want:     "spaced.html",
			wantFind: true,
		},
		{
			name:     "no marker",
			content:  "!SCCoPIFO!\n#T: form-ics213.html\n",
			wantFind: false,
		},
		{
			name:     "marker must start the line",
			content:  "  # FORMFILENAME: indented.html\n",
			wantFind: false,
		},
		{
			name:     "marker on last line without newline",
			content:  "A.: 1\n# FORMFILENAME: last.html",
			want:     "last.html",
			wantFind: true,
		},
		{
			name:     "empty file",
			content:  "",
			wantFind: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FormFilename(strings.NewReader(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFind, ok)
			if tt.wantFind {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormFilenameDoubleSpaceIsNotMarker(t *testing.T) {
	// The marker includes exactly one space after the colon.
	_, ok, err := FormFilename(strings.NewReader("# FORMFILENAME:nospace.html\n"))
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := FormFilename(strings.NewReader("# FORMFILENAME:  two.html\n"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two.html", got)
}

func TestFormFilenameLineTooLong(t *testing.T) {
	long := strings.Repeat("x", maxLineSize+1)
	_, _, err := FormFilename(strings.NewReader(long + "\n# FORMFILENAME: f.html\n"))
	assert.Error(t, err)
}

func TestReadFormFilename(t *testing.T) {
	dir := t.TempDir()
	withForm := filepath.Join(dir, "6DM-101P_O.txt")
	require.NoError(t, os.WriteFile(withForm, []byte("# FORMFILENAME: form-ics213.html\n"), 0600))
	withoutForm := filepath.Join(dir, "6DM-102P_O.txt")
	require.NoError(t, os.WriteFile(withoutForm, []byte("plain text message\n"), 0600))

	form, err := ReadFormFilename(withForm)
	require.NoError(t, err)
	assert.Equal(t, "form-ics213.html", form)

	_, err = ReadFormFilename(withoutForm)
	assert.ErrorIs(t, err, ErrNoForm)

	_, err = ReadFormFilename(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}
