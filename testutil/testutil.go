package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jongio/pac-read/cliout"
	"github.com/jongio/pac-read/message"
)

// CaptureOutput redirects cliout to a buffer while fn runs and returns what
// was written. The previous writer is always restored.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    cliout.Success("done")
//	    return nil
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	var buf bytes.Buffer
	prev := cliout.SetOutput(&buf)
	defer cliout.SetOutput(prev)

	if err := fn(); err != nil {
		t.Logf("Command error: %v", err)
	}
	return buf.String()
}

// WriteMessage writes a message file named name into dir. When form is not
// empty the message carries a form marker line naming it. The body lines
// follow. It returns the file's path.
func WriteMessage(t *testing.T, dir, name, form string, body ...string) string {
	t.Helper()

	var lines []string
	if form != "" {
		lines = append(lines, "!SCCoPIFO!", message.FormMarker+form)
	}
	lines = append(lines, body...)

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("Failed to create message directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("Failed to write message file: %v", err)
	}
	return path
}

// WriteConfig writes a pac-read.yaml with content into dir and returns its
// path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "pac-read.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}
