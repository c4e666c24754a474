package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jongio/pac-read/cliout"
	"github.com/jongio/pac-read/message"
)

func TestCaptureOutput(t *testing.T) {
	t.Run("captures cliout", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			cliout.Item("line 1")
			cliout.Item("line 2")
			return nil
		})

		if !strings.Contains(output, "line 1") || !strings.Contains(output, "line 2") {
			t.Errorf("expected both lines, got: %q", output)
		}
	})

	t.Run("restores writer after error", func(t *testing.T) {
		var outer strings.Builder
		prev := cliout.SetOutput(&outer)
		defer cliout.SetOutput(prev)

		output := CaptureOutput(t, func() error {
			cliout.Item("inside")
			return errors.New("boom")
		})
		cliout.Item("outside")

		if !strings.Contains(output, "inside") {
			t.Errorf("expected captured output, got: %q", output)
		}
		if strings.Contains(output, "outside") {
			t.Errorf("output written after capture leaked in: %q", output)
		}
		if !strings.Contains(outer.String(), "outside") {
			t.Errorf("previous writer not restored, got: %q", outer.String())
		}
	})
}

func TestWriteMessage(t *testing.T) {
	t.Run("with form", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "inbox")
		path := WriteMessage(t, dir, "6DM-101P_O_ICS213.txt", "ICS213.html", "A.: 6DM-101P")

		if filepath.Dir(path) != dir {
			t.Errorf("expected file in %s, got %s", dir, path)
		}
		form, err := message.ReadFormFilename(path)
		if err != nil {
			t.Fatalf("ReadFormFilename() error = %v", err)
		}
		if form != "ICS213.html" {
			t.Errorf("expected form ICS213.html, got %q", form)
		}
	})

	t.Run("without form", func(t *testing.T) {
		path := WriteMessage(t, t.TempDir(), "plain.txt", "", "Subject: weather", "", "Clear.")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "Subject: weather\n\nClear.\n" {
			t.Errorf("unexpected content: %q", data)
		}
		if _, err := message.ReadFormFilename(path); !errors.Is(err, message.ErrNoForm) {
			t.Errorf("expected ErrNoForm, got %v", err)
		}
	})
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	path := WriteConfig(t, dir, "debug: true\n")

	if path != filepath.Join(dir, "pac-read.yaml") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "debug: true\n" {
		t.Errorf("unexpected content: %q", data)
	}
}
