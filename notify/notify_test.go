// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sent struct {
	via, title, message string
}

func fakeNotifier(config Config, err error, calls *[]sent) *beeepNotifier {
	n := newBeeepNotifier(config)
	n.notify = func(title, message string, _ any) error {
		*calls = append(*calls, sent{"notify", title, message})
		return err
	}
	n.alert = func(title, message string, _ any) error {
		*calls = append(*calls, sent{"alert", title, message})
		return err
	}
	return n
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.AppName != "pac-read" {
		t.Errorf("expected app name 'pac-read', got %s", config.AppName)
	}
	if config.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", config.Timeout)
	}
}

func TestBeeepNotifier_Send(t *testing.T) {
	var calls []sent
	n := fakeNotifier(DefaultConfig(), nil, &calls)

	err := n.Send(context.Background(), Notification{Title: "No browser", Message: "set browser.command", Severity: SeverityWarning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = n.Send(context.Background(), Notification{Title: "Launch failed", Message: "exit 1", Severity: SeverityCritical})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []sent{
		{"notify", "pac-read: No browser", "set browser.command"},
		{"alert", "pac-read: Launch failed", "exit 1"},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestBeeepNotifier_NoAppName(t *testing.T) {
	var calls []sent
	n := fakeNotifier(Config{}, nil, &calls)

	if err := n.Send(context.Background(), Notification{Title: "Plain"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls[0].title != "Plain" {
		t.Errorf("expected unprefixed title, got %q", calls[0].title)
	}
}

func TestBeeepNotifier_Error(t *testing.T) {
	var calls []sent
	boom := errors.New("dbus unavailable")
	n := fakeNotifier(DefaultConfig(), boom, &calls)

	err := n.Send(context.Background(), Notification{Title: "x"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Errorf("expected ErrNotificationFailed, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestBeeepNotifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	n := newBeeepNotifier(Config{Timeout: 10 * time.Millisecond})
	n.notify = func(string, string, any) error {
		<-release
		return nil
	}

	err := n.Send(context.Background(), Notification{Title: "slow"})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_ = r.Send(context.Background(), Notification{Title: "one"})
	_ = r.Send(context.Background(), Notification{Title: "two"})

	got := r.Sent()
	if len(got) != 2 || got[0].Title != "one" || got[1].Title != "two" {
		t.Errorf("unexpected notifications: %+v", got)
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	if err := n.Send(context.Background(), Notification{}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
