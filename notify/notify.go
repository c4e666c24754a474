// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package notify shows desktop notifications for failures the user has to act
// on. The launcher usually runs without a console window, so a log line alone
// would go unseen.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Severity levels.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Notification represents a notification to be displayed.
type Notification struct {
	// Title is the notification title
	Title string

	// Message is the notification body
	Message string

	// Severity is one of SeverityCritical, SeverityWarning or SeverityInfo
	Severity string
}

// Notifier sends notifications to the user.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}

// Config contains notification system configuration.
type Config struct {
	// AppName prefixes notification titles
	AppName string

	// Timeout for notification operations
	Timeout time.Duration
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "pac-read",
		Timeout: 5 * time.Second,
	}
}

// New creates a desktop notifier.
func New(config Config) Notifier {
	return newBeeepNotifier(config)
}

var (
	ErrNotificationFailed = errors.New("failed to send notification")
	ErrTimeout            = errors.New("notification timeout")
)

// Nop discards notifications.
type Nop struct{}

// Send implements Notifier.
func (Nop) Send(context.Context, Notification) error { return nil }

// Recorder is a Notifier that keeps every notification it is sent.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// Send implements Notifier.
func (r *Recorder) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns the recorded notifications in order.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
