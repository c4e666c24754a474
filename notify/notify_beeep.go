// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// beeepNotifier implements Notifier using the cross-platform beeep library.
// Critical notifications use beeep.Alert, which also plays the system sound.
type beeepNotifier struct {
	config Config
	notify func(title, message string, icon any) error
	alert  func(title, message string, icon any) error
}

func newBeeepNotifier(config Config) *beeepNotifier {
	return &beeepNotifier{
		config: config,
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Send sends a notification using beeep. It gives up after the configured
// timeout or when ctx is done.
func (n *beeepNotifier) Send(ctx context.Context, notification Notification) error {
	title := notification.Title
	if n.config.AppName != "" {
		title = n.config.AppName + ": " + title
	}
	send := n.notify
	if notification.Severity == SeverityCritical {
		send = n.alert
	}

	if n.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.config.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- send(title, notification.Message, "")
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
		}
		return nil
	case <-ctx.Done():
		return ErrTimeout
	}
}
