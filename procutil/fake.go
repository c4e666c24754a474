// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"sync"
)

// Call records one invocation of a Recorder.
type Call struct {
	Argv []string
	Wait bool
}

// Recorder is a Runner that records calls instead of starting processes.
type Recorder struct {
	mu sync.Mutex

	// ExitCode is returned by Run.
	ExitCode int
	// Err is returned by Start and Run when set.
	Err error

	calls []Call
}

// Start implements Runner.
func (r *Recorder) Start(_ context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyArgv
	}
	r.record(argv, false)
	return r.Err
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, ErrEmptyArgv
	}
	r.record(argv, true)
	if r.Err != nil {
		return -1, r.Err
	}
	return r.ExitCode, nil
}

func (r *Recorder) record(argv []string, wait bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Argv: append([]string(nil), argv...), Wait: wait})
}

// Calls returns the recorded invocations in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
