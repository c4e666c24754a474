// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// LineWriter is an io.Writer that calls a handler for each complete line
// written to it. A trailing carriage return is dropped from each line.
// Partial lines are held until the next newline or Flush.
type LineWriter struct {
	mu      sync.Mutex
	output  io.Writer
	handler func(line string)
	buf     []byte
}

// NewLineWriter creates a LineWriter. When output is non-nil, every write is
// also copied to it.
func NewLineWriter(output io.Writer, handler func(line string)) *LineWriter {
	return &LineWriter{output: output, handler: handler}
}

// Write implements io.Writer.
func (lw *LineWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	n = len(p)
	if lw.output != nil {
		if n, err = lw.output.Write(p); err != nil {
			return n, err
		}
	}

	lw.buf = append(lw.buf, p...)
	for {
		idx := bytes.IndexByte(lw.buf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(string(lw.buf[:idx]), "\r")
		lw.buf = lw.buf[idx+1:]
		if lw.handler != nil {
			lw.handler(line)
		}
	}
	return n, nil
}

// Flush passes any buffered partial line to the handler.
func (lw *LineWriter) Flush() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if len(lw.buf) > 0 && lw.handler != nil {
		lw.handler(strings.TrimSuffix(string(lw.buf), "\r"))
	}
	lw.buf = nil
}
