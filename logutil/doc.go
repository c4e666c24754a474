// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Log messages at different levels
//	logutil.Debug("registry miss", "path", path)
//	logutil.Info("launching viewer", "program", argv[0])
//	logutil.Error("launch failed", "error", err)
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set PACREAD_DEBUG=true environment variable
//
// # Log Files
//
// The launcher usually runs without a console, started by the messaging
// client. OpenLogFile opens an append-only log file, and SetupLoggerWithWriter
// accepts any io.Writer, so callers can tee logs to stderr and a file:
//
//	f, err := logutil.OpenLogFile(path)
//	if err == nil {
//	    defer f.Close()
//	    logutil.SetupLoggerWithWriter(io.MultiWriter(os.Stderr, f), debug, false)
//	}
//
// # Component Loggers
//
// NewLogger returns a logger tagged with a component name. Context can be
// chained:
//
//	log := logutil.NewLogger("resolver").WithOperation("resolve")
//	log.WithFields("strategy", "user-choice").Debug("candidate", "template", tmpl)
package logutil
