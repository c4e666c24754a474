// Package testutil provides helpers shared by the pac-read tests.
//
// This package includes helpers for:
//   - Capturing cliout output during test execution (CaptureOutput)
//   - Writing message files with or without a form marker (WriteMessage)
//   - Writing a pac-read.yaml into a directory (WriteConfig)
//
// All functions use t.Helper() for proper test line reporting.
package testutil
