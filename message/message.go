// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package message reads the metadata the launcher needs from a message data
// file: its message number and the form used to display it.
//
// Message files are named "<msgno>_<rest>", for example
// "6DM-101P_O_ICS213_Test.txt". The form is named by a marker line:
//
//	# FORMFILENAME: ICS213_Message_Form.html
package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FormMarker starts the line naming the form.
const FormMarker = "# FORMFILENAME: "

// maxLineSize bounds a single line of a message file.
const maxLineSize = 1 << 20

// ErrNoForm is returned by ReadFormFilename when the file has no form marker.
var ErrNoForm = errors.New("message has no " + strings.TrimSpace(FormMarker) + " line")

// Number returns the message number encoded in a message file path: the base
// name up to the first underscore, or the whole base name when there is none.
// Both slash and backslash separate directories.
func Number(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	number, _, _ := strings.Cut(base, "_")
	return number
}

// FormFilename scans r for the first form marker line and returns the text
// after its first colon, trimmed. It reports false when no line matches.
func FormFilename(r io.Reader) (string, bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, FormMarker) {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		return strings.TrimSpace(value), true, nil
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("failed to scan message: %w", err)
	}
	return "", false, nil
}

// ReadFormFilename opens path and returns its form file name. A file without
// a marker yields ErrNoForm.
func ReadFormFilename(path string) (string, error) {
	// #nosec G304 -- path is the message file passed on the command line
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open message: %w", err)
	}
	defer func() { _ = f.Close() }()

	form, ok, err := FormFilename(f)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoForm
	}
	return form, nil
}
