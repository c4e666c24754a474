// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// FindProgram locates the program of a command line. A program given with a
// directory must exist there; a bare name is searched for in PATH.
// It returns the resolved path and whether the program was found.
func FindProgram(program string) (string, bool) {
	if program == "" {
		return "", false
	}
	if !hasDir(program) {
		path := FindToolInPath(program)
		return path, path != ""
	}
	info, err := os.Stat(program)
	if err != nil || info.IsDir() {
		return program, false
	}
	return program, true
}

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	// Add .exe extension on Windows if not present
	searchName := toolName
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		searchName = toolName + ".exe"
	}

	path, err := exec.LookPath(searchName)
	if err != nil {
		return ""
	}
	return path
}

// hasDir reports whether program names a directory. Both separators count
// because registry commands always use backslashes.
func hasDir(program string) bool {
	return strings.ContainsAny(program, `/\`)
}
