// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File permissions
const (
	// DirPermission is the default permission for creating directories (rwxr-x---)
	DirPermission = 0750
	// FilePermission is the default permission for creating files (rw-r--r--)
	FilePermission = 0644
)

// renameAttempts bounds the retries for a contended rename.
const renameAttempts = 5

// ErrInvalidMessageNumber is returned by StageMessage for a message number
// that cannot be used as a file name.
var ErrInvalidMessageNumber = errors.New("invalid message number")

// AtomicWriteFile writes raw bytes to a file atomically.
// It writes to a temporary file first, then renames it to the target path.
// This ensures the file is never left in a partial/corrupt state.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	// Create a unique temp file in the same directory to avoid concurrent
	// writers using the same temp filename and causing rename failures.
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	// Ensure file is closed on all paths
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// renameWithRetry renames with a short linear backoff. The message viewer may
// still hold the previous staged copy open on Windows.
func renameWithRetry(from, to string) error {
	var err error
	for attempt := 0; attempt < renameAttempts; attempt++ {
		if err = os.Rename(from, to); err == nil {
			return nil
		}
		if attempt < renameAttempts-1 {
			time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond) // 20ms, 40ms, 60ms, 80ms
		}
	}
	return err
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// FileExists checks if a file exists in a directory.
func FileExists(dir string, filename string) bool {
	_, err := os.Stat(filepath.Join(dir, filename))
	return err == nil
}

// CopyFile copies src to dst atomically, replacing dst if it exists.
func CopyFile(src, dst string) error {
	// #nosec G304 -- src is the message file handed to us by the caller
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := AtomicWriteFile(dst, data, FilePermission); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// StageMessage copies the message file src into dir under the name msgno,
// creating dir if needed, and returns the staged path.
func StageMessage(src, dir, msgno string) (string, error) {
	if msgno == "" || msgno == "." || msgno == ".." || filepath.Base(msgno) != msgno {
		return "", fmt.Errorf("%w: %q", ErrInvalidMessageNumber, msgno)
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, msgno)
	if err := CopyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}
