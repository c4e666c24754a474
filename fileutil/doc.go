// Package fileutil provides the file system operations used to stage message
// files for the viewer.
//
// # Staging
//
// StageMessage copies a message file into the messages directory under its
// message number, where the HTML forms expect to find it:
//
//	staged, err := fileutil.StageMessage(`C:\PacFORMS\in\6DM-101P_O_ICS213.txt`, `C:\PacFORMS\msgs`, "6DM-101P")
//	if err != nil {
//	    log.Warn("failed to stage message", "error", err)
//	}
//
// # Atomic Write Operations
//
// CopyFile and AtomicWriteFile never leave a partial file behind. Data goes to
// a uniquely named temporary file in the target directory, is synced, and is
// then renamed into place. The rename is retried a few times with a short
// backoff because the viewer may still hold the previous copy open.
//
// # File Permissions
//
//   - DirPermission (0750): rwxr-x---
//   - FilePermission (0644): rw-r--r--
package fileutil
