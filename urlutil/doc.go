// Package urlutil validates URLs before they are passed to a browser.
//
// The viewer is opened with file:// URLs built by the launcher, but the
// browser diagnostics accept any URL on the command line. Validate rejects
// anything a browser command template should not receive:
//
//	if err := urlutil.Validate(rawURL); err != nil {
//		return fmt.Errorf("invalid --url: %w", err)
//	}
//
// # Validation Rules
//
//   - URL must not be empty or only whitespace
//   - URL must use file://, http:// or https:// (rejects javascript:, data:, etc.)
//   - http and https URLs must have a host; file URLs must have a path
//   - URL must not exceed 2048 characters
package urlutil
