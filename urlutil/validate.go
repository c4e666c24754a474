package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

const (
	// MaxURLLength is the longest URL a browser command line reliably accepts.
	MaxURLLength = 2048
)

// Validate checks a URL that is about to be handed to a browser.
// It validates that the URL:
//   - Is not empty or only whitespace
//   - Uses the file, http or https scheme
//   - Has a host when it uses http or https, and a path when it uses file
//   - Does not exceed MaxURLLength (2048 characters)
//
// Example:
//
//	if err := urlutil.Validate("file:///C:/PacFORMS/form-ics213.html"); err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
func Validate(rawURL string) error {
	_, err := Parse(rawURL)
	return err
}

// Parse validates rawURL like Validate and returns it parsed.
func Parse(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if parsed.Host == "" {
			return nil, fmt.Errorf("url missing host/domain")
		}
	case "file":
		if parsed.Path == "" {
			return nil, fmt.Errorf("file url missing path")
		}
	case "":
		return nil, fmt.Errorf("url must use file://, http:// or https://")
	default:
		return nil, fmt.Errorf("url must use file://, http:// or https://, got: %s", parsed.Scheme)
	}
	return parsed, nil
}
