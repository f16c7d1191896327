package urlutil

import (
	"fmt"
	"net/url"
)

// Validate parses raw and verifies it is an absolute http or https URL with a
// non-empty host. It returns the parsed URL by value.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
func Validate(raw string) (url.URL, error) {
	if raw == "" {
		return url.URL{}, fmt.Errorf("url cannot be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("invalid url format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return url.URL{}, fmt.Errorf("unsupported scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return url.URL{}, fmt.Errorf("url is missing a host: %q", raw)
	}

	return *parsed, nil
}

// Host extracts the hostname from a raw URL, or empty string if parsing fails.
func Host(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
