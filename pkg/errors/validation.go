package errors

import (
	"net/url"
	"strings"
)

// ValidateServerURL validates the base URL of the calculation server.
// It ensures the URL parses, uses http or https, and names a host.
func ValidateServerURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "server URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "server URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid server URL: %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "server URL has no host: %q", rawURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidInput, "server URL cannot carry a query or fragment")
	}

	return nil
}
