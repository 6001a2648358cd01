package browser

import (
	"net/url"
	"strings"
)

// validSchemes are the URL schemes navigation accepts.
var validSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ftps":  true,
}

// IsValidURL reports whether a string is a navigable URL: a supported scheme
// and a non-empty host that is either dotted or "localhost". The check runs
// before any browser interaction so malformed input never reaches the page.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if !validSchemes[strings.ToLower(parsed.Scheme)] {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	return strings.Contains(host, ".") || parsed.Hostname() == "localhost"
}
