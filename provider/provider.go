// Package provider validates that target URLs belong to the expected
// content platform. Checks are purely syntactic; no network I/O.
package provider

import (
	"net/url"
	"strings"
)

// hostMatches reports whether host equals domain or is a subdomain of it.
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// normalizeHost lowercases the URL host and strips a single leading "www.".
// Returns "" when the URL cannot be parsed or has no host.
func normalizeHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// IsYouTubeURL reports whether raw points at a YouTube domain.
func IsYouTubeURL(raw string) bool {
	host := normalizeHost(raw)
	if host == "" {
		return false
	}
	return hostMatches(host, "youtube.com") || host == "youtu.be"
}

// IsTwitchURL reports whether raw points at a Twitch domain.
func IsTwitchURL(raw string) bool {
	host := normalizeHost(raw)
	if host == "" {
		return false
	}
	return hostMatches(host, "twitch.tv")
}
