package common

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	previewMaxLen = 24
	previewHead   = 12
	previewTail   = 8
)

// TokenPreview shortens a token for display: tokens longer than 24 runes are
// shown as the first 12 and last 8 runes joined by "...". An empty token is
// shown as "-".
func TokenPreview(token string) string {
	if token == "" {
		return "-"
	}
	if utf8.RuneCountInString(token) <= previewMaxLen {
		return token
	}
	r := []rune(token)
	return string(r[:previewHead]) + "..." + string(r[len(r)-previewTail:])
}

// OriginOf returns the scheme://host[:port] part of rawURL, lower-cased.
// Stored values are scoped by origin, so two base URLs that differ only in
// path share the same session.
func OriginOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("url %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q: missing host", rawURL)
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), nil
}
