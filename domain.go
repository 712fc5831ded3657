package shopsync

import (
	"regexp"
	"strings"
)

// Labels of alphanumerics/hyphens separated by dots, ending in a letters-only
// label of at least two characters.
var domainPattern = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// NormalizeDomain reduces a domain-like input to its bare lower-case
// hostname: protocol, leading slashes, path/query, port and a www. prefix are
// stripped. Returns ErrInvalidDomain when the remainder is not a hostname.
func NormalizeDomain(input string) (string, error) {
	host := strings.ToLower(strings.TrimSpace(input))
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimLeft(host, "/")
	if i := strings.IndexAny(host, "/?"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")

	if !IsValidDomain(host) {
		return "", &ErrInvalidDomain{Input: input}
	}
	return host, nil
}

// FormatStoreName derives a display name from a hostname:
// "cool-gear-store.com" becomes "Cool Gear Store".
func FormatStoreName(host string) string {
	label, _, _ := strings.Cut(host, ".")
	parts := strings.Split(label, "-")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// CreateStoreHandle derives a machine handle from a hostname: the label
// before the first dot, lower-cased.
func CreateStoreHandle(host string) string {
	label, _, _ := strings.Cut(host, ".")
	return strings.ToLower(label)
}
