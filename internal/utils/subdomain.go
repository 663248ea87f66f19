package utils

import (
	"errors"
	"net"
	"regexp"
	"strings"
)

var subdomainDisallowed = regexp.MustCompile(`[^a-z0-9-]`)

// SanitizeSubdomain lowercases the input and drops every character outside
// [a-z0-9-].
func SanitizeSubdomain(input string) string {
	return subdomainDisallowed.ReplaceAllString(strings.ToLower(input), "")
}

// ExtractSubdomain returns the leading label of host when host is a direct
// child of rootDomain, e.g. "acme.example.com" under "example.com" -> "acme".
// Ports are ignored on both sides.
func ExtractSubdomain(host, rootDomain string) (string, error) {
	if host == "" {
		return "", errors.New("host cannot be empty")
	}

	host = strings.ToLower(stripPort(strings.TrimSpace(host)))
	root := strings.ToLower(stripPort(strings.TrimSpace(rootDomain)))

	if root == "" || host == root || host == "www."+root {
		return "", errors.New("host is the root domain")
	}

	if !strings.HasSuffix(host, "."+root) {
		return "", errors.New("host is not under the root domain")
	}

	label := strings.TrimSuffix(host, "."+root)

	if label == "" || strings.Contains(label, ".") {
		return "", errors.New("host is not a direct subdomain")
	}

	return label, nil
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
