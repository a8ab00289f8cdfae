package app

import (
	"net/url"
	"strings"
)

// originMatcher returns an allow-origin predicate over wildcard host
// patterns: exact hosts, "*.example.com" suffix patterns and "host:*" port
// wildcards.
func originMatcher(patterns []string) func(origin string) bool {
	return func(origin string) bool {
		host := origin
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			host = u.Host
		}
		for _, pattern := range patterns {
			if matchOriginPattern(pattern, host) {
				return true
			}
		}
		return false
	}
}

func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
