package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited
var unlimitedPaths = map[string]bool{
	"/health": true,
}

// MatchEndpoint finds the configuration for a request. Exact path matches win
// over prefix matches; a config path ending in "/" matches everything below it.
// ok is false when no endpoint-specific configuration applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) (cfg EndpointConfig, ok bool) {
	if unlimitedPaths[path] && (method == "GET" || method == "HEAD") {
		return EndpointConfig{Path: path, Method: method}, true
	}

	for _, c := range configs {
		if c.Path == path && c.Method == method {
			return c, true
		}
	}

	for _, c := range configs {
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c, true
		}
	}

	return EndpointConfig{}, false
}
