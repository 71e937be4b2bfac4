package ratelimit

import (
	"strings"
)

// exemptEndpoints are never limited so that probes and scrapers keep working.
var exemptEndpoints = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/model/" matches "/model/features").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if exemptEndpoints[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method, Limit: 0}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
