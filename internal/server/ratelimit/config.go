package ratelimit

import (
	"strings"
	"time"
)

// DefaultCleanupInterval is how often idle client limiters are swept
const DefaultCleanupInterval = 5 * time.Minute

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds a configuration from a per-minute default and burst.
// A requestsPerMinute of 0 disables limiting. Whitelisted client IPs are never limited.
func NewConfig(requestsPerMinute, burst int, whitelist []string) *Config {
	if requestsPerMinute <= 0 {
		return &Config{Enabled: false}
	}
	if burst <= 0 {
		burst = requestsPerMinute
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    requestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: DefaultCleanupInterval,
		Whitelist:       whitelistSet(whitelist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// The paid path calls the generator; keep it strict
		{Path: "/tailor", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/tailor/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		// Job URLs make outbound fetches
		{Path: "/score/batch", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
	}
}

func whitelistSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
