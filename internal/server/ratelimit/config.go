package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig limits one method and path. Paths ending in "/" match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Requests per window; 0 means unlimited
	Window time.Duration
	Burst  int // Bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int // 0 leaves unmatched endpoints unlimited
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // Buckets unused this long are dropped
	AllowList       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig limits the model-backed endpoints to limit requests per window per client
// and leaves the local editor endpoints unlimited.
func NewConfig(limit int, window time.Duration, burst int, allowList []string) *Config {
	allowed := make(map[string]bool, len(allowList))
	for _, ip := range allowList {
		allowed[ip] = true
	}
	return &Config{
		Enabled:         true,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		AllowList:       allowed,
		EndpointConfigs: []EndpointConfig{
			{Path: "/normalize-title", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
			{Path: "/scan/batch", Method: http.MethodPost, Limit: limit * 10, Window: window, Burst: burst * 2},
		},
	}
}
