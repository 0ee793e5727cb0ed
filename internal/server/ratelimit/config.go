package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/talentsphere/internal/config"
)

// Rule limits one endpoint. A Path ending in "/" matches by prefix.
type Rule struct {
	Path      string
	Method    string
	PerMinute int // 0 means unlimited
	Burst     int // defaults to PerMinute
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Rule
	Rules           []Rule
	Whitelist       map[string]bool
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
}

// NewConfig builds the server's limits from the environment derived budget.
func NewConfig(rl *config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         true,
		Default:         Rule{PerMinute: rl.RequestsPerMinute, Burst: rl.Burst},
		Rules:           DefaultRules(),
		Whitelist:       map[string]bool{},
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
	}
}

// DefaultRules returns the endpoint specific limits.
func DefaultRules() []Rule {
	return []Rule{
		// batch ranking parses every uploaded file
		{Path: "/rank", Method: "POST", PerMinute: 6, Burst: 2},
		{Path: "/analyze", Method: "POST", PerMinute: 30, Burst: 5},
		{Path: "/auth/", Method: "POST", PerMinute: 20, Burst: 5},
	}
}

// MatchRule returns the rule for a request, or nil when the default applies.
// GET /health is never limited.
func MatchRule(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{}
	}

	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}

	return nil
}
