package ratelimit

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits the requests one client may make to a route
type Rule struct {
	Pattern string        // ServeMux-style "METHOD /path/{wildcard}"
	Limit   int           // requests per Window; 0 means unlimited
	Window  time.Duration // refill period of Limit tokens
	Burst   int           // bucket capacity, Limit when 0
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	Default         Rule            // applies to routes no rule matches; Pattern is ignored
	Rules           []Rule          // first match wins
	Exempt          map[string]bool // client ids that are never limited
	IdleTTL         time.Duration   // buckets unused this long are dropped
	CleanupInterval time.Duration
}

// ruleEnv maps the environment overrides to the rules they replace
var ruleEnv = map[string]string{
	"RATE_LIMIT_CHAT":       "POST /api/chat",
	"RATE_LIMIT_TRANSCRIBE": "POST /api/transcribe",
	"RATE_LIMIT_EXPORT":     "POST /api/resume/export",
	"RATE_LIMIT_UPDATE":     "PUT /api/resume/{section}",
}

// DefaultRules returns the limits of the local API. Model and browser calls
// are the most expensive, so they get the tightest buckets.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "GET /health"},
		{Pattern: "GET /api/resume/events"},

		{Pattern: "POST /api/resume/export", Limit: 10, Window: time.Minute, Burst: 2},
		{Pattern: "POST /api/chat", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "POST /api/transcribe", Limit: 30, Window: time.Minute, Burst: 5},

		{Pattern: "PUT /api/resume/{section}", Limit: 100, Window: time.Minute, Burst: 10},
		{Pattern: "DELETE /api/resume", Limit: 10, Window: time.Minute, Burst: 2},
	}
}

// DefaultConfig returns the built-in limits without consulting the environment
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Rule{Limit: 600, Window: time.Minute},
		Rules:           DefaultRules(),
		Exempt:          map[string]bool{},
		IdleTTL:         time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// LoadConfig starts from DefaultConfig and applies the RATE_LIMIT_*
// environment variables. Rates are written as "<requests>/<window>", for
// example "30/1m". Malformed values are logged and ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if !cfg.Enabled {
		return cfg
	}

	if rate, ok := envRate("RATE_LIMIT_DEFAULT"); ok {
		cfg.Default.Limit, cfg.Default.Window = rate.Limit, rate.Window
	}
	for key, pattern := range ruleEnv {
		rate, ok := envRate(key)
		if !ok {
			continue
		}
		for i := range cfg.Rules {
			if cfg.Rules[i].Pattern == pattern {
				cfg.Rules[i].Limit, cfg.Rules[i].Window = rate.Limit, rate.Window
				cfg.Rules[i].Burst = min(cfg.Rules[i].Burst, rate.Limit)
			}
		}
	}
	if v := os.Getenv("RATE_LIMIT_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CleanupInterval = d
		}
	}
	for _, id := range strings.Split(os.Getenv("RATE_LIMIT_EXEMPT"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Exempt[id] = true
		}
	}
	return cfg
}

// ParseRate parses "<requests>/<window>" such as "30/1m" or "5/10s"
func ParseRate(s string) (Rule, error) {
	count, window, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Rule{}, fmt.Errorf("rate %q must look like 30/1m", s)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || limit < 0 {
		return Rule{}, fmt.Errorf("rate %q has an invalid request count", s)
	}
	d, err := time.ParseDuration(strings.TrimSpace(window))
	if err != nil || d <= 0 {
		return Rule{}, fmt.Errorf("rate %q has an invalid window", s)
	}
	return Rule{Limit: limit, Window: d}, nil
}

func envRate(key string) (Rule, bool) {
	v := os.Getenv(key)
	if v == "" {
		return Rule{}, false
	}
	rate, err := ParseRate(v)
	if err != nil {
		log.Printf("[rate-limit] Ignoring %s: %v", key, err)
		return Rule{}, false
	}
	return rate, true
}
