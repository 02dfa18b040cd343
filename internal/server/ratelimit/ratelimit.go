// Package ratelimit provides per-client token bucket limits for the local API.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. Its fields are guarded by Limiter.mu.
type bucket struct {
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	refilled time.Time
	used     time.Time
}

func newBucket(rule Rule, now time.Time) *bucket {
	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	return &bucket{
		capacity: float64(capacity),
		rate:     float64(rule.Limit) / rule.Window.Seconds(),
		tokens:   float64(capacity),
		refilled: now,
		used:     now,
	}
}

// take refills for the elapsed time and then consumes one token if available
func (b *bucket) take(now time.Time) (allowed bool, remaining int, full time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilled).Seconds()*b.rate)
	b.refilled = now
	b.used = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	full = now
	if missing := b.capacity - b.tokens; missing > 0 {
		full = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), full
}

// untilNext is how long a client must wait for the next token
func (b *bucket) untilNext() time.Duration {
	if b.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Info describes the outcome of one Allow call
type Info struct {
	Allowed    bool
	Rule       string // matched pattern, "" for the default rule
	Limit      int    // 0 when the route is unlimited
	Remaining  int
	ResetTime  time.Time // when the bucket is full again
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client and rule
type Limiter struct {
	mu       sync.Mutex
	cfg      Config
	rules    []compiledRule
	buckets  map[string]*bucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter validates cfg and starts the idle bucket sweeper. A nil cfg uses DefaultConfig.
func NewLimiter(cfg *Config) (*Limiter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rules, err := compile(cfg.Rules)
	if err != nil {
		return nil, err
	}

	l := &Limiter{
		cfg:     *cfg,
		rules:   rules,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if l.cfg.IdleTTL <= 0 {
		l.cfg.IdleTTL = time.Hour
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.sweepEvery(cfg.CleanupInterval)
	}
	return l, nil
}

// Allow reports whether clientID may make the request now. Requests to
// routes of the same rule share a bucket, so PUT /api/resume/skills and
// PUT /api/resume/education draw from the same tokens.
func (l *Limiter) Allow(clientID, method, path string) Info {
	if !l.cfg.Enabled || l.cfg.Exempt[clientID] {
		return Info{Allowed: true}
	}

	rule := l.cfg.Default
	rule.Pattern = ""
	for _, r := range l.rules {
		if r.route.matches(method, path) {
			rule = r.Rule
			break
		}
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Info{Allowed: true, Rule: rule.Pattern}
	}

	key := clientID + " " + rule.Pattern
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule, now)
		l.buckets[key] = b
	}
	allowed, remaining, full := b.take(now)

	info := Info{
		Allowed:   allowed,
		Rule:      rule.Pattern,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !allowed {
		info.RetryAfter = b.untilNext()
	}
	return info
}

func (l *Limiter) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than IdleTTL
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-l.cfg.IdleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.used.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
