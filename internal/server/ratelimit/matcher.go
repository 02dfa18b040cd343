package ratelimit

import (
	"fmt"
	"strings"
)

// route is a parsed rule pattern
type route struct {
	method   string
	segments []string
}

// parseRoute accepts "METHOD /a/{b}". A segment in braces matches any
// single non-empty path segment.
func parseRoute(pattern string) (route, error) {
	method, path, ok := strings.Cut(strings.TrimSpace(pattern), " ")
	if !ok || method == "" || !strings.HasPrefix(path, "/") {
		return route{}, fmt.Errorf("rate limit pattern %q must look like \"POST /api/chat\"", pattern)
	}
	return route{method: method, segments: splitPath(path)}, nil
}

func (r route) matches(method, path string) bool {
	if r.method != method {
		return false
	}
	segments := splitPath(path)
	if len(segments) != len(r.segments) {
		return false
	}
	for i, want := range r.segments {
		if isWildcard(want) {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if segments[i] != want {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func isWildcard(segment string) bool {
	return len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

// compiledRule pairs a rule with its parsed pattern
type compiledRule struct {
	Rule
	route route
}

func compile(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		r, err := parseRoute(rule.Pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, compiledRule{Rule: rule, route: r})
	}
	return out, nil
}

// Match returns the first rule whose pattern matches the request, or nil
func Match(rules []Rule, method, path string) *Rule {
	for i := range rules {
		r, err := parseRoute(rules[i].Pattern)
		if err == nil && r.matches(method, path) {
			return &rules[i]
		}
	}
	return nil
}
