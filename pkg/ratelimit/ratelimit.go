package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key inside fixed windows.
type Store interface {
	// Hit records one request for key and returns the count in the current
	// window and when that window resets.
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type Rule struct {
	Requests int
	Window   time.Duration
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (d Decision) RetryAfter(now time.Time) int {
	seconds := int(d.ResetAt.Sub(now).Seconds())

	if seconds < 0 {
		return 0
	}

	return seconds
}

type Limiter struct {
	store Store
	rules map[string]Rule
}

// NewLimiter looks endpoint rules up by "METHOD /route" and falls back to the
// "default" rule.
func NewLimiter(store Store, rules map[string]Rule) *Limiter {
	copied := make(map[string]Rule, len(rules))

	for name, rule := range rules {
		copied[name] = rule
	}

	return &Limiter{store: store, rules: copied}
}

func (l *Limiter) Rule(endpoint string) (Rule, bool) {
	if rule, ok := l.rules[endpoint]; ok {
		return rule, true
	}

	rule, ok := l.rules["default"]
	return rule, ok
}

func (l *Limiter) Allow(ctx context.Context, endpoint string, identifier string) (Decision, error) {
	rule, ok := l.Rule(endpoint)

	if !ok || rule.Requests <= 0 {
		return Decision{Allowed: true}, nil
	}

	count, resetAt, err := l.store.Hit(ctx, "rate_limit:"+endpoint+":"+identifier, rule.Window)

	if err != nil {
		return Decision{}, err
	}

	remaining := rule.Requests - count

	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= rule.Requests,
		Limit:     rule.Requests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
