// Package ratelimit provides rolling-window request limiters keyed by caller.
//
// Stores satisfy Echo's middleware.RateLimiterStore, so they plug straight
// into middleware.RateLimiterWithConfig.
package ratelimit

import "time"

// Store decides whether the caller identified by identifier may proceed.
type Store interface {
	Allow(identifier string) (bool, error)
}

// Config is the limit applied to every identifier.
type Config struct {
	// Requests is the number of requests allowed per Window.
	Requests int

	// Window is the rolling period the requests are counted over.
	Window time.Duration
}

// AllowAll never rejects. It is used when rate limiting is disabled.
type AllowAll struct{}

// Allow always returns true.
func (AllowAll) Allow(string) (bool, error) {
	return true, nil
}
