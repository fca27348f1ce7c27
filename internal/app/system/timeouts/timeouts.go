// Package timeouts provides centralized timeout values for handler and
// storage operations. The values are used with context.WithTimeout so
// the budgets stay consistent across the application and can be tuned
// in one place.
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
)

// Configure overrides the defaults. Zero values leave the current
// setting unchanged.
func Configure(pingT, shortT, mediumT time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingT > 0 {
		ping = pingT
	}
	if shortT > 0 {
		short = shortT
	}
	if mediumT > 0 {
		medium = mediumT
	}
}

// Ping returns the timeout for health checks and connectivity
// verification.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and writes, such
// as one blob upsert.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for multi-step operations, such as
// hydrating all catalogs at startup.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}
