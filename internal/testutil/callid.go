// Package testutil provides deterministic helpers for tests and scenario runs.
package testutil

import (
	"fmt"
	"sync"
)

// CallIDs generates deterministic call ids of the form "<prefix>-<n>".
//
// The store tags every call's log records with a call id. Production uses
// random UUIDs; scenario runs use CallIDs so log output and traces are
// byte-identical across runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type CallIDs struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewCallIDs creates a generator. The first call to Next returns "<prefix>-1".
// If prefix is empty, "call" is used.
func NewCallIDs(prefix string) *CallIDs {
	if prefix == "" {
		prefix = "call"
	}
	return &CallIDs{prefix: prefix}
}

// Next returns the next call id.
func (g *CallIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Count returns how many ids have been issued.
func (g *CallIDs) Count() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset restarts numbering. After Reset, Next returns "<prefix>-1".
func (g *CallIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
