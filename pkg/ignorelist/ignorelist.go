// Package ignorelist holds the clients that are no longer answered once
// their credentials have been captured.
package ignorelist

import (
	"slices"
	"sync"
)

// List is an append-only, concurrency-safe list of client addresses.
// The zero value is ready to use.
type List struct {
	mu      sync.RWMutex
	entries []string
}

// New returns an empty List.
func New() *List {
	return &List{}
}

// Add appends addr. Entries already present are not added twice. Adding
// to a nil List is a no-op.
func (l *List) Add(addr string) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.entries, addr) {
		return false
	}
	l.entries = append(l.entries, addr)
	return true
}

// Contains reports whether addr has been added.
func (l *List) Contains(addr string) bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.entries, addr)
}

// Snapshot returns a copy of the entries in insertion order, safe to
// iterate while other goroutines keep appending.
func (l *List) Snapshot() []string {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
