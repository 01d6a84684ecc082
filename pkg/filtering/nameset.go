package filtering

import (
	"strings"

	"github.com/miekg/dns"
)

// NameSet stores host names for exact, case-insensitive matching.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet builds a set from names, normalising each entry.
func NewNameSet(names []string) *NameSet {
	s := &NameSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name into the set.
func (s *NameSet) Add(name string) {
	normalised := normalizeName(name)
	if normalised == "" {
		return
	}
	s.names[normalised] = struct{}{}
}

// Contains reports whether name is in the set.
func (s *NameSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[normalizeName(name)]
	return ok
}

// Len returns the number of names.
func (s *NameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// normalizeName upper-cases name and strips the trailing root label
// LLMNR and mDNS queries carry.
func normalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if dns.IsFqdn(trimmed) {
		trimmed = strings.TrimSuffix(trimmed, ".")
	}
	return strings.ToUpper(trimmed)
}
