// Package filtering decides which clients and names the poisoners and
// servers answer.
package filtering

import (
	"log/slog"
	"strings"

	"github.com/A-mIn3/eaphammer/pkg/config"
	"github.com/A-mIn3/eaphammer/pkg/ignorelist"
)

// Policy applies the RespondTo/DontRespondTo filters and the auto-ignore
// list. It is safe for concurrent use.
type Policy struct {
	respondTo         map[string]struct{}
	dontRespondTo     map[string]struct{}
	respondToName     *NameSet
	dontRespondToName *NameSet
	autoIgnore        bool
	ignored           *ignorelist.List
	log               *slog.Logger
}

// NewPolicy builds a Policy from a resolved configuration.
func NewPolicy(cfg *config.Config, log *slog.Logger) *Policy {
	if log == nil {
		log = slog.Default()
	}
	ignored := cfg.AutoIgnoreList
	if ignored == nil {
		ignored = ignorelist.New()
	}
	return &Policy{
		respondTo:         addressSet(cfg.Filters.RespondTo),
		dontRespondTo:     addressSet(cfg.Filters.DontRespondTo),
		respondToName:     NewNameSet(cfg.Filters.RespondToName),
		dontRespondToName: NewNameSet(cfg.Filters.DontRespondToName),
		autoIgnore:        cfg.AutoIgnore,
		ignored:           ignored,
		log:               log,
	}
}

func addressSet(addrs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		set[addr] = struct{}{}
	}
	return set
}

// RespondToIP reports whether a request from client should be answered.
// Loopback clients and auto-ignored clients never are; with a non-empty
// RespondTo only listed clients are; DontRespondTo always wins.
func (p *Policy) RespondToIP(client string) bool {
	if strings.HasPrefix(client, "127.0.0.") {
		return false
	}
	if p.autoIgnore && p.ignored.Contains(client) {
		p.log.Info("received request from auto-ignored client, not answering", "client", client)
		return false
	}
	if len(p.respondTo) > 0 {
		if _, ok := p.respondTo[client]; !ok {
			return false
		}
	}
	_, blocked := p.dontRespondTo[client]
	return !blocked
}

// RespondToName reports whether a query for name should be answered.
func (p *Policy) RespondToName(name string) bool {
	if p.respondToName.Len() > 0 && !p.respondToName.Contains(name) {
		return false
	}
	return !p.dontRespondToName.Contains(name)
}

// ShouldRespond combines the client and name checks.
func (p *Policy) ShouldRespond(client, name string) bool {
	return p.RespondToIP(client) && p.RespondToName(name)
}

// Captured records that credentials were captured from client. With
// auto-ignore enabled the client is not answered any more.
func (p *Policy) Captured(client, user string) {
	if !p.autoIgnore {
		return
	}
	// Machine accounts are not worth ignoring the host for.
	if strings.HasSuffix(user, "$") {
		return
	}
	if p.ignored.Add(client) {
		p.log.Info("client added to auto-ignore list", "client", client)
	}
}
