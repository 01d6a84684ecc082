package logsink

import (
	"log/slog"
	"strconv"

	"github.com/miekg/dns"
)

// Poisoned records an answer sent to client for name.
func Poisoned(log *slog.Logger, protocol, client, name string, qtype uint16) {
	if log == nil {
		return
	}
	log.Info("poisoned answer sent",
		"protocol", protocol,
		"client", client,
		"type", recordType(qtype),
		"name", name,
	)
}

// Observed records a request seen in analyze mode without answering it.
func Observed(log *slog.Logger, protocol, client, name string, qtype uint16) {
	if log == nil {
		return
	}
	log.Info("request observed",
		"protocol", protocol,
		"client", client,
		"type", recordType(qtype),
		"name", name,
	)
}

func recordType(qtype uint16) string {
	if t := dns.TypeToString[qtype]; t != "" {
		return t
	}
	return strconv.Itoa(int(qtype))
}
