package filtering

import (
	"io"
	"log/slog"
	"testing"

	"github.com/A-mIn3/eaphammer/pkg/config"
	"github.com/A-mIn3/eaphammer/pkg/ignorelist"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPolicy(filters config.AddressFilterSet, autoIgnore bool) (*Policy, *config.Config) {
	cfg := &config.Config{
		Filters:        filters,
		AutoIgnore:     autoIgnore,
		AutoIgnoreList: ignorelist.New(),
	}
	return NewPolicy(cfg, discardLogger()), cfg
}

func TestRespondToIP(t *testing.T) {
	tests := []struct {
		name    string
		filters config.AddressFilterSet
		client  string
		want    bool
	}{
		{"no filters", config.AddressFilterSet{}, "10.0.0.5", true},
		{"loopback", config.AddressFilterSet{}, "127.0.0.1", false},
		{"in respond to", config.AddressFilterSet{RespondTo: []string{"10.0.0.5"}}, "10.0.0.5", true},
		{"not in respond to", config.AddressFilterSet{RespondTo: []string{"10.0.0.5"}}, "10.0.0.6", false},
		{"in dont respond to", config.AddressFilterSet{DontRespondTo: []string{"10.0.0.5"}}, "10.0.0.5", false},
		{"in both", config.AddressFilterSet{RespondTo: []string{"10.0.0.5"}, DontRespondTo: []string{"10.0.0.5"}}, "10.0.0.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPolicy(tt.filters, false)
			if got := p.RespondToIP(tt.client); got != tt.want {
				t.Errorf("RespondToIP(%s) = %v, want %v", tt.client, got, tt.want)
			}
		})
	}
}

func TestRespondToName(t *testing.T) {
	tests := []struct {
		name    string
		filters config.AddressFilterSet
		query   string
		want    bool
	}{
		{"no filters", config.AddressFilterSet{}, "wpad", true},
		{"listed, other case", config.AddressFilterSet{RespondToName: []string{"WPAD"}}, "wpad", true},
		{"listed, fqdn form", config.AddressFilterSet{RespondToName: []string{"WPAD"}}, "wpad.", true},
		{"not listed", config.AddressFilterSet{RespondToName: []string{"WPAD"}}, "fileserver", false},
		{"excluded", config.AddressFilterSet{DontRespondToName: []string{"ISATAP"}}, "isatap", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPolicy(tt.filters, false)
			if got := p.RespondToName(tt.query); got != tt.want {
				t.Errorf("RespondToName(%s) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCapturedAutoIgnore(t *testing.T) {
	p, cfg := newTestPolicy(config.AddressFilterSet{}, true)
	if !p.ShouldRespond("10.0.0.5", "wpad") {
		t.Fatal("should respond before capture")
	}

	p.Captured("10.0.0.5", "WORKSTATION$")
	if !p.RespondToIP("10.0.0.5") {
		t.Error("machine account capture should not ignore the client")
	}

	p.Captured("10.0.0.5", "alice")
	if p.RespondToIP("10.0.0.5") {
		t.Error("client should be ignored after capture")
	}
	if cfg.AutoIgnoreList.Len() != 1 {
		t.Errorf("AutoIgnoreList has %d entries, want 1", cfg.AutoIgnoreList.Len())
	}
}

func TestCapturedWithoutAutoIgnore(t *testing.T) {
	p, cfg := newTestPolicy(config.AddressFilterSet{}, false)
	p.Captured("10.0.0.5", "alice")
	if cfg.AutoIgnoreList.Len() != 0 || !p.RespondToIP("10.0.0.5") {
		t.Error("capture must not ignore clients when auto-ignore is off")
	}
}
