package netif

import (
	"net"
	"testing"
)

func TestSystemFindLocalIP(t *testing.T) {
	tests := []struct {
		iface string
		ourIP string
		want  string
	}{
		{"", "", Any},
		{"ALL", "", Any},
		{"all", "", Any},
		{"eth0", "192.168.5.5", "192.168.5.5"},
	}
	for _, tt := range tests {
		got, err := System{}.FindLocalIP(tt.iface, tt.ourIP)
		if err != nil {
			t.Fatalf("FindLocalIP(%q, %q) returned error: %v", tt.iface, tt.ourIP, err)
		}
		if got != tt.want {
			t.Errorf("FindLocalIP(%q, %q) = %s, want %s", tt.iface, tt.ourIP, got, tt.want)
		}
	}
}

func TestSystemFindLocalIPErrors(t *testing.T) {
	if _, err := (System{}).FindLocalIP("", "not-an-ip"); err == nil {
		t.Error("invalid explicit address should fail")
	}
	if _, err := (System{}).FindLocalIP("", "::1"); err == nil {
		t.Error("IPv6 explicit address should fail")
	}
	if _, err := (System{}).FindLocalIP("does-not-exist0", ""); err == nil {
		t.Error("unknown interface should fail")
	}
}

func TestSystemFindLoopback(t *testing.T) {
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Skipf("cannot list interfaces: %v", err)
	}
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagLoopback == 0 {
			continue
		}
		got, err := System{}.FindLocalIP(ifi.Name, "")
		if err != nil {
			t.Skipf("loopback %s has no IPv4: %v", ifi.Name, err)
		}
		if ip := net.ParseIP(got); ip == nil || !ip.IsLoopback() {
			t.Errorf("FindLocalIP(%s) = %s, want a loopback address", ifi.Name, got)
		}
		return
	}
	t.Skip("no loopback interface")
}

func TestStatic(t *testing.T) {
	d := Static("10.1.1.1")
	if got, _ := d.FindLocalIP("eth0", ""); got != "10.1.1.1" {
		t.Errorf("got %s", got)
	}
	if got, _ := d.FindLocalIP("eth0", "10.2.2.2"); got != "10.2.2.2" {
		t.Errorf("explicit address should win, got %s", got)
	}
}
