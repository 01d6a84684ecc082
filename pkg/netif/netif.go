// Package netif resolves the address the listeners bind to.
package netif

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// AllInterfaces selects every interface.
const AllInterfaces = "ALL"

// Any is the wildcard IPv4 address.
const Any = "0.0.0.0"

// ErrNoIPv4 is returned when an interface has no IPv4 address.
var ErrNoIPv4 = errors.New("interface has no IPv4 address")

// Discovery maps an interface name and optional explicit address to the
// IPv4 address listeners bind to.
type Discovery interface {
	FindLocalIP(iface, ourIP string) (string, error)
}

// System looks interfaces up on the local host.
type System struct{}

// FindLocalIP returns ourIP when given, the wildcard address for "ALL" or an
// empty interface, and otherwise the first IPv4 address of iface.
func (System) FindLocalIP(iface, ourIP string) (string, error) {
	if ourIP != "" {
		if ip := net.ParseIP(ourIP); ip == nil || ip.To4() == nil {
			return "", fmt.Errorf("invalid IPv4 address: %s", ourIP)
		}
		return ourIP, nil
	}
	if iface == "" || strings.EqualFold(iface, AllInterfaces) {
		return Any, nil
	}

	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return "", fmt.Errorf("lookup interface %s: %w", iface, err)
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return "", fmt.Errorf("list addresses of %s: %w", iface, err)
	}
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", fmt.Errorf("%s: %w", iface, ErrNoIPv4)
}

// Static always returns the same address. Useful where the host's
// interfaces must not be consulted.
type Static string

// FindLocalIP implements Discovery.
func (s Static) FindLocalIP(_, ourIP string) (string, error) {
	if ourIP != "" {
		return ourIP, nil
	}
	return string(s), nil
}
