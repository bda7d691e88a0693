// Package netlocal finds the host's LAN address and the prefix length of the adapter carrying it.
package netlocal

import (
	"fmt"
	"net"
	"net/netip"

	"myfleet/helpers"
	"myfleet/service"
)

// DefaultRouteProbe is the UDP target used to select the outbound route. Connecting a UDP
// socket sends nothing; it only makes the kernel pick a source address.
const DefaultRouteProbe = "1.1.1.1:1"

// Locator implements interfaces.NetworkLocator.
type Locator struct {
	target    string
	dial      func(network, address string) (net.Conn, error)
	addresses func() ([]net.Addr, error)
}

// NewLocator creates a Locator that routes towards target (host:port) to learn the local address.
func NewLocator(target string) *Locator {
	return &Locator{
		target:    helpers.StrPanic(target, "netlocal.locator.go: target is required"),
		dial:      net.Dial,
		addresses: net.InterfaceAddrs,
	}
}

// Locate returns the private IPv4 source address the kernel picks for the default route and
// the prefix length of the adapter that owns it.
func (l *Locator) Locate() (netip.Addr, int, error) {
	local, err := l.sourceAddress()
	if err != nil {
		return netip.Addr{}, 0, err
	}
	if !local.IsPrivate() {
		return netip.Addr{}, 0, service.NewValidationError(fmt.Sprintf("local address %s is not in a private range", local), nil)
	}

	bits, err := l.prefixLength(local)
	if err != nil {
		return netip.Addr{}, 0, err
	}
	return local, bits, nil
}

func (l *Locator) sourceAddress() (netip.Addr, error) {
	conn, err := l.dial("udp4", l.target)
	if err != nil {
		return netip.Addr{}, service.NewNoRouteError("no outbound route", err)
	}
	defer conn.Close()

	udp, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return netip.Addr{}, service.NewNoRouteError(fmt.Sprintf("unexpected local address %v", conn.LocalAddr()), nil)
	}
	addr, ok := netip.AddrFromSlice(udp.IP)
	if !ok || !addr.Unmap().Is4() {
		return netip.Addr{}, service.NewNoRouteError(fmt.Sprintf("local address %v is not IPv4", udp.IP), nil)
	}
	return addr.Unmap(), nil
}

func (l *Locator) prefixLength(local netip.Addr) (int, error) {
	addrs, err := l.addresses()
	if err != nil {
		return 0, service.NewNoRouteError("cannot list network adapters", err)
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip, ok := netip.AddrFromSlice(ipNet.IP)
		if !ok || ip.Unmap() != local {
			continue
		}
		ones, bits := ipNet.Mask.Size()
		// IPv4 addresses may carry a 16-byte mask.
		if bits == 128 {
			ones -= 96
		}
		return ones, nil
	}
	return 0, service.NewNoRouteError(fmt.Sprintf("there were no adapters found that matched %s", local), nil)
}
