package domain

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"slices"
)

// Subnet is an IPv4 network given by an address and a prefix length. The stored prefix is
// always masked, so 10.0.0.7/29 and 10.0.0.0/29 are the same Subnet.
type Subnet struct {
	prefix netip.Prefix
}

// NewSubnet builds the subnet of addr with the given prefix length (0-32).
func NewSubnet(addr netip.Addr, bits int) (Subnet, error) {
	if !addr.Is4() {
		return Subnet{}, fmt.Errorf("address %s is not IPv4", addr)
	}
	if bits < 0 || bits > 32 {
		return Subnet{}, fmt.Errorf("prefix length %d out of range 0-32", bits)
	}
	return Subnet{prefix: netip.PrefixFrom(addr, bits).Masked()}, nil
}

// ParseSubnet parses CIDR notation such as "10.0.0.0/29". Host bits are allowed and masked off.
func ParseSubnet(cidr string) (Subnet, error) {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return Subnet{}, fmt.Errorf("parse subnet %q: %w", cidr, err)
	}
	return NewSubnet(p.Addr(), p.Bits())
}

// MustParseSubnet is ParseSubnet that panics on error. For tests and constants.
func MustParseSubnet(cidr string) Subnet {
	s, err := ParseSubnet(cidr)
	if err != nil {
		panic(err)
	}
	return s
}

// Prefix returns the masked network prefix.
func (s Subnet) Prefix() netip.Prefix { return s.prefix }

// Bits returns the prefix length.
func (s Subnet) Bits() int { return s.prefix.Bits() }

// Contains reports whether addr belongs to the subnet.
func (s Subnet) Contains(addr netip.Addr) bool { return s.prefix.Contains(addr) }

func (s Subnet) String() string { return s.prefix.String() }

// HostCount returns how many addresses Hosts yields: 2^(32-bits)-2 for prefixes up to /30,
// 2 for /31 (point-to-point, both ends usable) and 1 for /32.
func (s Subnet) HostCount() uint64 {
	switch bits := s.prefix.Bits(); {
	case bits == 32:
		return 1
	case bits == 31:
		return 2
	default:
		return (uint64(1) << (32 - bits)) - 2
	}
}

// Hosts enumerates usable host addresses in ascending order, excluding the network and
// broadcast addresses. Callers scanning untrusted input should check HostCount first.
func (s Subnet) Hosts() []netip.Addr {
	first := addrToUint32(s.prefix.Addr())
	bits := s.prefix.Bits()
	if bits >= 31 {
		hosts := []netip.Addr{uint32ToAddr(first)}
		if bits == 31 {
			hosts = append(hosts, uint32ToAddr(first+1))
		}
		return hosts
	}

	count := s.HostCount()
	hosts := make([]netip.Addr, 0, count)
	for i := uint64(1); i <= count; i++ {
		hosts = append(hosts, uint32ToAddr(first+uint32(i)))
	}
	return hosts
}

// SortByAddress sorts items in place by the address returned by key.
func SortByAddress[T any](items []T, key func(T) netip.Addr) {
	slices.SortFunc(items, func(a, b T) int { return key(a).Compare(key(b)) })
}

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uint32ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
