package netlocal

import (
	"errors"
	"net"
	"net/netip"
	"testing"

	"myfleet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	net.Conn
	local net.Addr
}

func (c fakeConn) LocalAddr() net.Addr { return c.local }
func (c fakeConn) Close() error        { return nil }

func newTestLocator(local string, addrs []net.Addr) *Locator {
	l := NewLocator(DefaultRouteProbe)
	l.dial = func(network, address string) (net.Conn, error) {
		return fakeConn{local: &net.UDPAddr{IP: net.ParseIP(local), Port: 50000}}, nil
	}
	l.addresses = func() ([]net.Addr, error) { return addrs, nil }
	return l
}

func ipNet(cidr string) *net.IPNet {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestLocator_Locate(t *testing.T) {
	l := newTestLocator("192.168.1.20", []net.Addr{
		ipNet("127.0.0.1/8"),
		ipNet("fe80::1/64"),
		ipNet("192.168.1.20/24"),
	})

	addr, bits, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.168.1.20"), addr)
	assert.Equal(t, 24, bits)
}

func TestLocator_Locate_SixteenByteMask(t *testing.T) {
	n := &net.IPNet{IP: net.ParseIP("10.0.0.5"), Mask: net.CIDRMask(96+29, 128)}
	l := newTestLocator("10.0.0.5", []net.Addr{n})

	_, bits, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, 29, bits)
}

func TestLocator_Locate_NoMatchingAdapter(t *testing.T) {
	l := newTestLocator("10.0.0.5", []net.Addr{ipNet("10.0.0.6/24")})

	_, _, err := l.Locate()
	require.Error(t, err)
	assert.True(t, service.IsNoRouteError(err))
}

func TestLocator_Locate_PublicAddress(t *testing.T) {
	l := newTestLocator("8.8.4.4", []net.Addr{ipNet("8.8.4.4/24")})

	_, _, err := l.Locate()
	assert.True(t, service.IsValidationError(err))
}

func TestLocator_Locate_NoRoute(t *testing.T) {
	l := NewLocator(DefaultRouteProbe)
	l.dial = func(string, string) (net.Conn, error) { return nil, errors.New("network is unreachable") }

	_, _, err := l.Locate()
	assert.True(t, service.IsNoRouteError(err))
}

func TestLocator_Locate_AdapterListFailure(t *testing.T) {
	l := newTestLocator("10.0.0.5", nil)
	l.addresses = func() ([]net.Addr, error) { return nil, errors.New("permission denied") }

	_, _, err := l.Locate()
	assert.True(t, service.IsNoRouteError(err))
}

func TestNewLocator_EmptyTargetPanics(t *testing.T) {
	assert.Panics(t, func() { NewLocator("") })
}
