package api

import (
	"net/netip"

	"github.com/phuslu/iploc"
)

// IPLocator resolves countries from the IP database compiled into iploc.
type IPLocator struct{}

// Country implements Locator.
func (IPLocator) Country(addr netip.Addr) string {
	return iploc.IPCountry(addr)
}

// clientAddr parses r.RemoteAddr, which RealIP may already have reduced to a
// bare IP.
func clientAddr(remote string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(remote); err == nil {
		return ap.Addr().Unmap(), true
	}
	if a, err := netip.ParseAddr(remote); err == nil {
		return a.Unmap(), true
	}
	return netip.Addr{}, false
}
