package dnssd

import "net"

// ReachableIPv4 reports whether source lies in the same network as
// host under the given subnet mask, by masking both addresses and
// comparing the network parts.
//
// RFC 6762 section 11 (source address check).
func ReachableIPv4(hostIP, hostSubnet, sourceIP net.IP) bool {
	host := hostIP.To4()
	mask := hostSubnet.To4()
	source := sourceIP.To4()
	if host == nil || mask == nil || source == nil {
		return false
	}
	return host.Mask(net.IPMask(mask)).Equal(source.Mask(net.IPMask(mask)))
}

// ReachableIPv6 is the IPv6 form of ReachableIPv4; the usual subnet is
// the 64 bit prefix ffff:ffff:ffff:ffff::.
func ReachableIPv6(hostIP, hostSubnet, sourceIP net.IP) bool {
	host := hostIP.To16()
	mask := hostSubnet.To16()
	source := sourceIP.To16()
	if host == nil || mask == nil || source == nil {
		return false
	}
	return host.Mask(net.IPMask(mask)).Equal(source.Mask(net.IPMask(mask)))
}
