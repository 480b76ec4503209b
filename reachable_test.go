package dnssd

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachableIPv4(t *testing.T) {
	host := net.ParseIP("192.168.1.1")
	mask := net.ParseIP("255.255.255.0")

	assert.True(t, ReachableIPv4(host, mask, net.ParseIP("192.168.1.30")))
	assert.False(t, ReachableIPv4(host, mask, net.ParseIP("192.168.2.30")))

	// Non-IPv4 inputs never match.
	assert.False(t, ReachableIPv4(net.ParseIP("fe80::1"), mask, host))
	assert.False(t, ReachableIPv4(nil, mask, host))
}

func TestReachableIPv6(t *testing.T) {
	host := net.ParseIP("fd48:4566:6992:6c04:ba9d:b9ad:c1c0:2eb2")
	mask := net.ParseIP("ffff:ffff:ffff:ffff::")

	assert.True(t, ReachableIPv6(host, mask, net.ParseIP("fd48:4566:6992:6c04:28f9:674b:33a2:7f2e")))
	assert.False(t, ReachableIPv6(host, mask, net.ParseIP("fd48:4566:6992:6c05:28f9:674b:33a2:7f2e")))
	assert.False(t, ReachableIPv6(nil, mask, host))
}
