// Package dnssd implements mDNS service registration and browsing
// (RFC 6762, DNS-SD per RFC 6763) over a single multicast UDP socket.
//
// A Client owns one registration slot and one browse slot. Both are
// driven by a single event loop that feeds every event through a fixed
// chain of protocol handlers; see client.go.
package dnssd

import (
	"net"
	"time"
)

const (
	ipv4mdns = "224.0.0.251"
	mdnsPort = 5353
)

var ipv4Addr = &net.UDPAddr{
	IP:   net.ParseIP(ipv4mdns),
	Port: mdnsPort,
}

const (
	// defaultTTL is the TTL value in outgoing DNS records in seconds.
	defaultTTL = 120

	inboundBufferSize = 1024

	// RFC 6762 section 8.1: first probe is delayed by a random amount
	// in [0, 250) ms, subsequent probes fire 250ms apart.
	maxProbeDelay = 250 * time.Millisecond
	probeInterval = 250 * time.Millisecond

	// RFC 6762 section 8.3: announcements are sent 1s apart.
	announceInterval = time.Second

	// RFC 6762 section 10: record TTLs are maintained once per second.
	ttlInterval = time.Second
)
