package dnssd

import (
	"fmt"
	"net"
)

// ServiceState is the phase of the registration state machine. The
// progression is strictly linear:
//
//	Prelude → WaitForFirstProbe → FirstProbe → WaitForSecondProbe →
//	SecondProbe → WaitForAnnouncing → FirstAnnouncement →
//	WaitForSecondAnnouncement → SecondAnnouncement → Registered
//
// Every WaitFor state is entered together with a timer tagged with
// that exact state value; the paired active state is only entered when
// a fired timer's tag equals the service's current state, which is
// what discards stale and duplicate timers.
type ServiceState int

const (
	StatePrelude ServiceState = iota
	StateWaitForFirstProbe
	StateFirstProbe
	StateWaitForSecondProbe
	StateSecondProbe
	StateWaitForAnnouncing
	StateFirstAnnouncement
	StateWaitForSecondAnnouncement
	StateSecondAnnouncement
	StateRegistered
)

func (s ServiceState) String() string {
	switch s {
	case StatePrelude:
		return "Prelude"
	case StateWaitForFirstProbe:
		return "WaitForFirstProbe"
	case StateFirstProbe:
		return "FirstProbe"
	case StateWaitForSecondProbe:
		return "WaitForSecondProbe"
	case StateSecondProbe:
		return "SecondProbe"
	case StateWaitForAnnouncing:
		return "WaitForAnnouncing"
	case StateFirstAnnouncement:
		return "FirstAnnouncement"
	case StateWaitForSecondAnnouncement:
		return "WaitForSecondAnnouncement"
	case StateSecondAnnouncement:
		return "SecondAnnouncement"
	case StateRegistered:
		return "Registered"
	}
	return fmt.Sprintf("ServiceState(%d)", int(s))
}

// Service is a registration in progress or complete. A Client holds at
// most one; registering again replaces it.
type Service struct {
	Host       string // host label, e.g. "mymachine"
	Service    string // service label, e.g. "_airplay"
	Protocol   string // "_tcp" or "_udp"
	Port       uint16
	TXTRecords []string // ordered "key=value" entries
	State      ServiceState

	// Addr is the interface address advertised in A records. Left nil
	// when no IPv4 interface address could be determined, in which
	// case A records are skipped at encode time.
	Addr net.IP
}

// HostName is the address record name, "<host>.local".
func (s *Service) HostName() string {
	return fmt.Sprintf("%s.local", trimDot(s.Host))
}

// TypeName is the service type browsed for, "<service>.<protocol>.local".
func (s *Service) TypeName() string {
	return fmt.Sprintf("%s.%s.local", trimDot(s.Service), trimDot(s.Protocol))
}

// InstanceName is the full instance name,
// "<host>.<service>.<protocol>.local".
func (s *Service) InstanceName() string {
	return fmt.Sprintf("%s.%s", trimDot(s.Host), s.TypeName())
}

// Query is an active browse for a service type. A Client holds at most
// one; browsing again replaces it.
type Query struct {
	// Name is the service type being searched, e.g. "_services._udp.local".
	Name string

	// Services are the discovered results, appended as resolution
	// completes and pruned when their records expire.
	Services []Service
}
