package dnssd

import (
	"fmt"
	"time"
)

// EventKind discriminates the Event union.
type EventKind int

const (
	// EventMessage carries a decoded inbound datagram.
	EventMessage EventKind = iota
	// EventTimeElapsed carries a fired per-state timer.
	EventTimeElapsed
	// EventTTL is the 1s cache maintenance tick.
	EventTTL
	// EventClosing asks the chain to run its shutdown hooks.
	EventClosing
	// EventBrowse is the browse command.
	EventBrowse
	// EventRegister is the register command.
	EventRegister
)

// Event is the single input type of the handler chain. Exactly one
// event at a time is dispatched through every handler in order.
type Event struct {
	Kind EventKind

	// Msg is set for EventMessage.
	Msg *Message

	// Tag and Elapsed are set for EventTimeElapsed. Tag names the
	// ServiceState that armed the timer; handlers compare it against
	// the current state to discard stale timers.
	Tag     ServiceState
	Elapsed time.Duration

	// Name is set for EventBrowse.
	Name string

	// Registration fields, set for EventRegister.
	Host     string
	Service  string
	Protocol string
	Port     uint16
	TXT      []string
}

func (e *Event) String() string {
	switch e.Kind {
	case EventMessage:
		return "Message"
	case EventTimeElapsed:
		return fmt.Sprintf("TimeElapsed(%s, %s)", e.Tag, e.Elapsed)
	case EventTTL:
		return "Ttl"
	case EventClosing:
		return "Closing"
	case EventBrowse:
		return fmt.Sprintf("Browse(%s)", e.Name)
	case EventRegister:
		return fmt.Sprintf("Register(%s.%s.%s:%d)", e.Host, e.Service, e.Protocol, e.Port)
	}
	return fmt.Sprintf("Event(%d)", int(e.Kind))
}

func messageEvent(m *Message) *Event {
	return &Event{Kind: EventMessage, Msg: m}
}

func timeElapsedEvent(tag ServiceState, elapsed time.Duration) *Event {
	return &Event{Kind: EventTimeElapsed, Tag: tag, Elapsed: elapsed}
}

func ttlEvent() *Event {
	return &Event{Kind: EventTTL}
}

func closingEvent() *Event {
	return &Event{Kind: EventClosing}
}

func browseEvent(name string) *Event {
	return &Event{Kind: EventBrowse, Name: name}
}

func registerEvent(host, service, protocol string, port uint16, txt []string) *Event {
	return &Event{
		Kind:     EventRegister,
		Host:     host,
		Service:  service,
		Protocol: protocol,
		Port:     port,
		TXT:      txt,
	}
}
