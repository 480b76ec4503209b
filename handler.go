package dnssd

import "time"

// protoState is the mutable protocol state shared by all handlers.
// Only the event loop goroutine touches it, one event at a time, so no
// locking is needed.
type protoState struct {
	// records are the resource records currently known on the
	// network, maintained once per second by the ttl handler.
	records []*ResourceRecord

	// registration is the single service slot; nil until a Register
	// command arrives.
	registration *Service

	// query is the single browse slot; nil until a Browse command
	// arrives.
	query *Query
}

// timeout is a timer request produced by a handler: arm a timer for
// delay and deliver its expiry tagged with state.
type timeout struct {
	state ServiceState
	delay time.Duration
}

// effects accumulates what a dispatch pass wants the event loop to do
// afterwards: arm timers and send messages, in emission order.
type effects struct {
	timeouts []timeout
	queue    []*Message
}

func (fx *effects) schedule(state ServiceState, delay time.Duration) {
	fx.timeouts = append(fx.timeouts, timeout{state: state, delay: delay})
}

func (fx *effects) enqueue(m *Message) {
	fx.queue = append(fx.queue, m)
}

// Handler is one link of the protocol chain. Every handler sees every
// event; a handler reacts to the events it cares about and ignores the
// rest. Returning an error stops the remaining handlers for this event
// only.
type Handler interface {
	Handle(ev *Event, st *protoState, fx *effects) error
}

// chain dispatches an event through the handlers in order. The chain
// never short-circuits on success; only a propagated error stops it.
type chain []Handler

func (c chain) dispatch(ev *Event, st *protoState, fx *effects) error {
	for _, h := range c {
		if err := h.Handle(ev, st, fx); err != nil {
			return err
		}
	}
	return nil
}
