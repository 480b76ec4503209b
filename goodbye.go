package dnssd

import "github.com/apex/log"

// goodbyeHandler queues the withdrawal message when the client shuts
// down. It runs on Closing regardless of how far the registration got;
// receivers ignore goodbyes for records they never cached.
//
// RFC 6762 section 10.1.
type goodbyeHandler struct {
	log *log.Logger
}

func (h *goodbyeHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	if ev.Kind != EventClosing {
		return nil
	}

	if svc := st.registration; svc != nil {
		h.log.Debugf("sending goodbye for %s", svc.InstanceName())
		fx.enqueue(Goodbye(svc))
	}

	return nil
}
