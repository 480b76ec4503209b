package dnssd

import "github.com/apex/log"

// announceHandler drives the announcing half of the registration state
// machine, mirroring the probe handler's structure.
//
// RFC 6762 section 8.3: send an unsolicited response with the full
// answer set, cache-flush bit set on the unique records, wait 1s, send
// it again.
type announceHandler struct {
	log *log.Logger
}

func (h *announceHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	svc := st.registration
	if svc == nil {
		return nil
	}

	if ev.Kind == EventTimeElapsed && ev.Tag == svc.State &&
		svc.State == StateWaitForSecondAnnouncement {
		svc.State = StateSecondAnnouncement
	}

	switch svc.State {
	case StateFirstAnnouncement:
		fx.enqueue(Announce(svc))
		fx.schedule(StateWaitForSecondAnnouncement, announceInterval)
		svc.State = StateWaitForSecondAnnouncement

	case StateSecondAnnouncement:
		fx.enqueue(Announce(svc))
		svc.State = StateRegistered
		h.log.Infof("registered %s", svc.InstanceName())
	}

	return nil
}
