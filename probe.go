package dnssd

import (
	"math/rand"
	"time"

	"github.com/apex/log"
)

// probeHandler drives the probing half of the registration state
// machine.
//
// RFC 6762 section 8.1: wait a random 0-250ms to avoid synchronized
// probing herds on startup, query the proposed names, wait 250ms,
// query again, wait 250ms, then hand over to announcing. A probe-phase
// answer for our instance name means the name is taken.
type probeHandler struct {
	log *log.Logger
}

func (h *probeHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	svc := st.registration
	if svc == nil {
		return nil
	}

	if ev.Kind == EventMessage && h.conflicts(ev.Msg, svc) {
		return ErrNameAlreadyTaken
	}

	// A fired timer only advances the state that armed it; late or
	// duplicate timers carry a stale tag and fall through untouched.
	if ev.Kind == EventTimeElapsed && ev.Tag == svc.State {
		switch svc.State {
		case StateWaitForFirstProbe:
			svc.State = StateFirstProbe
		case StateWaitForSecondProbe:
			svc.State = StateSecondProbe
		case StateWaitForAnnouncing:
			svc.State = StateFirstAnnouncement
		}
	}

	switch svc.State {
	case StatePrelude:
		delay := time.Duration(rand.Int63n(int64(maxProbeDelay)))
		h.log.Debugf("probing %s in %s", svc.InstanceName(), delay)
		fx.schedule(StateWaitForFirstProbe, delay)
		svc.State = StateWaitForFirstProbe

	case StateFirstProbe:
		fx.enqueue(Probe(svc))
		fx.schedule(StateWaitForSecondProbe, probeInterval)
		svc.State = StateWaitForSecondProbe

	case StateSecondProbe:
		fx.enqueue(Probe(svc))
		fx.schedule(StateWaitForAnnouncing, probeInterval)
		svc.State = StateWaitForAnnouncing
	}

	return nil
}

// conflicts reports whether an inbound response claims a name we are
// still probing for. Tiebreaking of simultaneous probes (RFC 6762
// section 8.2) is not implemented; any authoritative answer counts.
func (h *probeHandler) conflicts(m *Message, svc *Service) bool {
	if m == nil || svc.State < StateWaitForFirstProbe || svc.State > StateWaitForAnnouncing {
		return false
	}
	if !m.Header.QR {
		return false
	}
	for _, r := range m.Answers {
		if r.Name.String() == svc.InstanceName() || r.Name.String() == svc.HostName() {
			h.log.Warnf("probe conflict: %s is already claimed", r.Name.String())
			return true
		}
	}
	return false
}
