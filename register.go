package dnssd

import "github.com/apex/log"

// registerHandler fills the registration slot. Any prior registration
// is discarded; the probe handler picks the fresh service up from
// Prelude in the same dispatch pass.
type registerHandler struct {
	log *log.Logger
}

func (h *registerHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	if ev.Kind != EventRegister {
		return nil
	}

	h.log.Debugf("added registration %s.%s.%s.local on port %d with txt records %v",
		ev.Host, ev.Service, ev.Protocol, ev.Port, ev.TXT)

	st.registration = &Service{
		Host:       ev.Host,
		Service:    ev.Service,
		Protocol:   ev.Protocol,
		Port:       ev.Port,
		TXTRecords: ev.TXT,
		State:      StatePrelude,
		Addr:       localIPv4(),
	}

	return nil
}
