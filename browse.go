package dnssd

import (
	"strings"

	"github.com/apex/log"
)

// browseHandler fills the browse slot on a Browse command and resolves
// inbound answers against it. It emits no queries of its own; periodic
// query emission with backoff (RFC 6762 section 5.2) is not
// implemented yet.
type browseHandler struct {
	log *log.Logger
}

func (h *browseHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	switch ev.Kind {
	case EventBrowse:
		h.log.Debugf("added query for %s", ev.Name)
		st.query = &Query{Name: trimDot(ev.Name)}

	case EventMessage:
		if ev.Msg == nil || !ev.Msg.Header.QR {
			return nil
		}
		for _, r := range ev.Msg.Answers {
			h.ingest(st, r)
		}
		// Responders put the SRV/TXT/A details of a PTR answer in the
		// additional section. RFC 6763 section 12.
		for _, r := range ev.Msg.Additionals {
			h.ingest(st, r)
		}
	}

	return nil
}

// ingest records an inbound answer in the known-record cache and, when
// it completes a browse result, appends the found service.
func (h *browseHandler) ingest(st *protoState, r *ResourceRecord) {
	cacheRecord(st, r)

	q := st.query
	if q == nil {
		return
	}

	// A browse result starts from a PTR answer for the searched type;
	// the SRV/TXT/A details are filled in from whatever answers arrive
	// with it or later.
	if r.Type == TypePTR && r.Name.String() == q.Name {
		ptr, ok := r.RData.(PTRRecord)
		if !ok {
			return
		}
		instance := ptr.Name.String()
		for i := range q.Services {
			if q.Services[i].InstanceName() == instance {
				return
			}
		}
		svc := serviceFromInstance(instance)
		h.resolve(st, &svc)
		h.log.Infof("discovered %s", instance)
		q.Services = append(q.Services, svc)
		return
	}

	// Later answers may complete an already-listed instance.
	for i := range q.Services {
		svc := &q.Services[i]
		if r.Name.String() == svc.InstanceName() || r.Name.String() == svc.HostName() {
			applyRecord(svc, r)
		}
	}
}

// resolve fills a fresh browse result from the cached records.
func (h *browseHandler) resolve(st *protoState, svc *Service) {
	for _, r := range st.records {
		if r.Name.String() == svc.InstanceName() || r.Name.String() == svc.HostName() {
			applyRecord(svc, r)
		}
	}
}

// cacheRecord inserts or refreshes a known record. A goodbye answer
// (TTL 0) is kept for one more second so the ttl handler expires it on
// the next tick, per RFC 6762 section 10.1.
func cacheRecord(st *protoState, r *ResourceRecord) {
	cached := *r
	if cached.TTL == 0 {
		cached.TTL = 1
	}
	for i, known := range st.records {
		if known.Name.String() == r.Name.String() && known.Type == r.Type {
			st.records[i] = &cached
			return
		}
	}
	st.records = append(st.records, &cached)
}

func applyRecord(svc *Service, r *ResourceRecord) {
	switch rd := r.RData.(type) {
	case SRVRecord:
		svc.Port = rd.Port
	case TXTRecord:
		svc.TXTRecords = rd.Entries
	case ARecord:
		svc.Addr = append([]byte(nil), rd.IP[:]...)
	}
}

// serviceFromInstance splits "<host>.<service>.<protocol>.local" back
// into its labels. Missing labels stay empty.
func serviceFromInstance(instance string) Service {
	svc := Service{State: StateRegistered}
	labels := strings.Split(trimDot(instance), ".")
	if len(labels) > 0 {
		svc.Host = labels[0]
	}
	if len(labels) > 2 {
		svc.Service = labels[1]
		svc.Protocol = labels[2]
	}
	return svc
}
