package dnssd

import "github.com/apex/log"

// ttlHandler performs once-per-second cache maintenance: every known
// record's TTL is decremented by one, floored at zero; records that
// reached zero on the previous tick are evicted. When an eviction
// removes the record backing a browse result, the result is dropped
// and the event reports ErrServiceRemoved.
//
// Cache-refresh queries at 80/85/90/95% of the original TTL (RFC 6762
// section 10) are not implemented.
type ttlHandler struct {
	log *log.Logger
}

func (h *ttlHandler) Handle(ev *Event, st *protoState, fx *effects) error {
	if ev.Kind != EventTTL {
		return nil
	}

	kept := st.records[:0]
	var expired []*ResourceRecord
	for _, r := range st.records {
		if r.TTL == 0 {
			expired = append(expired, r)
			continue
		}
		r.TTL--
		kept = append(kept, r)
	}
	st.records = kept

	var removed bool
	for _, r := range expired {
		h.log.Debugf("expired record %s (%d)", r.Name.String(), r.Type)
		if st.query != nil && r.Type == TypePTR {
			removed = h.prune(st.query, r) || removed
		}
	}
	if removed {
		return ErrServiceRemoved
	}
	return nil
}

// prune drops browse results whose PTR record expired.
func (h *ttlHandler) prune(q *Query, r *ResourceRecord) bool {
	ptr, ok := r.RData.(PTRRecord)
	if !ok {
		return false
	}
	for i := range q.Services {
		if q.Services[i].InstanceName() == ptr.Name.String() {
			h.log.Infof("service removed: %s", ptr.Name.String())
			q.Services = append(q.Services[:i], q.Services[i+1:]...)
			return true
		}
	}
	return false
}
