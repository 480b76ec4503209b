package dnssd

// Message is a full mDNS message: header plus question, answer,
// authority and additional sections.
//
// UDP messages may not exceed the interface MTU; splitting oversized
// messages with the TC flag is not implemented here.
//
// RFC 1035 section 4.1.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []*ResourceRecord
	Authorities []*ResourceRecord
	Additionals []*ResourceRecord
}

// Bytes encodes the message in section order. Records that cannot be
// serialized (missing RData) are skipped rather than failing the whole
// message; the emitted header counts only the records actually
// carried, so a skipped record never desyncs the section counts.
func (m *Message) Bytes() []byte {
	var body []byte

	for _, q := range m.Questions {
		body = append(body, q.Bytes()...)
	}

	encode := func(section []*ResourceRecord) uint16 {
		var n uint16
		for _, r := range section {
			b, err := r.Bytes()
			if err != nil {
				continue
			}
			body = append(body, b...)
			n++
		}
		return n
	}

	h := m.Header
	h.QDCount = uint16(len(m.Questions))
	h.ANCount = encode(m.Answers)
	h.NSCount = encode(m.Authorities)
	h.ARCount = encode(m.Additionals)

	return append(h.Bytes(), body...)
}

// Probe builds the query sent while verifying that the service's names
// are not already claimed: one QTYPE=ANY question for the host name
// with the unicast-response bit set, and the proposed SRV and A
// records in the authority section.
//
// RFC 6762 section 8.1.
func Probe(s *Service) *Message {
	return &Message{
		Header: Header{
			QDCount: 1,
			NSCount: 2,
		},
		Questions: []Question{{
			Name:            NewName(s.HostName()),
			Type:            QTypeANY,
			Class:           ClassANY,
			UnicastResponse: true,
		}},
		Authorities: []*ResourceRecord{
			NewSRVRecord(s.InstanceName(), s.Port, s.HostName(), defaultTTL, false),
			NewARecord(s.HostName(), s.Addr, defaultTTL, false),
		},
	}
}

// Announce builds the unsolicited response broadcasting ownership of
// the probed records: PTR from the service type to the instance, plus
// SRV and A with the cache-flush bit set.
//
// RFC 6762 section 8.3.
func Announce(s *Service) *Message {
	return &Message{
		Header: Header{
			QR:      true,
			AA:      true,
			ANCount: 3,
		},
		Answers: []*ResourceRecord{
			NewPTRRecord(s.TypeName(), s.InstanceName(), defaultTTL),
			NewSRVRecord(s.InstanceName(), s.Port, s.HostName(), defaultTTL, true),
			NewARecord(s.HostName(), s.Addr, defaultTTL, true),
		},
	}
}

// Goodbye builds the withdrawal announcement: the same answer set as
// Announce with every TTL forced to zero so receivers flush the
// records.
//
// RFC 6762 section 10.1.
func Goodbye(s *Service) *Message {
	m := Announce(s)
	for _, r := range m.Answers {
		r.TTL = 0
	}
	return m
}
