package dnssd

import (
	"fmt"

	"golang.org/x/net/dns/dnsmessage"
)

// parseMessage decodes an inbound datagram into a Message. Parsing,
// including name decompression, is delegated to x/net/dns/dnsmessage;
// this package only ever encodes by hand. All four sections are
// carried over; a malformed packet reports ErrInvalidMessage.
func parseMessage(data []byte) (*Message, error) {
	var p dnsmessage.Parser

	h, err := p.Start(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	m := &Message{
		Header: Header{
			ID:     h.ID,
			QR:     h.Response,
			Opcode: Opcode(h.OpCode),
			AA:     h.Authoritative,
			TC:     h.Truncated,
			RD:     h.RecursionDesired,
			RA:     h.RecursionAvailable,
			Rcode:  Rcode(h.RCode),
		},
	}

	questions, err := p.AllQuestions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	for _, q := range questions {
		m.Questions = append(m.Questions, Question{
			Name:            NewName(q.Name.String()),
			Type:            QType(q.Type),
			Class:           QClass(q.Class &^ classTopBit),
			UnicastResponse: q.Class&classTopBit != 0,
		})
	}
	m.Header.QDCount = uint16(len(m.Questions))

	answers, err := p.AllAnswers()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	for _, a := range answers {
		m.Answers = append(m.Answers, parseRecord(a))
	}
	m.Header.ANCount = uint16(len(m.Answers))

	authorities, err := p.AllAuthorities()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	for _, a := range authorities {
		m.Authorities = append(m.Authorities, parseRecord(a))
	}
	m.Header.NSCount = uint16(len(m.Authorities))

	additionals, err := p.AllAdditionals()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	for _, a := range additionals {
		m.Additionals = append(m.Additionals, parseRecord(a))
	}
	m.Header.ARCount = uint16(len(m.Additionals))

	return m, nil
}

// parseRecord maps a dnsmessage resource onto a ResourceRecord.
// Unhandled record types keep their header but carry no RData, which
// keeps them out of any re-encoded message.
func parseRecord(a dnsmessage.Resource) *ResourceRecord {
	r := &ResourceRecord{
		Name:       NewName(a.Header.Name.String()),
		Type:       QType(a.Header.Type),
		Class:      QClass(uint16(a.Header.Class) &^ classTopBit),
		CacheFlush: uint16(a.Header.Class)&classTopBit != 0,
		TTL:        a.Header.TTL,
	}

	switch body := a.Body.(type) {
	case *dnsmessage.AResource:
		r.RData = ARecord{IP: body.A}
	case *dnsmessage.AAAAResource:
		var aaaa AAAARecord
		for i := range aaaa.IP {
			aaaa.IP[i] = uint16(body.AAAA[2*i])<<8 | uint16(body.AAAA[2*i+1])
		}
		r.RData = aaaa
	case *dnsmessage.PTRResource:
		r.RData = PTRRecord{Name: NewName(body.PTR.String())}
	case *dnsmessage.SRVResource:
		r.RData = SRVRecord{
			Priority: body.Priority,
			Weight:   body.Weight,
			Port:     body.Port,
			Target:   NewName(body.Target.String()),
		}
	case *dnsmessage.TXTResource:
		r.RData = TXTRecord{Entries: body.TXT}
	}

	return r
}
