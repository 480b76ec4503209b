package dnssd

import "encoding/binary"

// RData is the type specific payload of a resource record. Bytes
// returns the wire form used as the RDATA field; its length becomes
// the record's RDLENGTH.
type RData interface {
	Bytes() []byte
}

// ARecord holds an IPv4 host address.
//
// RFC 1035 section 3.4.1.
type ARecord struct {
	IP [4]byte
}

func (a ARecord) Bytes() []byte {
	return a.IP[:]
}

// AAAARecord holds an IPv6 host address as four 16 bit groups.
type AAAARecord struct {
	IP [4]uint16
}

func (a AAAARecord) Bytes() []byte {
	var bytes []byte
	for _, group := range a.IP {
		bytes = binary.BigEndian.AppendUint16(bytes, group)
	}
	return bytes
}

// PTRRecord points at another location in the domain name space, for
// DNS-SD the service instance behind a service type.
//
// RFC 1035 section 3.3.12.
type PTRRecord struct {
	Name Name
}

func (p PTRRecord) Bytes() []byte {
	return p.Name.Bytes()
}

// SRVRecord locates the host and port a service instance runs on.
// Queriers contact the lowest priority first and break ties by weight.
//
// RFC 2782.
type SRVRecord struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

func (s SRVRecord) Bytes() []byte {
	var bytes []byte
	bytes = binary.BigEndian.AppendUint16(bytes, s.Priority)
	bytes = binary.BigEndian.AppendUint16(bytes, s.Weight)
	bytes = binary.BigEndian.AppendUint16(bytes, s.Port)
	return append(bytes, s.Target.Bytes()...)
}

// TXTRecord holds "key=value" strings, each emitted as one
// length-prefixed character-string with no terminator.
//
// RFC 1035 section 3.3.14.
type TXTRecord struct {
	Entries []string
}

func (t TXTRecord) Bytes() []byte {
	var bytes []byte
	for _, entry := range t.Entries {
		bytes = append(bytes, byte(len(entry)))
		bytes = append(bytes, entry...)
	}
	return bytes
}
