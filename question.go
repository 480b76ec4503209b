package dnssd

import "encoding/binary"

// QType identifies what a question asks for. QTypes are a superset of
// record TYPEs, so every Type value is a valid QType.
//
// RFC 1035 section 3.2.2.
type QType uint16

const (
	TypeA     QType = 1
	TypeNS    QType = 2
	TypeCNAME QType = 5
	TypeSOA   QType = 6
	TypeNULL  QType = 10
	TypeWKS   QType = 11
	TypePTR   QType = 12
	TypeHINFO QType = 13
	TypeMX    QType = 15
	TypeTXT   QType = 16
	TypeAAAA  QType = 28
	TypeSRV   QType = 33
	TypeNSEC  QType = 47
	TypeAXFR  QType = 252
	QTypeANY  QType = 255
)

// QClass identifies the network class a question asks for. Multicast
// DNS reuses the top bit of the class field: in questions it is the
// unicast-response bit, in records the cache-flush bit.
//
// RFC 1035 section 3.2.5, RFC 6762 section 5.4.
type QClass uint16

const (
	ClassIN  QClass = 1
	ClassCS  QClass = 2
	ClassCH  QClass = 3
	ClassHS  QClass = 4
	ClassANY QClass = 255
)

// classTopBit is the unicast-response / cache-flush bit.
const classTopBit = 1 << 15

// Question is one entry of a message's question section.
//
//	                                1  1  1  1  1  1
//	  0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     QNAME                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     QTYPE                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     QCLASS                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// RFC 1035 section 4.1.2.
type Question struct {
	Name  Name
	Type  QType
	Class QClass

	// UnicastResponse asks responders to reply by unicast rather than
	// to the multicast group. RFC 6762 section 5.4.
	UnicastResponse bool
}

// Bytes encodes the question as QNAME + QTYPE + QCLASS.
func (q Question) Bytes() []byte {
	bytes := q.Name.Bytes()

	bytes = binary.BigEndian.AppendUint16(bytes, uint16(q.Type))

	class := uint16(q.Class)
	if q.UnicastResponse {
		class |= classTopBit
	}
	return binary.BigEndian.AppendUint16(bytes, class)
}
