package dnssd

import "encoding/binary"

// Opcode is the kind of query carried in a message header.
//
// RFC 1035 section 4.1.1.
type Opcode uint8

const (
	OpcodeStandardQuery Opcode = iota
	OpcodeInverseQuery
	OpcodeServerStatusRequest
)

// Rcode is the response code of a message header.
//
// RFC 1035 section 4.1.1.
type Rcode uint8

const (
	RcodeNoError Rcode = iota
	RcodeFormatError
	RcodeServerFailure
	RcodeNameError
	RcodeNotImplemented
	RcodeRefused
)

// Header is the fixed 12 byte DNS message header.
//
//	                                1  1  1  1  1  1
//	  0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                      ID                       |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    QDCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    ANCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    NSCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    ARCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// RFC 1035 section 4.1.1. The zero value is an empty standard query.
type Header struct {
	ID      uint16
	QR      bool
	Opcode  Opcode
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Rcode   Rcode
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Bytes encodes the header into its wire form, MSB first.
func (h Header) Bytes() []byte {
	b := make([]byte, 12)

	binary.BigEndian.PutUint16(b[0:2], h.ID)

	var flags uint16
	if h.QR {
		flags |= 1 << 15
	}
	flags |= uint16(h.Opcode&0xf) << 11
	if h.AA {
		flags |= 1 << 10
	}
	if h.TC {
		flags |= 1 << 9
	}
	if h.RD {
		flags |= 1 << 8
	}
	if h.RA {
		flags |= 1 << 7
	}
	// Z bits stay zero in all queries and responses.
	flags |= uint16(h.Rcode & 0xf)
	binary.BigEndian.PutUint16(b[2:4], flags)

	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)

	return b
}
