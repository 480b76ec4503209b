package dnssd

import (
	"encoding/binary"
	"net"
)

// ResourceRecord is one record of a message's answer, authority or
// additional section.
//
//	                                1  1  1  1  1  1
//	  0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                      NAME                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                      TYPE                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     CLASS                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                      TTL                      |
//	|                                               |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                   RDLENGTH                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     RDATA                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// RFC 1035 section 4.1.3.
type ResourceRecord struct {
	Name  Name
	Type  QType
	Class QClass

	// CacheFlush tells receivers to drop previously cached copies of
	// this record. It occupies the top bit of the class field.
	// RFC 6762 section 10.2.
	CacheFlush bool

	// TTL in seconds. Zero means the record must not be cached; see
	// goodbye.go.
	TTL uint32

	RData RData
}

// Bytes encodes the record. A record without RData cannot be
// serialized and reports errMissingRData; message encoding skips such
// records rather than aborting (see Message.Bytes).
func (r *ResourceRecord) Bytes() ([]byte, error) {
	if r.RData == nil {
		return nil, errMissingRData
	}

	rdata := r.RData.Bytes()

	bytes := r.Name.Bytes()
	bytes = binary.BigEndian.AppendUint16(bytes, uint16(r.Type))

	class := uint16(r.Class)
	if r.CacheFlush {
		class |= classTopBit
	}
	bytes = binary.BigEndian.AppendUint16(bytes, class)

	bytes = binary.BigEndian.AppendUint32(bytes, r.TTL)

	// RDLENGTH is always the actual encoded RDATA length.
	bytes = binary.BigEndian.AppendUint16(bytes, uint16(len(rdata)))
	return append(bytes, rdata...), nil
}

// NewARecord builds an address record for the given host name. A nil
// or non-IPv4 ip leaves RData unset, which excludes the record from
// any encoded message.
func NewARecord(name string, ip net.IP, ttl uint32, cacheFlush bool) *ResourceRecord {
	r := &ResourceRecord{
		Name:       NewName(name),
		Type:       TypeA,
		Class:      ClassIN,
		CacheFlush: cacheFlush,
		TTL:        ttl,
	}
	if ip4 := ip.To4(); ip4 != nil {
		var a ARecord
		copy(a.IP[:], ip4)
		r.RData = a
	}
	return r
}

// NewAAAARecord builds an IPv6 address record.
func NewAAAARecord(name string, ip [4]uint16, ttl uint32, cacheFlush bool) *ResourceRecord {
	return &ResourceRecord{
		Name:       NewName(name),
		Type:       TypeAAAA,
		Class:      ClassIN,
		CacheFlush: cacheFlush,
		TTL:        ttl,
		RData:      AAAARecord{IP: ip},
	}
}

// NewPTRRecord builds a pointer record mapping name to target.
func NewPTRRecord(name, target string, ttl uint32) *ResourceRecord {
	return &ResourceRecord{
		Name:  NewName(name),
		Type:  TypePTR,
		Class: ClassIN,
		TTL:   ttl,
		RData: PTRRecord{Name: NewName(target)},
	}
}

// NewSRVRecord builds a service locator record for the instance name.
func NewSRVRecord(name string, port uint16, target string, ttl uint32, cacheFlush bool) *ResourceRecord {
	return &ResourceRecord{
		Name:       NewName(name),
		Type:       TypeSRV,
		Class:      ClassIN,
		CacheFlush: cacheFlush,
		TTL:        ttl,
		RData: SRVRecord{
			Priority: 10,
			Weight:   1,
			Port:     port,
			Target:   NewName(target),
		},
	}
}

// NewTXTRecord builds a text record from "key=value" entries.
func NewTXTRecord(name string, entries []string, ttl uint32) *ResourceRecord {
	return &ResourceRecord{
		Name:  NewName(name),
		Type:  TypeTXT,
		Class: ClassIN,
		TTL:   ttl,
		RData: TXTRecord{Entries: entries},
	}
}
