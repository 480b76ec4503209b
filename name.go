package dnssd

import "strings"

// Name is a dotted domain name ("a.b.local") that serializes to the
// RFC 1035 label form: each label prefixed with its length octet, the
// whole name terminated with a zero octet. No compression pointers are
// ever produced; see decode.go for the inbound side.
type Name struct {
	content string
}

// NewName wraps the given dotted name, dropping any leading or
// trailing dots.
func NewName(name string) Name {
	return Name{content: trimDot(name)}
}

func (n Name) String() string {
	return n.content
}

// maxLabelLength is the label size limit; the length octet only has
// six usable bits.
//
// RFC 1035 section 2.3.4.
const maxLabelLength = 63

// Bytes encodes the name as length-prefixed labels with a zero
// terminator. Labels over 63 octets are clamped to the limit so the
// length octet can never disagree with the bytes that follow it.
//
// RFC 1035 section 4.1.2.
func (n Name) Bytes() []byte {
	var bytes []byte

	for _, label := range strings.Split(n.content, ".") {
		if len(label) > maxLabelLength {
			label = label[:maxLabelLength]
		}
		bytes = append(bytes, byte(len(label)))
		bytes = append(bytes, label...)
	}

	return append(bytes, 0)
}

// trimDot is used to trim the dots from the start or end of a string
func trimDot(s string) string {
	return strings.Trim(s, ".")
}
