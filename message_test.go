package dnssd

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return &Service{
		Host:       "mymachine",
		Service:    "_airplay",
		Protocol:   "_tcp",
		Port:       7000,
		TXTRecords: []string{"key=value"},
		Addr:       net.IPv4(192, 168, 1, 10),
	}
}

func TestProbeMessage(t *testing.T) {
	m := Probe(testService())

	assert.False(t, m.Header.QR)
	assert.Equal(t, uint16(1), m.Header.QDCount)
	assert.Equal(t, uint16(2), m.Header.NSCount)
	assert.Empty(t, m.Answers)

	require.Len(t, m.Questions, 1)
	q := m.Questions[0]
	assert.Equal(t, "mymachine.local", q.Name.String())
	assert.Equal(t, QTypeANY, q.Type)
	assert.Equal(t, ClassANY, q.Class)
	assert.True(t, q.UnicastResponse)

	require.Len(t, m.Authorities, 2)
	assert.Equal(t, TypeSRV, m.Authorities[0].Type)
	assert.Equal(t, "mymachine._airplay._tcp.local", m.Authorities[0].Name.String())
	assert.Equal(t, TypeA, m.Authorities[1].Type)
	assert.Equal(t, "mymachine.local", m.Authorities[1].Name.String())
}

func TestAnnounceMessage(t *testing.T) {
	m := Announce(testService())

	assert.True(t, m.Header.QR)
	assert.True(t, m.Header.AA)
	assert.Equal(t, uint16(3), m.Header.ANCount)

	require.Len(t, m.Answers, 3)
	ptr, srv, a := m.Answers[0], m.Answers[1], m.Answers[2]

	assert.Equal(t, TypePTR, ptr.Type)
	assert.Equal(t, "_airplay._tcp.local", ptr.Name.String())
	assert.Equal(t, "mymachine._airplay._tcp.local", ptr.RData.(PTRRecord).Name.String())
	assert.False(t, ptr.CacheFlush)

	assert.Equal(t, TypeSRV, srv.Type)
	assert.True(t, srv.CacheFlush)
	assert.Equal(t, uint16(7000), srv.RData.(SRVRecord).Port)
	assert.Equal(t, "mymachine.local", srv.RData.(SRVRecord).Target.String())

	assert.Equal(t, TypeA, a.Type)
	assert.True(t, a.CacheFlush)

	for _, r := range m.Answers {
		assert.Equal(t, uint32(defaultTTL), r.TTL)
	}
}

func TestGoodbyeZeroesEveryTTL(t *testing.T) {
	svc := testService()
	announce := Announce(svc)
	goodbye := Goodbye(svc)

	require.Len(t, goodbye.Answers, len(announce.Answers))
	for i, r := range goodbye.Answers {
		assert.Equal(t, uint32(0), r.TTL)
		assert.Equal(t, announce.Answers[i].Type, r.Type)
		assert.Equal(t, announce.Answers[i].Name.String(), r.Name.String())
	}
}

func TestMessageBytesSkipsRecordsWithoutRData(t *testing.T) {
	broken := &ResourceRecord{Name: NewName("h.local"), Type: TypeA, Class: ClassIN, TTL: 120}
	ok := NewPTRRecord("_x._udp.local", "h._x._udp.local", 120)

	m := &Message{
		Header:  Header{QR: true, ANCount: 2},
		Answers: []*ResourceRecord{broken, ok},
	}
	b := m.Bytes()

	okBytes, err := ok.Bytes()
	require.NoError(t, err)
	// The emitted header counts only the record that encoded.
	h := m.Header
	h.ANCount = 1
	assert.Equal(t, append(h.Bytes(), okBytes...), b)
}

func TestMessageWithoutAddressCountsOnlyCarriedRecords(t *testing.T) {
	svc := testService()
	svc.Addr = nil

	// The A record drops out of both builders; the datagrams must
	// still parse, which they only do when the header counts agree
	// with the records carried.
	announce, err := parseMessage(Announce(svc).Bytes())
	require.NoError(t, err)
	require.Len(t, announce.Answers, 2)
	assert.Equal(t, TypePTR, announce.Answers[0].Type)
	assert.Equal(t, TypeSRV, announce.Answers[1].Type)

	probe, err := parseMessage(Probe(svc).Bytes())
	require.NoError(t, err)
	require.Len(t, probe.Authorities, 1)
	assert.Equal(t, TypeSRV, probe.Authorities[0].Type)
}

func TestMessageBytesSectionOrder(t *testing.T) {
	q := Question{Name: NewName("h.local"), Type: TypeA, Class: ClassIN}
	answer := NewPTRRecord("_x._udp.local", "a._x._udp.local", 120)
	authority := NewSRVRecord("a._x._udp.local", 1, "h.local", 120, false)

	m := &Message{
		Header:      Header{QDCount: 1, ANCount: 1, NSCount: 1},
		Questions:   []Question{q},
		Answers:     []*ResourceRecord{answer},
		Authorities: []*ResourceRecord{authority},
	}

	answerBytes, err := answer.Bytes()
	require.NoError(t, err)
	authorityBytes, err := authority.Bytes()
	require.NoError(t, err)

	want := m.Header.Bytes()
	want = append(want, q.Bytes()...)
	want = append(want, answerBytes...)
	want = append(want, authorityBytes...)
	assert.Equal(t, want, m.Bytes())
}
