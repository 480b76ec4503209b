package dnssd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLDecrementsEveryRecord(t *testing.T) {
	h := &ttlHandler{log: testLogger()}
	st := &protoState{records: []*ResourceRecord{
		NewPTRRecord("_x._udp.local", "a._x._udp.local", 120),
		NewTXTRecord("a._x._udp.local", []string{"k=v"}, 5),
	}}
	var fx effects

	require.NoError(t, h.Handle(ttlEvent(), st, &fx))

	assert.Equal(t, uint32(119), st.records[0].TTL)
	assert.Equal(t, uint32(4), st.records[1].TTL)
}

func TestTTLFloorsAtZeroThenEvicts(t *testing.T) {
	h := &ttlHandler{log: testLogger()}
	st := &protoState{records: []*ResourceRecord{
		NewTXTRecord("a._x._udp.local", []string{"k=v"}, 1),
	}}

	var fx effects
	require.NoError(t, h.Handle(ttlEvent(), st, &fx))
	require.Len(t, st.records, 1)
	assert.Equal(t, uint32(0), st.records[0].TTL)

	// The zeroed record survives the tick that zeroed it and goes on
	// the next one.
	require.NoError(t, h.Handle(ttlEvent(), st, &fx))
	assert.Empty(t, st.records)
}

func TestTTLIgnoresOtherEvents(t *testing.T) {
	h := &ttlHandler{log: testLogger()}
	st := &protoState{records: []*ResourceRecord{
		NewTXTRecord("a._x._udp.local", []string{"k=v"}, 120),
	}}
	var fx effects

	require.NoError(t, h.Handle(browseEvent("_x._udp.local"), st, &fx))
	assert.Equal(t, uint32(120), st.records[0].TTL)
}

func TestExpiredPTRRemovesBrowseResult(t *testing.T) {
	h := &ttlHandler{log: testLogger()}
	ptr := NewPTRRecord("_x._udp.local", "a._x._udp.local", 0)
	st := &protoState{
		records: []*ResourceRecord{ptr},
		query: &Query{
			Name:     "_x._udp.local",
			Services: []Service{{Host: "a", Service: "_x", Protocol: "_udp", State: StateRegistered}},
		},
	}
	var fx effects

	err := h.Handle(ttlEvent(), st, &fx)
	assert.ErrorIs(t, err, ErrServiceRemoved)
	assert.Empty(t, st.query.Services)
	assert.Empty(t, st.records)
}
