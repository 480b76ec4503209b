package dnssd

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is an in-memory Conn. Sent datagrams are captured for
// inspection and inbound packets are injected through the channel.
type fakeConn struct {
	mu      sync.Mutex
	sent    [][]byte
	packets chan Packet
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{packets: make(chan Packet, 8)}
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *fakeConn) Packets() <-chan Packet {
	return c.packets
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.packets)
	}
	return nil
}

func (c *fakeConn) sentMessages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *fakeConn) inject(data []byte) {
	c.packets <- Packet{Data: data, Src: &net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: mdnsPort}}
}

func testClient(t *testing.T) (*Client, *fakeConn) {
	t.Helper()
	conn := newFakeConn()
	c, err := NewClient(&Config{Logger: testLogger(), Conn: conn})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, conn
}

// waitFor drains the stream until the predicate matches or the
// deadline passes.
func waitFor(t *testing.T, stream <-chan Result, timeout time.Duration, pred func(Result) bool) Result {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case r, ok := <-stream:
			if !ok {
				t.Fatal("stream closed before the expected result arrived")
			}
			if pred(r) {
				return r
			}
		case <-deadline:
			t.Fatal("timed out waiting for result")
		}
	}
}

func TestClientRegisterReachesRegistered(t *testing.T) {
	c, conn := testClient(t)

	stream := c.Register("mymachine", "_airplay", "_tcp", 7000, nil)
	r := waitFor(t, stream, 5*time.Second, func(r Result) bool {
		require.NoError(t, r.Err)
		return r.Service.State == StateRegistered
	})

	assert.Equal(t, "mymachine._airplay._tcp.local", r.Service.InstanceName())
	assert.Equal(t, uint16(7000), r.Service.Port)

	// Two probes then two announcements went out, in that order.
	sent := conn.sentMessages()
	require.Len(t, sent, 4)
	for i, data := range sent[:2] {
		msg, err := parseMessage(data)
		require.NoError(t, err)
		assert.False(t, msg.Header.QR, "message %d should be a probe query", i)
		require.Len(t, msg.Questions, 1)
		assert.Equal(t, "mymachine.local", msg.Questions[0].Name.String())
	}
	for i, data := range sent[2:] {
		msg, err := parseMessage(data)
		require.NoError(t, err)
		assert.True(t, msg.Header.QR, "message %d should be an announcement", i+2)
		require.Len(t, msg.Answers, 3)
	}
}

func TestClientCloseSendsGoodbye(t *testing.T) {
	conn := newFakeConn()
	c, err := NewClient(&Config{Logger: testLogger(), Conn: conn})
	require.NoError(t, err)

	stream := c.Register("mymachine", "_airplay", "_tcp", 7000, nil)
	waitFor(t, stream, 5*time.Second, func(r Result) bool {
		return r.Err == nil && r.Service.State == StateRegistered
	})

	require.NoError(t, c.Close())

	sent := conn.sentMessages()
	require.NotEmpty(t, sent)
	goodbye, err := parseMessage(sent[len(sent)-1])
	require.NoError(t, err)
	require.Len(t, goodbye.Answers, 3)
	for _, rec := range goodbye.Answers {
		assert.Equal(t, uint32(0), rec.TTL)
	}
}

func TestClientBrowseReceivesService(t *testing.T) {
	c, conn := testClient(t)

	stream := c.Browse("_airplay._tcp.local")
	// Let the browse command reach the loop before the packet does.
	time.Sleep(50 * time.Millisecond)

	remote := &Service{
		Host:     "tv",
		Service:  "_airplay",
		Protocol: "_tcp",
		Port:     7000,
		Addr:     net.IPv4(192, 168, 1, 20),
	}
	conn.inject(Announce(remote).Bytes())

	r := waitFor(t, stream, 2*time.Second, func(r Result) bool {
		return r.Err == nil
	})
	assert.Equal(t, "tv._airplay._tcp.local", r.Service.InstanceName())
	assert.Equal(t, uint16(7000), r.Service.Port)
	assert.True(t, r.Service.Addr.Equal(net.IPv4(192, 168, 1, 20)))
}

func TestClientReportsInvalidPackets(t *testing.T) {
	c, conn := testClient(t)

	stream := c.Browse("_airplay._tcp.local")
	time.Sleep(50 * time.Millisecond)

	conn.inject([]byte{0xde, 0xad})

	r := waitFor(t, stream, 2*time.Second, func(r Result) bool {
		return r.Err != nil
	})
	assert.ErrorIs(t, r.Err, ErrInvalidMessage)
}

func TestClientRegisterAfterClose(t *testing.T) {
	conn := newFakeConn()
	c, err := NewClient(&Config{Logger: testLogger(), Conn: conn})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	r := <-c.Register("mymachine", "_airplay", "_tcp", 7000, nil)
	assert.ErrorIs(t, r.Err, ErrClosing)

	r = <-c.Browse("_airplay._tcp.local")
	assert.ErrorIs(t, r.Err, ErrClosing)
}
