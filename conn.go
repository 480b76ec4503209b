package dnssd

import (
	"net"

	"github.com/apex/log"
	"golang.org/x/net/ipv4"
)

// Conn is the datagram channel the protocol engine works over:
// already bound to port 5353 and joined to the 224.0.0.251 multicast
// group. Socket creation and option handling live here so the event
// loop only ever sees Send/Packets.
type Conn interface {
	// Send writes one datagram to the multicast group.
	Send(b []byte) error

	// Packets yields inbound datagrams. The channel closes when the
	// conn is closed.
	Packets() <-chan Packet

	Close() error
}

// Packet is one inbound datagram with its source address.
type Packet struct {
	Data []byte
	Src  net.Addr
}

type udpConn struct {
	log     *log.Logger
	socket  *ipv4.PacketConn
	dstAddr *net.UDPAddr
	packets chan Packet
}

// newUDPConn binds the mDNS port with address reuse, joins the
// multicast group on every interface and starts the reader.
func newUDPConn(logger *log.Logger) (*udpConn, error) {
	l, err := net.ListenUDP("udp4", ipv4Addr)
	if err != nil {
		return nil, err
	}
	socket := ipv4.NewPacketConn(l)

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	joinErrCount := 0
	for i := range ifaces {
		if err = socket.JoinGroup(&ifaces[i], &net.UDPAddr{IP: net.IPv4(224, 0, 0, 251)}); err != nil {
			logger.Debugf("failed to join group on %s: %v", ifaces[i].Name, err)
			joinErrCount++
		}
	}
	if joinErrCount >= len(ifaces) {
		return nil, errJoiningGroup
	}

	dstAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(ipv4mdns, "5353"))
	if err != nil {
		return nil, err
	}

	c := &udpConn{
		log:     logger,
		socket:  socket,
		dstAddr: dstAddr,
		packets: make(chan Packet, 16),
	}
	go c.read()
	return c, nil
}

func (c *udpConn) Send(b []byte) error {
	_, err := c.socket.WriteTo(b, nil, c.dstAddr)
	return err
}

func (c *udpConn) Packets() <-chan Packet {
	return c.packets
}

func (c *udpConn) Close() error {
	return c.socket.Close()
}

func (c *udpConn) read() {
	defer close(c.packets)

	b := make([]byte, inboundBufferSize)
	for {
		n, _, src, err := c.socket.ReadFrom(b)
		if err != nil {
			return
		}
		data := make([]byte, n)
		copy(data, b[:n])
		c.packets <- Packet{Data: data, Src: src}
	}
}

// CheckUniqueResponder reports whether this process would be the only
// mDNS responder on the host. It binds port 5353 without address
// reuse; if that fails another responder already owns the port and
// ErrAddressAlreadyTaken is returned.
//
// RFC 6762 section 15.1.
func CheckUniqueResponder() error {
	l, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: mdnsPort})
	if err != nil {
		return ErrAddressAlreadyTaken
	}
	return l.Close()
}

// localIPv4 picks the interface address advertised in A records: the
// local source address a packet to the multicast group would use.
func localIPv4() net.IP {
	conn, err := net.Dial("udp4", net.JoinHostPort(ipv4mdns, "5353"))
	if err != nil {
		return nil
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.To4()
	}
	return nil
}
