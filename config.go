package dnssd

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/benbjohnson/clock"
)

// Config customizes a Client. The zero value is usable: NewClient fills
// in a cli logger, the wall clock and a fresh multicast socket.
type Config struct {
	// Logger receives protocol-level debug output.
	Logger *log.Logger

	// Clock drives the per-state timers and the 1s TTL tick.
	// Tests substitute a mock here.
	Clock clock.Clock

	// Conn is the bound, multicast-joined datagram channel. When nil,
	// NewClient creates one on 224.0.0.251:5353.
	Conn Conn
}

func (c *Config) withDefaults() error {
	if c.Logger == nil {
		c.Logger = &log.Logger{
			Handler: cli.New(os.Stdout),
			Level:   log.InfoLevel,
		}
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Conn == nil {
		conn, err := newUDPConn(c.Logger)
		if err != nil {
			return err
		}
		c.Conn = conn
	}
	return nil
}
