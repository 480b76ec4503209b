package dnssd

import (
	"errors"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbjohnson/clock"
)

// Result is one item of a Register or Browse stream: a service
// snapshot, or an error when something went wrong while producing it.
type Result struct {
	Service Service
	Err     error
}

// command is a public API call on its way into the event loop,
// pairing the injected event with the stream results go out on.
type command struct {
	ev     *Event
	stream chan Result
}

// pendingTimer is one armed per-state timer. Timers are never
// cancelled; a timer whose tag no longer matches the current state is
// discarded by the handlers' tag check when it fires.
type pendingTimer struct {
	deadline time.Time
	tag      ServiceState
	delay    time.Duration
}

// Client drives the mDNS protocol over a single multicast socket. All
// protocol state is owned by one event loop goroutine which
// multiplexes inbound datagrams, API commands, per-state timers and
// the 1s TTL tick into a single event stream dispatched through the
// handler chain.
type Client struct {
	log   *log.Logger
	clock clock.Clock
	conn  Conn

	cmds  chan command
	chain chain
	st    protoState

	timers []pendingTimer

	// stream bookkeeping, loop-local
	regStream    chan Result
	browseStream chan Result
	lastState    ServiceState
	emitted      int

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// NewClient creates a client and starts its event loop. With a nil or
// zero config it binds 224.0.0.251:5353 itself; a bind or group join
// failure surfaces as an error here, wrapped as ErrAddressAlreadyTaken
// when the port is occupied.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if err := config.withDefaults(); err != nil {
		return nil, errors.Join(ErrAddressAlreadyTaken, err)
	}

	c := &Client{
		log:       config.Logger,
		clock:     config.Clock,
		conn:      config.Conn,
		cmds:      make(chan command),
		lastState: ServiceState(-1),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.chain = chain{
		&registerHandler{log: c.log},
		&probeHandler{log: c.log},
		&announceHandler{log: c.log},
		&goodbyeHandler{log: c.log},
		&browseHandler{log: c.log},
		&ttlHandler{log: c.log},
	}

	go c.run()
	return c, nil
}

// Register advertises a service on the local network and returns a
// stream of registration snapshots. The stream reports every state
// change up to Registered; registering again replaces the previous
// registration. Results must be drained or buffered by the caller.
func (c *Client) Register(host, service, protocol string, port uint16, txtRecords []string) <-chan Result {
	stream := make(chan Result, 16)
	ev := registerEvent(host, service, protocol, port, txtRecords)
	select {
	case c.cmds <- command{ev: ev, stream: stream}:
	case <-c.done:
		stream <- Result{Err: ErrClosing}
		close(stream)
	}
	return stream
}

// Browse searches for instances of a service type, e.g.
// "_airplay._tcp.local", and returns a stream of discovered services.
// Browsing again replaces the previous query.
func (c *Client) Browse(name string) <-chan Result {
	stream := make(chan Result, 16)
	select {
	case c.cmds <- command{ev: browseEvent(name), stream: stream}:
	case <-c.done:
		stream <- Result{Err: ErrClosing}
		close(stream)
	}
	return stream
}

// Close shuts the client down. It blocks while the goodbye message for
// a live registration is dispatched and flushed, then releases the
// socket. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closing)
		<-c.done
		err = c.conn.Close()
	})
	return err
}

// run is the event loop. Exactly one of the four sources is resolved
// into an Event per iteration; the chain runs once per event and its
// effects are applied before the next wait.
func (c *Client) run() {
	defer close(c.done)

	tick := c.clock.Ticker(ttlInterval)
	defer tick.Stop()

	for {
		var timer *clock.Timer
		var timerC <-chan time.Time
		next := c.nextTimer()
		if next >= 0 {
			wait := c.timers[next].deadline.Sub(c.clock.Now())
			if wait < 0 {
				wait = 0
			}
			timer = c.clock.Timer(wait)
			timerC = timer.C
		}

		var ev *Event
		select {
		case <-c.closing:
			c.shutdown()
			return

		case pkt, ok := <-c.conn.Packets():
			if !ok {
				// Socket gone from under us; unwind as a close.
				c.shutdown()
				return
			}
			msg, err := parseMessage(pkt.Data)
			if err != nil {
				c.log.Warnf("dropping packet from %v: %v", pkt.Src, err)
				c.emit(err)
				break
			}
			ev = messageEvent(msg)

		case cmd := <-c.cmds:
			c.attach(cmd)
			ev = cmd.ev

		case <-timerC:
			fired := c.timers[next]
			c.timers = append(c.timers[:next], c.timers[next+1:]...)
			ev = timeElapsedEvent(fired.tag, fired.delay)

		case <-tick.C:
			ev = ttlEvent()
		}

		if timer != nil {
			timer.Stop()
		}
		if ev == nil {
			continue
		}

		c.dispatch(ev)
	}
}

// dispatch runs one event through the chain and applies its effects.
func (c *Client) dispatch(ev *Event) {
	c.log.Debugf("event %s", ev)

	var fx effects
	err := c.chain.dispatch(ev, &c.st, &fx)

	for _, t := range fx.timeouts {
		c.timers = append(c.timers, pendingTimer{
			deadline: c.clock.Now().Add(t.delay),
			tag:      t.state,
			delay:    t.delay,
		})
	}
	for _, m := range fx.queue {
		if sendErr := c.conn.Send(m.Bytes()); sendErr != nil {
			c.log.Warnf("failed to send message: %v", sendErr)
		}
	}

	c.emit(err)
}

// shutdown performs the final Closing dispatch so the goodbye handler
// fires, flushes its message and ends the streams. Runs exactly once,
// from the loop goroutine, while Close blocks on done.
func (c *Client) shutdown() {
	c.dispatch(closingEvent())
	c.emit(ErrClosing)
	if c.regStream != nil {
		close(c.regStream)
	}
	if c.browseStream != nil {
		close(c.browseStream)
	}
}

// attach wires a command's stream to its slot, replacing any previous
// stream the way the command replaces the slot itself.
func (c *Client) attach(cmd command) {
	switch cmd.ev.Kind {
	case EventRegister:
		if c.regStream != nil {
			close(c.regStream)
		}
		c.regStream = cmd.stream
		c.lastState = ServiceState(-1)
	case EventBrowse:
		if c.browseStream != nil {
			close(c.browseStream)
		}
		c.browseStream = cmd.stream
		c.emitted = 0
	}
}

// emit pushes new snapshots and errors onto the open streams without
// ever blocking the loop.
func (c *Client) emit(err error) {
	if err != nil {
		r := Result{Err: err}
		if errors.Is(err, ErrServiceRemoved) {
			c.offer(c.browseStream, r)
			return
		}
		c.offer(c.regStream, r)
		c.offer(c.browseStream, r)
		return
	}

	if c.regStream != nil && c.st.registration != nil && c.st.registration.State != c.lastState {
		c.lastState = c.st.registration.State
		c.offer(c.regStream, Result{Service: *c.st.registration})
	}
	if c.browseStream != nil && c.st.query != nil {
		for ; c.emitted < len(c.st.query.Services); c.emitted++ {
			c.offer(c.browseStream, Result{Service: c.st.query.Services[c.emitted]})
		}
	}
}

func (c *Client) offer(stream chan Result, r Result) {
	if stream == nil {
		return
	}
	select {
	case stream <- r:
	default:
		c.log.Debugf("stream full, dropping result")
	}
}

// nextTimer returns the index of the earliest pending timer, -1 when
// none are armed.
func (c *Client) nextTimer() int {
	next := -1
	for i, t := range c.timers {
		if next < 0 || t.deadline.Before(c.timers[next].deadline) {
			next = i
		}
	}
	return next
}
