// Package peer drives one connection's state machine: it negotiates
// the version/verack handshake, tracks recvVer/sendVer independently,
// and dispatches decoded messages to registered listeners in on-wire
// order.
package peer

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru"

	"github.com/copernet/bitwire/chaincfg"
	"github.com/copernet/bitwire/log"
	"github.com/copernet/bitwire/wire"
)

// sentNonces remembers nonces this process has placed in outbound
// version messages, across every Connection, so an inbound version
// echoing one of them can be recognized as a connection back to
// ourselves rather than a distinct peer.
var sentNonces, _ = lru.New(50)

var nodeIDCounter int32

// State is the position of a Connection in its handshake.
type State int

const (
	StateFresh State = iota
	StateVersionExchanged
	StateActive
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateVersionExchanged:
		return "version-exchanged"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Connection is one peer-to-peer socket and the parser/dispatch state
// bound to it.
type Connection struct {
	id      int32
	conn    net.Conn
	params  *chaincfg.Params
	inbound bool

	localNonce   uint64
	localVersion uint32

	mu          sync.Mutex
	state       State
	recvVer     uint32
	sendVer     uint32
	peerVersion uint32
	userAgent   string
	bestHeight  int32
	services    wire.ServiceFlag

	dispatcher *dispatcher

	bytesSent     uint64
	bytesReceived uint64

	writeMu sync.Mutex
}

// Config bundles what a Connection needs to identify itself to a peer.
type Config struct {
	Params       *chaincfg.Params
	LocalVersion uint32
	Nonce        uint64
	UserAgent    string
	DisableRelay bool
	StartHeight  int32
}

// NewInboundConnection wraps an accepted socket.
func NewInboundConnection(conn net.Conn, cfg *Config) *Connection {
	return newConnection(conn, cfg, true)
}

// NewOutboundConnection wraps a dialed socket.
func NewOutboundConnection(conn net.Conn, cfg *Config) *Connection {
	return newConnection(conn, cfg, false)
}

func newConnection(conn net.Conn, cfg *Config, inbound bool) *Connection {
	c := &Connection{
		id:           atomic.AddInt32(&nodeIDCounter, 1),
		conn:         conn,
		params:       cfg.Params,
		inbound:      inbound,
		localNonce:   cfg.Nonce,
		localVersion: cfg.LocalVersion,
		dispatcher:   newDispatcher(),
	}
	return c
}

func (c *Connection) ID() int32 { return c.id }

func (c *Connection) String() string {
	direction := "outbound"
	if c.inbound {
		direction = "inbound"
	}
	addr := "<nil>"
	if c.conn != nil {
		addr = c.conn.RemoteAddr().String()
	}
	return fmt.Sprintf("%s (%s)", addr, direction)
}

func (c *Connection) Inbound() bool { return c.inbound }

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Connection) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Active reports whether the handshake has completed. Invariant: this
// only becomes true on or after this connection's own receipt of
// verack.
func (c *Connection) Active() bool {
	return c.State() == StateActive
}

// RecvVer returns the protocol version currently governing frames read
// from this connection. It is read fresh by the framer on every frame,
// so a change made mid-handshake takes effect on the very next one.
func (c *Connection) RecvVer() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recvVer
}

func (c *Connection) setRecvVer(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v > c.recvVer {
		c.recvVer = v
	}
}

// SendVer returns the protocol version this connection uses to frame
// outbound messages.
func (c *Connection) SendVer() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendVer
}

func (c *Connection) setSendVer(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v > c.sendVer {
		c.sendVer = v
	}
}

func (c *Connection) BestHeight() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bestHeight
}

func (c *Connection) UserAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userAgent
}

// On registers fn to be invoked, in registration order, whenever event
// fires on this connection. Event names are "connect", "disconnect",
// "error", or a recognized command name.
func (c *Connection) On(event string, fn EventHandler) {
	c.dispatcher.on(event, fn)
}

// Close tears down the underlying socket. Any in-flight read loop will
// observe the resulting error and emit "disconnect".
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Connection) recordBytesSent(n int) {
	atomic.AddUint64(&c.bytesSent, uint64(n))
}

func (c *Connection) recordBytesReceived(n int) {
	atomic.AddUint64(&c.bytesReceived, uint64(n))
}

func (c *Connection) BytesSent() uint64     { return atomic.LoadUint64(&c.bytesSent) }
func (c *Connection) BytesReceived() uint64 { return atomic.LoadUint64(&c.bytesReceived) }

// Run drives the connection's read loop until the socket ends or
// errors: it reads frames sequentially, decodes and dispatches them,
// and finally emits "disconnect". It blocks until the connection ends.
//
// Outbound connections should call SendVersion and let it emit
// "connect" before calling Run; Run itself never emits "connect", to
// match this layer's contract that connect fires only once the local
// version has actually gone out on the wire.
func (c *Connection) Run() {
	framer := wire.NewFramer(c.conn, c.params.Net, c.RecvVer)
	for {
		if c.Active() {
			c.conn.SetReadDeadline(time.Time{})
		} else {
			c.conn.SetReadDeadline(time.Now().Add(timeoutDeadline))
		}

		frame, err := framer.ReadFrame()
		if err != nil {
			if fe, ok := err.(*wire.FrameError); ok {
				log.Debug("connection %s: discarding frame: %v", c, fe)
				continue
			}
			if err != io.EOF {
				c.dispatcher.emit("error", c, err)
			}
			break
		}
		c.recordBytesReceived(len(frame.Payload))
		c.handleFrame(frame)
	}

	c.dispatcher.emit("disconnect", c, nil)
}

func (c *Connection) handleFrame(frame *wire.Frame) {
	if frame.GarbageLen > 0 {
		log.Debug("connection %s: skipped %d bytes of garbage before %s", c, frame.GarbageLen, frame.Command)
	}

	msg, err := wire.DecodeCommand(frame.Command, frame.Payload, c.RecvVer())
	if err != nil {
		log.Debug("connection %s: dropping malformed %s: %v", c, frame.Command, err)
		return
	}
	if msg == nil {
		log.Debug("connection %s: dropping unrecognized command %s", c, frame.Command)
		return
	}

	c.handleMessage(msg)
}

// timeoutDeadline is applied to reads during the handshake window so a
// peer that never speaks does not tie up a Connection forever. It is
// not applied once the connection is active.
const timeoutDeadline = 30 * time.Second
