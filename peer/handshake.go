package peer

import (
	"github.com/copernet/bitwire/chaincfg"
	"github.com/copernet/bitwire/errcode"
	"github.com/copernet/bitwire/log"
	"github.com/copernet/bitwire/wire"
)

// handleMessage routes one decoded message to the handshake logic (for
// version/verack) and then to the generic per-command dispatcher. Both
// happen on the same goroutine that read the frame, in the order
// frames arrived, satisfying the event-order invariant.
func (c *Connection) handleMessage(msg wire.Message) {
	switch m := msg.(type) {
	case *wire.MsgVersion:
		if err := c.handleVersion(m); err != nil {
			c.dispatcher.emit("error", c, err)
			c.Close()
			return
		}
	case *wire.MsgVerAck:
		c.handleVerAck(m)
	}

	c.dispatcher.emit(msg.Command(), c, msg)
}

// handleVersion processes an inbound version message: it rejects
// self-connects, negotiates sendVer as min(local, peer), and moves the
// connection to StateVersionExchanged. recvVer is deliberately NOT set
// here for a modern peer -- it is set on verack receipt, using the
// value already negotiated here, not a version field verack does not
// carry.
func (c *Connection) handleVersion(m *wire.MsgVersion) error {
	if sentNonces.Contains(m.Nonce) {
		return errcode.New(errcode.ErrorSelfConnect)
	}

	sendVer := c.localVersion
	if m.ProtocolVersion < sendVer {
		sendVer = m.ProtocolVersion
	}

	c.mu.Lock()
	c.peerVersion = m.ProtocolVersion
	c.sendVer = sendVer
	c.userAgent = m.UserAgent
	c.services = m.Services
	c.bestHeight = m.StartHeight
	legacy := m.ProtocolVersion < chaincfg.ProtocolVersionCutover
	if legacy {
		// A peer below the cutover never sends verack, so recvVer
		// would otherwise never be raised. It takes effect
		// immediately: legacy peers never gain a checksum field to
		// switch on anyway.
		c.recvVer = sendVer
	}
	c.state = StateVersionExchanged
	c.mu.Unlock()

	log.Debug("connection %s: negotiated protocol version %d", c, sendVer)

	if legacy {
		return nil
	}
	return c.sendVerAck()
}

// handleVerAck completes the handshake. Per this connection's
// resolution of an ambiguity common to implementations that key
// recvVer off a nonexistent field on verack itself: recvVer is set
// from the version already negotiated during the version exchange
// (sendVer), since verack carries no version of its own.
func (c *Connection) handleVerAck(m *wire.MsgVerAck) {
	c.mu.Lock()
	if c.sendVer > c.recvVer {
		c.recvVer = c.sendVer
	}
	c.state = StateActive
	c.mu.Unlock()

	log.Debug("connection %s: handshake complete, recvVer=%d sendVer=%d", c, c.RecvVer(), c.SendVer())
}
