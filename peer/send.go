package peer

import (
	"math/rand"
	"net"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/copernet/bitwire/log"
	"github.com/copernet/bitwire/wire"
)

// SendVersion builds and sends this connection's outbound version
// message, remembering its nonce so a later inbound version echoing it
// back can be recognized as a self-connect. For an outbound
// connection this is what triggers the "connect" event; the spec
// contract is that connect fires only once the local version has
// actually gone out on the wire.
func (c *Connection) SendVersion(startHeight int32) error {
	if c.localNonce == 0 {
		c.localNonce = rand.New(rand.NewSource(time.Now().UnixNano())).Uint64()
	}
	sentNonces.Add(c.localNonce, c.localNonce)

	remote := endpointNetAddress(c.conn.RemoteAddr())
	local := endpointNetAddress(c.conn.LocalAddr())

	msg := wire.NewMsgVersion(local, remote, c.localNonce, startHeight)
	msg.ProtocolVersion = c.localVersion

	if err := c.SendMessage(msg); err != nil {
		return err
	}

	if !c.inbound {
		c.dispatcher.emit("connect", c, nil)
	}
	return nil
}

// endpointNetAddress builds a bare wire.NetAddress (no timestamp, no
// services) from a socket endpoint for use in a version message's
// address fields.
func endpointNetAddress(addr net.Addr) *wire.NetAddress {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return &wire.NetAddress{IP: tcp.IP, Port: uint16(tcp.Port)}
	}
	return &wire.NetAddress{IP: net.IPv4zero}
}

func (c *Connection) sendVerAck() error {
	return c.SendMessage(wire.NewMsgVerAck())
}

func (c *Connection) SendGetBlocks(locator []wire.Hash, stop *wire.Hash) error {
	m := wire.NewMsgGetBlocks(stop)
	m.ProtocolVersion = c.SendVer()
	for i := range locator {
		if err := m.AddBlockLocatorHash(&locator[i]); err != nil {
			return err
		}
	}
	return c.SendMessage(m)
}

func (c *Connection) SendGetData(invs []*wire.InvVect) error {
	m := wire.NewMsgGetData()
	for _, iv := range invs {
		if err := m.AddInvVect(iv); err != nil {
			return err
		}
	}
	return c.SendMessage(m)
}

func (c *Connection) SendGetAddr() error {
	return c.SendMessage(wire.NewMsgGetAddr())
}

func (c *Connection) SendInv(items []*wire.InvVect) error {
	m := wire.NewMsgInv()
	for _, iv := range items {
		if err := m.AddInvVect(iv); err != nil {
			return err
		}
	}
	return c.SendMessage(m)
}

func (c *Connection) SendTx(tx *wire.MsgTx) error {
	return c.SendMessage(tx)
}

func (c *Connection) SendBlock(block *wire.MsgBlock) error {
	return c.SendMessage(block)
}

func (c *Connection) SendPing(nonce uint64) error {
	return c.SendMessage(wire.NewMsgPing(nonce))
}

// SendMessage frames and writes msg to the socket. Sends from a single
// connection serialize to the wire in call order; a failed send is
// reported to the caller and does not tear down the connection.
func (c *Connection) SendMessage(msg wire.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	log.Debug("connection %s: sending %s %s", c, msg.Command(), wire.MessageSummary(msg))
	log.Trace("connection %s: %s", c, spew.Sdump(msg))

	n, err := wire.WriteMessage(c.conn, msg, c.SendVer(), c.params.Net)
	if err != nil {
		return err
	}
	c.recordBytesSent(n)
	return nil
}
