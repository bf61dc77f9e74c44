package peer

import (
	"net"

	"github.com/copernet/bitwire/log"
)

// Dial opens a TCP connection to addr and wraps it as an outbound
// Connection, sending the local version message before returning so
// the caller can rely on "connect" having already fired for any
// listener registered beforehand via On.
func Dial(addr string, cfg *Config) (*Connection, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	c := NewOutboundConnection(conn, cfg)
	if err := c.SendVersion(cfg.StartHeight); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Accept wraps an already-accepted socket as an inbound Connection.
// The caller is expected to register listeners and then call Run.
func Accept(conn net.Conn, cfg *Config) *Connection {
	return NewInboundConnection(conn, cfg)
}

// Listen accepts inbound connections on addr, handing each to handle
// on its own goroutine. It blocks until the listener errors or is closed.
func Listen(addr string, cfg *Config, handle func(*Connection)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		c := Accept(conn, cfg)
		log.Debug("accepted inbound connection from %s", conn.RemoteAddr())
		go handle(c)
	}
}
