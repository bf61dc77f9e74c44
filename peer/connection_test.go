package peer

import (
	"net"
	"testing"
	"time"

	"github.com/copernet/bitwire/chaincfg"
	"github.com/copernet/bitwire/wire"
)

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateFresh:            "fresh",
		StateVersionExchanged: "version-exchanged",
		StateActive:           "active",
		State(99):             "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestCommandEventFiresAfterActive(t *testing.T) {
	c, remote := testConnection(t, true)
	defer remote.Close()

	var got *wire.MsgInv
	c.On(wire.CommandInv, func(conn *Connection, msg interface{}, err error) {
		got, _ = msg.(*wire.MsgInv)
	})

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	sendVersionFrom(t, remote, 60001, 999003, 0)
	ackFramer := wire.NewFramer(remote, chaincfg.MainNet, func() uint32 { return 0 })
	if _, err := ackFramer.ReadFrame(); err != nil {
		t.Fatalf("read connection's verack: %v", err)
	}
	if _, err := wire.WriteMessage(remote, wire.NewMsgVerAck(), 60001, chaincfg.MainNet); err != nil {
		t.Fatalf("write verack: %v", err)
	}
	waitFor(t, func() bool { return c.Active() })

	inv := wire.NewMsgInv()
	inv.AddInvVect(wire.NewInvVect(wire.InvTypeTx, &wire.Hash{1}))
	if _, err := wire.WriteMessage(remote, inv, c.RecvVer(), chaincfg.MainNet); err != nil {
		t.Fatalf("write inv: %v", err)
	}

	waitFor(t, func() bool { return got != nil })
	if len(got.InvList) != 1 {
		t.Errorf("got %d inv vectors, want 1", len(got.InvList))
	}

	remote.Close()
	<-done
}

func TestCorruptFrameDoesNotEmitCommandEventButLaterFramesStillWork(t *testing.T) {
	c, remote := testConnection(t, true)
	defer remote.Close()

	var invCount int
	c.On(wire.CommandInv, func(conn *Connection, msg interface{}, err error) { invCount++ })
	var errCount int
	c.On("error", func(conn *Connection, msg interface{}, err error) { errCount++ })

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	sendVersionFrom(t, remote, 60001, 999004, 0)
	ackFramer := wire.NewFramer(remote, chaincfg.MainNet, func() uint32 { return 0 })
	if _, err := ackFramer.ReadFrame(); err != nil {
		t.Fatalf("read connection's verack: %v", err)
	}
	if _, err := wire.WriteMessage(remote, wire.NewMsgVerAck(), 60001, chaincfg.MainNet); err != nil {
		t.Fatalf("write verack: %v", err)
	}
	waitFor(t, func() bool { return c.Active() })

	pver := c.RecvVer()

	badInv := wire.NewMsgInv()
	badInv.AddInvVect(wire.NewInvVect(wire.InvTypeTx, &wire.Hash{2}))
	var buf writeCounterConn
	if _, err := wire.WriteMessage(&buf, badInv, pver, chaincfg.MainNet); err != nil {
		t.Fatalf("build corrupt frame: %v", err)
	}
	buf.b[4+12+4] ^= 0xff // flip a checksum byte
	if _, err := remote.Write(buf.b); err != nil {
		t.Fatalf("write corrupt frame: %v", err)
	}

	goodInv := wire.NewMsgInv()
	goodInv.AddInvVect(wire.NewInvVect(wire.InvTypeTx, &wire.Hash{3}))
	if _, err := wire.WriteMessage(remote, goodInv, pver, chaincfg.MainNet); err != nil {
		t.Fatalf("write good inv: %v", err)
	}

	waitFor(t, func() bool { return invCount == 1 })
	if invCount != 1 {
		t.Errorf("invCount = %d, want exactly 1 (corrupt frame must not fire an inv event)", invCount)
	}

	remote.Close()
	<-done
}

// writeCounterConn is a minimal io.Writer used to build a raw frame
// buffer before deliberately corrupting a byte in it.
type writeCounterConn struct{ b []byte }

func (w *writeCounterConn) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

func TestCloseEndsRunLoop(t *testing.T) {
	c, remote := testConnection(t, true)

	var disconnected bool
	c.On("disconnect", func(conn *Connection, msg interface{}, err error) { disconnected = true })

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	remote.Close()
	c.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	if !disconnected {
		t.Error("disconnect event was not emitted")
	}
}

func TestSendVersionEmitsConnectForOutbound(t *testing.T) {
	local, remote := net.Pipe()
	cfg := &Config{Params: &chaincfg.MainNetParams, LocalVersion: 60002, Nonce: 55}
	c := NewOutboundConnection(local, cfg)

	var connected bool
	c.On("connect", func(conn *Connection, msg interface{}, err error) { connected = true })

	go func() {
		framer := wire.NewFramer(remote, chaincfg.MainNet, func() uint32 { return 0 })
		framer.ReadFrame()
	}()

	if err := c.SendVersion(0); err != nil {
		t.Fatalf("SendVersion: %v", err)
	}
	if !connected {
		t.Error("connect event should fire once the outbound version has been sent")
	}

	remote.Close()
	local.Close()
}
