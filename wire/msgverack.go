package wire

import "io"

// MsgVerAck acknowledges a version message, completing the handshake.
type MsgVerAck struct{}

func (m *MsgVerAck) BtcDecode(r io.Reader, pver uint32) error { return nil }
func (m *MsgVerAck) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgVerAck) Command() string                          { return CommandVerAck }
func (m *MsgVerAck) MaxPayloadLength(pver uint32) uint32       { return 0 }

func NewMsgVerAck() *MsgVerAck { return &MsgVerAck{} }
