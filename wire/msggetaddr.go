package wire

import "io"

// MsgGetAddr requests the peer's known address list.
type MsgGetAddr struct{}

func (m *MsgGetAddr) BtcDecode(r io.Reader, pver uint32) error { return nil }
func (m *MsgGetAddr) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgGetAddr) Command() string                          { return CommandGetAddr }
func (m *MsgGetAddr) MaxPayloadLength(pver uint32) uint32       { return 0 }

func NewMsgGetAddr() *MsgGetAddr { return &MsgGetAddr{} }
