package wire

import "io"

// MsgGetData requests the full data for a list of inventory vectors,
// typically ones announced by an earlier inv.
type MsgGetData struct{ invList }

func NewMsgGetData() *MsgGetData {
	return &MsgGetData{invList{InvList: make([]*InvVect, 0, defaultInvListAlloc)}}
}

func (m *MsgGetData) BtcDecode(r io.Reader, pver uint32) error { return m.decode(r) }
func (m *MsgGetData) BtcEncode(w io.Writer, pver uint32) error { return m.encode(w) }
func (m *MsgGetData) Command() string                          { return CommandGetData }
func (m *MsgGetData) MaxPayloadLength(pver uint32) uint32       { return m.maxPayloadLength() }
