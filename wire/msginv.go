package wire

import (
	"io"

	"github.com/pkg/errors"
)

const defaultInvListAlloc = 1000

// MsgInv announces inventory the sender has. MsgGetData, sharing the
// identical wire shape, requests inventory the sender wants; both are
// implemented as invList so the codec is written once.
type invList struct {
	InvList []*InvVect
}

func (m *invList) AddInvVect(iv *InvVect) error {
	if len(m.InvList)+1 > MaxInvPerMsg {
		return errors.Errorf("too many inv vectors: max %d", MaxInvPerMsg)
	}
	m.InvList = append(m.InvList, iv)
	return nil
}

func (m *invList) decode(r io.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxInvPerMsg {
		return errors.Errorf("too many inv vectors declared: %d, max %d", count, MaxInvPerMsg)
	}
	entries := make([]InvVect, count)
	m.InvList = make([]*InvVect, 0, count)
	for i := range entries {
		iv := &entries[i]
		if err := readInvVect(r, iv); err != nil {
			return err
		}
		m.InvList = append(m.InvList, iv)
	}
	return nil
}

func (m *invList) encode(w io.Writer) error {
	count := len(m.InvList)
	if count > MaxInvPerMsg {
		return errors.Errorf("too many inv vectors: %d, max %d", count, MaxInvPerMsg)
	}
	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, iv := range m.InvList {
		if err := writeInvVect(w, iv); err != nil {
			return err
		}
	}
	return nil
}

func (m *invList) maxPayloadLength() uint32 {
	return 9 + MaxInvPerMsg*(4+HashSize)
}

// MsgInv announces inventory the sender has available.
type MsgInv struct{ invList }

func NewMsgInv() *MsgInv {
	return &MsgInv{invList{InvList: make([]*InvVect, 0, defaultInvListAlloc)}}
}

func (m *MsgInv) BtcDecode(r io.Reader, pver uint32) error { return m.decode(r) }
func (m *MsgInv) BtcEncode(w io.Writer, pver uint32) error { return m.encode(w) }
func (m *MsgInv) Command() string                          { return CommandInv }
func (m *MsgInv) MaxPayloadLength(pver uint32) uint32       { return m.maxPayloadLength() }
