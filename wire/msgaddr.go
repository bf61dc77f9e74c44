package wire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

// MaxAddrPerMsg bounds the number of addresses this core keeps from a
// decoded addr message. A peer may declare more than this on the
// wire; every declared entry is still read off the stream to keep the
// frame's byte accounting correct, but only the first MaxAddrPerMsg
// are retained.
const MaxAddrPerMsg = 1000

// maxAddrEntriesOnWire is a hard ceiling on what this core will read
// off the wire at all, independent of what it keeps, so a peer cannot
// force an unbounded read by declaring an absurd count.
const maxAddrEntriesOnWire = 10000

// MsgAddr carries a peer's known address list.
type MsgAddr struct {
	AddrList []*NetAddress
}

func NewMsgAddr() *MsgAddr {
	return &MsgAddr{AddrList: make([]*NetAddress, 0, MaxAddrPerMsg)}
}

func (m *MsgAddr) AddAddress(na *NetAddress) error {
	if len(m.AddrList)+1 > MaxAddrPerMsg {
		return errors.Errorf("too many addresses in message: max %d", MaxAddrPerMsg)
	}
	m.AddrList = append(m.AddrList, na)
	return nil
}

func (m *MsgAddr) BtcDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxAddrEntriesOnWire {
		return errors.Errorf("too many addresses declared: %d, max %d", count, maxAddrEntriesOnWire)
	}

	m.AddrList = make([]*NetAddress, 0, MaxAddrPerMsg)
	for i := uint64(0); i < count; i++ {
		na := &NetAddress{}
		if err := readNetAddress(r, pver, na, true); err != nil {
			return err
		}
		if uint64(len(m.AddrList)) < MaxAddrPerMsg {
			m.AddrList = append(m.AddrList, na)
		}
	}
	return nil
}

func (m *MsgAddr) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.AddrList)
	if pver < chaincfg.ProtocolVersionCutover && count > 1 {
		return errors.Errorf("too many addresses for protocol version %d: %d", pver, count)
	}
	if count > MaxAddrPerMsg {
		return errors.Errorf("too many addresses: %d, max %d", count, MaxAddrPerMsg)
	}
	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, na := range m.AddrList {
		if err := writeNetAddress(w, pver, na, true); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgAddr) Command() string { return CommandAddr }

func (m *MsgAddr) MaxPayloadLength(pver uint32) uint32 {
	if pver < chaincfg.ProtocolVersionCutover {
		return 9 + uint32(netAddressPayloadLen(pver, true))
	}
	return 9 + MaxAddrPerMsg*uint32(netAddressPayloadLen(pver, true))
}
