package wire

import (
	"encoding/binary"
	"io"
)

// pingNonceVersion is the protocol version at or above which ping
// carries a nonce (BIP 0031); below it, ping is an empty keepalive.
const pingNonceVersion = 60000

// MsgPing is a keepalive, echoed back by the peer as pong once both
// sides negotiate a protocol version that carries a nonce.
type MsgPing struct {
	Nonce uint64
}

func NewMsgPing(nonce uint64) *MsgPing {
	return &MsgPing{Nonce: nonce}
}

func (m *MsgPing) BtcDecode(r io.Reader, pver uint32) error {
	if pver < pingNonceVersion {
		return nil
	}
	nonce, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.Nonce = nonce
	return nil
}

func (m *MsgPing) BtcEncode(w io.Writer, pver uint32) error {
	if pver < pingNonceVersion {
		return nil
	}
	return binarySerializer.PutUint64(w, binary.LittleEndian, m.Nonce)
}

func (m *MsgPing) Command() string { return CommandPing }

func (m *MsgPing) MaxPayloadLength(pver uint32) uint32 {
	if pver < pingNonceVersion {
		return 0
	}
	return 8
}
