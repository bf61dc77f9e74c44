package wire

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

const maxVersionPayload = 33 + 2*30 + 9 + MaxUserAgentLen

// MsgVersion is the first message exchanged on a connection,
// announcing protocol version, services, and identity.
type MsgVersion struct {
	ProtocolVersion uint32
	Services        ServiceFlag
	Timestamp       time.Time
	AddrRecv        NetAddress
	AddrFrom        NetAddress
	Nonce           uint64
	UserAgent       string
	StartHeight     int32
	DisableRelay    bool
}

// NewMsgVersion builds an outbound version message. lastBlock is the
// height this process reports as its own; the caller supplies it, as
// this core performs no chain-tip lookup.
func NewMsgVersion(me, you *NetAddress, nonce uint64, lastBlock int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: chaincfg.CurrentProtocolVersion,
		Services:        0,
		Timestamp:       time.Unix(time.Now().Unix(), 0),
		AddrRecv:        *you,
		AddrFrom:        *me,
		Nonce:           nonce,
		UserAgent:       chaincfg.DefaultUserAgent,
		StartHeight:     lastBlock,
		DisableRelay:    false,
	}
}

func (m *MsgVersion) HasService(f ServiceFlag) bool {
	return m.Services&f == f
}

func (m *MsgVersion) AddService(f ServiceFlag) {
	m.Services |= f
}

func (m *MsgVersion) BtcDecode(r io.Reader, pver uint32) error {
	pv, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.ProtocolVersion = pv

	services, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.Services = ServiceFlag(services)

	secs, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.Timestamp = time.Unix(int64(secs), 0)

	if err := readNetAddress(r, pver, &m.AddrRecv, false); err != nil {
		return err
	}
	if err := readNetAddress(r, pver, &m.AddrFrom, false); err != nil {
		return err
	}

	nonce, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.Nonce = nonce

	userAgent, err := readVarString(r)
	if err != nil {
		return err
	}
	if len(userAgent) > MaxUserAgentLen {
		return errors.Errorf("user agent too long: %d bytes, max %d", len(userAgent), MaxUserAgentLen)
	}
	m.UserAgent = userAgent

	lastBlock, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.StartHeight = int32(lastBlock)

	relay, err := readBool(r)
	if err != nil {
		if err == io.EOF {
			m.DisableRelay = false
			return nil
		}
		return err
	}
	m.DisableRelay = !relay
	return nil
}

func (m *MsgVersion) BtcEncode(w io.Writer, pver uint32) error {
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, m.ProtocolVersion); err != nil {
		return err
	}
	if err := binarySerializer.PutUint64(w, binary.LittleEndian, uint64(m.Services)); err != nil {
		return err
	}
	if err := binarySerializer.PutUint64(w, binary.LittleEndian, uint64(m.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &m.AddrRecv, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &m.AddrFrom, false); err != nil {
		return err
	}
	if err := binarySerializer.PutUint64(w, binary.LittleEndian, m.Nonce); err != nil {
		return err
	}
	if err := writeVarString(w, m.UserAgent); err != nil {
		return err
	}
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, uint32(m.StartHeight)); err != nil {
		return err
	}
	return writeBool(w, !m.DisableRelay)
}

func (m *MsgVersion) Command() string { return CommandVersion }

func (m *MsgVersion) MaxPayloadLength(pver uint32) uint32 {
	return maxVersionPayload
}

func readBool(r io.Reader) (bool, error) {
	v, err := binarySerializer.Uint8(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func writeBool(w io.Writer, v bool) error {
	if v {
		return binarySerializer.PutUint8(w, 1)
	}
	return binarySerializer.PutUint8(w, 0)
}
