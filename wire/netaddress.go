package wire

import (
	"encoding/binary"
	"io"
	"net"
	"time"
)

// ServiceFlag is a bitmask of services a node advertises.
type ServiceFlag uint64

const (
	SFNodeNetwork ServiceFlag = 1 << iota
	SFNodeGetUtxo
	SFNodeBloomFilter
)

// NetAddress is a network endpoint as carried in version and addr
// messages: 26 bytes on the wire (30 once a timestamp is present).
type NetAddress struct {
	Timestamp time.Time
	Services  ServiceFlag
	IP        net.IP
	Port      uint16
}

// HasService reports whether flag is set on the address.
func (na *NetAddress) HasService(flag ServiceFlag) bool {
	return na.Services&flag == flag
}

// AddService sets flag on the address.
func (na *NetAddress) AddService(flag ServiceFlag) {
	na.Services |= flag
}

// NewNetAddress builds a NetAddress from a resolved TCP endpoint.
func NewNetAddress(addr *net.TCPAddr, services ServiceFlag) *NetAddress {
	return &NetAddress{
		Timestamp: time.Unix(time.Now().Unix(), 0),
		Services:  services,
		IP:        addr.IP,
		Port:      uint16(addr.Port),
	}
}

// readNetAddress reads a NetAddress. ts controls whether a leading
// timestamp field is present, matching the version message's bare
// addresses versus addr's timestamped ones; pver additionally gates
// the timestamp on protocol versions old enough to predate it.
func readNetAddress(r io.Reader, pver uint32, na *NetAddress, ts bool) error {
	if ts && pver >= chaincfgPeerAddressTimeVersion {
		secs, err := binarySerializer.Uint32(r, binary.LittleEndian)
		if err != nil {
			return err
		}
		na.Timestamp = time.Unix(int64(secs), 0)
	}

	services, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	na.Services = ServiceFlag(services)

	var ip [16]byte
	if _, err := io.ReadFull(r, ip[:]); err != nil {
		return err
	}
	na.IP = net.IP(ip[:])

	port, err := binarySerializer.Uint16(r, binary.BigEndian)
	if err != nil {
		return err
	}
	na.Port = port
	return nil
}

func writeNetAddress(w io.Writer, pver uint32, na *NetAddress, ts bool) error {
	if ts && pver >= chaincfgPeerAddressTimeVersion {
		if err := binarySerializer.PutUint32(w, binary.LittleEndian, uint32(na.Timestamp.Unix())); err != nil {
			return err
		}
	}

	if err := binarySerializer.PutUint64(w, binary.LittleEndian, uint64(na.Services)); err != nil {
		return err
	}

	var ip [16]byte
	if na.IP != nil {
		copy(ip[:], na.IP.To16())
	}
	if _, err := w.Write(ip[:]); err != nil {
		return err
	}

	return binarySerializer.PutUint16(w, binary.BigEndian, na.Port)
}

// netAddressPayloadLen returns the number of bytes readNetAddress
// would consume for the given version and timestamp mode.
func netAddressPayloadLen(pver uint32, ts bool) int {
	n := 26
	if ts && pver >= chaincfgPeerAddressTimeVersion {
		n += 4
	}
	return n
}

// chaincfgPeerAddressTimeVersion is the protocol version at which addr
// entries (but not the version message's own address fields) gained a
// leading timestamp: protocol version 31402. This is later than the
// addr message's multi-address form, which MsgAddr gates on
// chaincfg.ProtocolVersionCutover.
const chaincfgPeerAddressTimeVersion = 31402
