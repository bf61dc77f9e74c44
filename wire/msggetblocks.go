package wire

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

// MaxBlockLocatorsPerMsg bounds the number of locator hashes a
// getblocks message may carry.
const MaxBlockLocatorsPerMsg = 500

// MsgGetBlocks requests an inv of block hashes starting after the
// first locator hash the receiver recognizes, up to HashStop.
type MsgGetBlocks struct {
	ProtocolVersion uint32
	BlockLocator    []Hash
	HashStop        Hash
}

func NewMsgGetBlocks(hashStop *Hash) *MsgGetBlocks {
	return &MsgGetBlocks{
		ProtocolVersion: chaincfg.CurrentProtocolVersion,
		BlockLocator:    make([]Hash, 0, MaxBlockLocatorsPerMsg),
		HashStop:        *hashStop,
	}
}

func (m *MsgGetBlocks) AddBlockLocatorHash(hash *Hash) error {
	if len(m.BlockLocator)+1 > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes: max %d", MaxBlockLocatorsPerMsg)
	}
	m.BlockLocator = append(m.BlockLocator, *hash)
	return nil
}

func (m *MsgGetBlocks) BtcDecode(r io.Reader, pver uint32) error {
	pv, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.ProtocolVersion = pv

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes declared: %d, max %d", count, MaxBlockLocatorsPerMsg)
	}

	locator := make([]Hash, count)
	m.BlockLocator = make([]Hash, 0, count)
	for i := range locator {
		if err := locator[i].Deserialize(r); err != nil {
			return err
		}
		m.BlockLocator = append(m.BlockLocator, locator[i])
	}

	return m.HashStop.Deserialize(r)
}

func (m *MsgGetBlocks) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.BlockLocator)
	if count > MaxBlockLocatorsPerMsg {
		return errors.Errorf("too many block locator hashes: %d, max %d", count, MaxBlockLocatorsPerMsg)
	}
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, m.ProtocolVersion); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for i := range m.BlockLocator {
		if err := m.BlockLocator[i].Serialize(w); err != nil {
			return err
		}
	}
	return m.HashStop.Serialize(w)
}

func (m *MsgGetBlocks) Command() string { return CommandGetBlocks }

func (m *MsgGetBlocks) MaxPayloadLength(pver uint32) uint32 {
	return 4 + 9 + MaxBlockLocatorsPerMsg*HashSize + HashSize
}
