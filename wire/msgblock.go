package wire

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
)

const blockHeaderLen = 4 + HashSize + HashSize + 4 + 4 + 4

const maxTxPerBlock = (MaxMessagePayload / 60) + 1

// BlockHeader is the fixed 80-byte preamble of a block.
type BlockHeader struct {
	Version    uint32
	PrevBlock  Hash
	MerkleRoot Hash
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
}

// BlockHash returns the double-SHA256 of the serialized header, the
// identifier a peer uses in inv and getblocks messages.
func (h *BlockHeader) BlockHash() Hash {
	var buf writeCounter
	h.serialize(&buf)
	return Hash(DoubleSha256(buf.bytes))
}

func (h *BlockHeader) deserialize(r io.Reader) error {
	version, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	h.Version = version

	if err := h.PrevBlock.Deserialize(r); err != nil {
		return err
	}
	if err := h.MerkleRoot.Deserialize(r); err != nil {
		return err
	}

	secs, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(secs), 0)

	bits, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	h.Bits = bits

	nonce, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	h.Nonce = nonce
	return nil
}

func (h *BlockHeader) serialize(w io.Writer) error {
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, h.Version); err != nil {
		return err
	}
	if err := h.PrevBlock.Serialize(w); err != nil {
		return err
	}
	if err := h.MerkleRoot.Serialize(w); err != nil {
		return err
	}
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, uint32(h.Timestamp.Unix())); err != nil {
		return err
	}
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, h.Bits); err != nil {
		return err
	}
	return binarySerializer.PutUint32(w, binary.LittleEndian, h.Nonce)
}

// MsgBlock is a full block: header plus transaction list. Size is the
// payload's on-wire byte length, retained for downstream cost
// accounting rather than recomputed on every access.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Size         uint32
}

func NewMsgBlock(header *BlockHeader) *MsgBlock {
	return &MsgBlock{Header: *header}
}

func (m *MsgBlock) AddTransaction(tx *MsgTx) {
	m.Transactions = append(m.Transactions, tx)
}

func (m *MsgBlock) BtcDecode(r io.Reader, pver uint32) error {
	counting, ok := r.(*countingReader)
	if !ok {
		counting = newCountingReader(r)
	}

	if err := m.Header.deserialize(counting); err != nil {
		return err
	}

	txCount, err := ReadVarInt(counting)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		return errors.Errorf("too many transactions to fit in a block: %d, max %d", txCount, maxTxPerBlock)
	}

	m.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := &MsgTx{}
		if err := tx.BtcDecode(counting, pver); err != nil {
			return err
		}
		m.Transactions = append(m.Transactions, tx)
	}

	m.Size = uint32(counting.n)
	return nil
}

func (m *MsgBlock) BtcEncode(w io.Writer, pver uint32) error {
	if err := m.Header.serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(m.Transactions))); err != nil {
		return err
	}
	for _, tx := range m.Transactions {
		if err := tx.BtcEncode(w, pver); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgBlock) Command() string { return CommandBlock }

func (m *MsgBlock) MaxPayloadLength(pver uint32) uint32 {
	return MaxMessagePayload
}

// countingReader tracks how many bytes have passed through it, used to
// recover a decoded block's on-wire payload length without a second pass.
type countingReader struct {
	r io.Reader
	n int
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: r}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
