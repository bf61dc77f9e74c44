package wire

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// OutpointSize is the size in bytes of a TxIn's outpoint: a 32-byte
// hash followed by a 4-byte little-endian output index.
const OutpointSize = HashSize + 4

const maxTxInPerMessage = (MaxMessagePayload / 41) + 1
const maxTxOutPerMessage = (MaxMessagePayload / 9) + 1
const maxScriptSize = MaxMessagePayload

// Outpoint identifies the previous output a TxIn spends.
type Outpoint struct {
	Hash  Hash
	Index uint32
}

// TxIn is one input of a transaction.
type TxIn struct {
	PreviousOutPoint Outpoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut is one output of a transaction.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// MsgTx is a Bitcoin-style transaction: a fixed version and lock time
// bracketing variable-length input and output lists.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

func NewMsgTx() *MsgTx {
	return &MsgTx{Version: 1}
}

// TxHash returns the double-SHA256 of the serialized transaction, the
// identifier used in inv vectors and getdata requests.
func (m *MsgTx) TxHash() Hash {
	var buf writeCounter
	m.BtcEncode(&buf, 0)
	return Hash(DoubleSha256(buf.bytes))
}

func (m *MsgTx) BtcDecode(r io.Reader, pver uint32) error {
	version, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.Version = version

	txInCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txInCount > maxTxInPerMessage {
		return errors.Errorf("too many transaction inputs: %d, max %d", txInCount, maxTxInPerMessage)
	}
	m.TxIn = make([]*TxIn, 0, txInCount)
	for i := uint64(0); i < txInCount; i++ {
		ti := &TxIn{}
		if err := readTxIn(r, ti); err != nil {
			return err
		}
		m.TxIn = append(m.TxIn, ti)
	}

	txOutCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txOutCount > maxTxOutPerMessage {
		return errors.Errorf("too many transaction outputs: %d, max %d", txOutCount, maxTxOutPerMessage)
	}
	m.TxOut = make([]*TxOut, 0, txOutCount)
	for i := uint64(0); i < txOutCount; i++ {
		to := &TxOut{}
		if err := readTxOut(r, to); err != nil {
			return err
		}
		m.TxOut = append(m.TxOut, to)
	}

	lockTime, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	m.LockTime = lockTime
	return nil
}

func (m *MsgTx) BtcEncode(w io.Writer, pver uint32) error {
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, m.Version); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(m.TxIn))); err != nil {
		return err
	}
	for _, ti := range m.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(m.TxOut))); err != nil {
		return err
	}
	for _, to := range m.TxOut {
		if err := writeTxOut(w, to); err != nil {
			return err
		}
	}
	return binarySerializer.PutUint32(w, binary.LittleEndian, m.LockTime)
}

func (m *MsgTx) Command() string { return CommandTx }

func (m *MsgTx) MaxPayloadLength(pver uint32) uint32 {
	return MaxMessagePayload
}

func readTxIn(r io.Reader, ti *TxIn) error {
	if err := ti.PreviousOutPoint.Hash.Deserialize(r); err != nil {
		return err
	}
	index, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	ti.PreviousOutPoint.Index = index

	script, err := readScript(r)
	if err != nil {
		return err
	}
	ti.SignatureScript = script

	seq, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	ti.Sequence = seq
	return nil
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	if err := ti.PreviousOutPoint.Hash.Serialize(w); err != nil {
		return err
	}
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, ti.PreviousOutPoint.Index); err != nil {
		return err
	}
	if err := writeScript(w, ti.SignatureScript); err != nil {
		return err
	}
	return binarySerializer.PutUint32(w, binary.LittleEndian, ti.Sequence)
}

func readTxOut(r io.Reader, to *TxOut) error {
	value, err := binarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	to.Value = int64(value)

	script, err := readScript(r)
	if err != nil {
		return err
	}
	to.PkScript = script
	return nil
}

func writeTxOut(w io.Writer, to *TxOut) error {
	if err := binarySerializer.PutUint64(w, binary.LittleEndian, uint64(to.Value)); err != nil {
		return err
	}
	return writeScript(w, to.PkScript)
}

func readScript(r io.Reader) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxScriptSize {
		return nil, errors.Errorf("script is too long: %d bytes, max %d", count, maxScriptSize)
	}
	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeScript(w io.Writer, script []byte) error {
	if err := WriteVarInt(w, uint64(len(script))); err != nil {
		return err
	}
	_, err := w.Write(script)
	return err
}

// writeCounter is an io.Writer that just accumulates bytes, used to
// serialize a transaction once for hashing without an extra copy step.
type writeCounter struct {
	bytes []byte
}

func (w *writeCounter) Write(p []byte) (int, error) {
	w.bytes = append(w.bytes, p...)
	return len(p), nil
}
