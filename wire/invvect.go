package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxInvPerMsg bounds the number of entries an inv/getdata message may carry.
const MaxInvPerMsg = 50000

const invVectPayloadLen = 4 + HashSize

// InvType identifies what an InvVect describes.
type InvType uint32

const (
	InvTypeError InvType = 0
	InvTypeTx    InvType = 1
	InvTypeBlock InvType = 2
)

var invTypeStrings = map[InvType]string{
	InvTypeError: "ERROR",
	InvTypeTx:    "MSG_TX",
	InvTypeBlock: "MSG_BLOCK",
}

func (t InvType) String() string {
	if s, ok := invTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown inv type (%d)", uint32(t))
}

// InvVect describes one piece of data a peer has, wants, or is
// announcing, carried in inv, getdata, and notfound messages.
type InvVect struct {
	Type InvType
	Hash Hash
}

func NewInvVect(t InvType, hash *Hash) *InvVect {
	return &InvVect{Type: t, Hash: *hash}
}

func readInvVect(r io.Reader, iv *InvVect) error {
	typ, err := binarySerializer.Uint32(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	iv.Type = InvType(typ)
	return iv.Hash.Deserialize(r)
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	if err := binarySerializer.PutUint32(w, binary.LittleEndian, uint32(iv.Type)); err != nil {
		return err
	}
	return iv.Hash.Serialize(w)
}
