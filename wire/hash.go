package wire

import (
	"encoding/hex"
	"io"

	"github.com/btcsuite/fastsha256"
)

// HashSize is the length in bytes of a double-SHA256 hash, as used for
// block and transaction identifiers.
const HashSize = 32

// ChecksumSize is the length in bytes of a message checksum: the first
// four bytes of the double-SHA256 of the payload.
const ChecksumSize = 4

// Hash is a double-SHA256 digest, stored internally in the byte order
// it is produced in (not the reversed, human-displayed order).
type Hash [HashSize]byte

// String returns the byte-reversed hex encoding conventionally used to
// display block and transaction hashes.
func (h Hash) String() string {
	reversed := make([]byte, HashSize)
	for i := 0; i < HashSize; i++ {
		reversed[i] = h[HashSize-1-i]
	}
	return hex.EncodeToString(reversed)
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h *Hash) Serialize(w io.Writer) error {
	_, err := w.Write(h[:])
	return err
}

func (h *Hash) Deserialize(r io.Reader) error {
	_, err := io.ReadFull(r, h[:])
	return err
}

// DoubleSha256 returns SHA256(SHA256(b)).
func DoubleSha256(b []byte) [32]byte {
	first := fastsha256.Sum256(b)
	return fastsha256.Sum256(first[:])
}

// Checksum returns the first four bytes of DoubleSha256(payload), the
// value carried in a message header once a connection's version
// requires one.
func Checksum(payload []byte) [ChecksumSize]byte {
	sum := DoubleSha256(payload)
	var checksum [ChecksumSize]byte
	copy(checksum[:], sum[:ChecksumSize])
	return checksum
}
