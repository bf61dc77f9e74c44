package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

// messageHeader is the fixed prefix of a frame, after the magic bytes
// have already been consumed by the framer's resync scan. Checksum is
// only meaningful once the connection's negotiated version requires one.
type messageHeader struct {
	Command     string
	Length      uint32
	Checksum    [ChecksumSize]byte
	HasChecksum bool
}

func readCommand(r io.Reader) (string, error) {
	var raw [CommandSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(raw[:], "\x00")), nil
}

func writeCommand(w io.Writer, command string) error {
	if len(command) > CommandSize {
		return errors.Errorf("command %q is too long, max %d bytes", command, CommandSize)
	}
	var raw [CommandSize]byte
	copy(raw[:], command)
	_, err := w.Write(raw[:])
	return err
}

// hasChecksumField reports whether a frame at protocol version pver
// carries a checksum field, per chaincfg.ProtocolVersionCutover.
func hasChecksumField(pver uint32) bool {
	return pver >= chaincfg.ProtocolVersionCutover
}

func readLength(r io.Reader) (uint32, error) {
	return binarySerializer.Uint32(r, binary.LittleEndian)
}

func writeLength(w io.Writer, length uint32) error {
	return binarySerializer.PutUint32(w, binary.LittleEndian, length)
}
