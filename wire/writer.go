package wire

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

// WriteMessage encodes msg's payload, frames it with net's magic bytes
// and msg's command, and writes it to w. A checksum is included only
// when sendVer is at or above the version cutover.
func WriteMessage(w io.Writer, msg Message, sendVer uint32, net chaincfg.BitcoinNet) (int, error) {
	cmd := msg.Command()
	if len(cmd) > CommandSize {
		return 0, errors.Errorf("command %q is too long, max %d bytes", cmd, CommandSize)
	}

	var payloadBuf bytes.Buffer
	if err := msg.BtcEncode(&payloadBuf, sendVer); err != nil {
		return 0, err
	}
	payload := payloadBuf.Bytes()

	if len(payload) > MaxMessagePayload {
		return 0, errors.Errorf("payload for %s is %d bytes, exceeds maximum %d", cmd, len(payload), MaxMessagePayload)
	}
	if maxLen := msg.MaxPayloadLength(sendVer); uint32(len(payload)) > maxLen {
		return 0, errors.Errorf("payload for %s is %d bytes, exceeds its own maximum %d", cmd, len(payload), maxLen)
	}

	var frame bytes.Buffer
	magic := uint32(net)
	frame.WriteByte(byte(magic))
	frame.WriteByte(byte(magic >> 8))
	frame.WriteByte(byte(magic >> 16))
	frame.WriteByte(byte(magic >> 24))

	if err := writeCommand(&frame, cmd); err != nil {
		return 0, err
	}
	if err := writeLength(&frame, uint32(len(payload))); err != nil {
		return 0, err
	}
	if hasChecksumField(sendVer) {
		checksum := Checksum(payload)
		frame.Write(checksum[:])
	}
	frame.Write(payload)

	return w.Write(frame.Bytes())
}
