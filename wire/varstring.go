package wire

import (
	"io"

	"github.com/pkg/errors"
)

// MaxMessagePayload is the largest payload this core will allocate a
// buffer for, regardless of what a frame header declares.
const MaxMessagePayload = 1024 * 1024 * 32

// MaxUserAgentLen bounds a version message's user agent string.
const MaxUserAgentLen = 256

func readVarString(r io.Reader) (string, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if count > MaxMessagePayload {
		return "", errors.Errorf("variable length string is too long: %d bytes, max %d", count, MaxMessagePayload)
	}
	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeVarString(w io.Writer, s string) error {
	if err := WriteVarInt(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}
