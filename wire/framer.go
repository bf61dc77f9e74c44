package wire

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/copernet/bitwire/chaincfg"
)

// magicSize is the width in bytes of the network magic that opens
// every frame.
const magicSize = 4

// Frame is one decoded unit off the wire: a command name, its raw
// payload, and how much inter-message garbage preceded it. GarbageLen
// is diagnostic only; it is never an error by itself.
type Frame struct {
	Command    string
	Payload    []byte
	GarbageLen int
}

// FrameError reports a frame that was discarded without terminating
// the connection: a length mismatch or checksum failure. The framer
// has already resumed scanning for the next frame's magic by the time
// this is returned.
type FrameError struct {
	Command string
	Err     error
}

func (e *FrameError) Error() string {
	return "frame error on " + e.Command + ": " + e.Err.Error()
}

func (e *FrameError) Unwrap() error { return e.Err }

// Framer turns a byte stream for one network into a sequence of
// Frames, resynchronizing on the network's magic bytes whenever the
// stream is not currently aligned to a frame boundary. This has no
// direct precedent in the byte-oriented codecs this package's other
// files are grounded on -- those treat a magic mismatch as fatal --
// so its resync loop is original to this connection's requirements.
type Framer struct {
	r   *bufio.Reader
	net chaincfg.BitcoinNet

	// recvVer is read fresh on every frame so a version negotiated
	// mid-stream (crossing the verack boundary) takes effect on the
	// very next frame rather than waiting for a new Framer.
	recvVer func() uint32
}

// NewFramer wraps r as a Framer for the given network. recvVer is
// called once per frame to decide whether that frame carries a
// checksum; passing the connection's own version accessor lets the
// framer track the negotiated version live.
func NewFramer(r io.Reader, net chaincfg.BitcoinNet, recvVer func() uint32) *Framer {
	return &Framer{
		r:       bufio.NewReaderSize(r, 64*1024),
		net:     net,
		recvVer: recvVer,
	}
}

// magicBytes returns the 4 little-endian bytes of f.net.
func (f *Framer) magicBytes() [magicSize]byte {
	var b [magicSize]byte
	m := uint32(f.net)
	b[0] = byte(m)
	b[1] = byte(m >> 8)
	b[2] = byte(m >> 16)
	b[3] = byte(m >> 24)
	return b
}

// scanForMagic consumes bytes from f.r until it has just consumed a
// contiguous match of the network's magic. It returns the number of
// garbage bytes skipped before the match.
func (f *Framer) scanForMagic() (int, error) {
	magic := f.magicBytes()
	garbage := 0
	matched := 0
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return garbage, err
		}
		if b == magic[matched] {
			matched++
			if matched == magicSize {
				return garbage, nil
			}
			continue
		}
		// Fall back: the byte that broke the match may itself begin a
		// new match (e.g. magic = 0xAABBAABB and we just read AABB A).
		garbage += matched
		matched = 0
		if b == magic[0] {
			matched = 1
		} else {
			garbage++
		}
	}
}

// ReadFrame reads and returns the next frame, or a *FrameError if the
// frame's length or checksum did not check out (the connection stays
// alive and the next call to ReadFrame resumes scanning for magic).
// Any other error is a transport-level failure and the connection
// should be considered terminated.
func (f *Framer) ReadFrame() (*Frame, error) {
	garbageLen, err := f.scanForMagic()
	if err != nil {
		return nil, err
	}

	command, err := readCommand(f.r)
	if err != nil {
		return nil, err
	}

	payloadLen, err := readLength(f.r)
	if err != nil {
		return nil, err
	}

	pver := f.recvVer()
	var declaredChecksum [ChecksumSize]byte
	expectChecksum := hasChecksumField(pver)
	if expectChecksum {
		if _, err := io.ReadFull(f.r, declaredChecksum[:]); err != nil {
			return nil, err
		}
	}

	if payloadLen > MaxMessagePayload {
		return nil, &FrameError{Command: command, Err: errors.Errorf("declared payload length %d exceeds maximum %d", payloadLen, MaxMessagePayload)}
	}

	payload := make([]byte, payloadLen)
	n, err := io.ReadFull(f.r, payload)
	if err != nil {
		return nil, err
	}
	if uint32(n) != payloadLen {
		return nil, &FrameError{Command: command, Err: errors.Errorf("read %d bytes, declared length was %d", n, payloadLen)}
	}

	if expectChecksum {
		actual := Checksum(payload)
		if actual != declaredChecksum {
			return nil, &FrameError{Command: command, Err: errors.Errorf("checksum mismatch: header said %x, computed %x", declaredChecksum, actual)}
		}
	}

	return &Frame{Command: command, Payload: payload, GarbageLen: garbageLen}, nil
}
