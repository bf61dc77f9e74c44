package wire

import (
	"bytes"
	"testing"

	"github.com/copernet/bitwire/chaincfg"
)

func fixedVer(v uint32) func() uint32 {
	return func() uint32 { return v }
}

func TestFramerRoundTripNoChecksum(t *testing.T) {
	var wireBuf bytes.Buffer
	msg := NewMsgVerAck()
	if _, err := WriteMessage(&wireBuf, msg, 100, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	framer := NewFramer(&wireBuf, chaincfg.MainNet, fixedVer(100))
	frame, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame.Command != CommandVerAck {
		t.Errorf("command = %q, want %q", frame.Command, CommandVerAck)
	}
	if len(frame.Payload) != 0 {
		t.Errorf("payload len = %d, want 0", len(frame.Payload))
	}
}

func TestFramerRoundTripWithChecksum(t *testing.T) {
	var wireBuf bytes.Buffer
	msg := NewMsgPing(555)
	if _, err := WriteMessage(&wireBuf, msg, 70012, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	framer := NewFramer(&wireBuf, chaincfg.MainNet, fixedVer(70012))
	frame, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame.Command != CommandPing {
		t.Errorf("command = %q, want %q", frame.Command, CommandPing)
	}
}

func TestFramerSkipsGarbageBeforeMagic(t *testing.T) {
	var wireBuf bytes.Buffer
	wireBuf.Write([]byte{0x00, 0x01, 0xff, 0xfe, 0xd9}) // garbage, including a byte that partially matches magic
	if _, err := WriteMessage(&wireBuf, NewMsgGetAddr(), 70012, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	framer := NewFramer(&wireBuf, chaincfg.MainNet, fixedVer(70012))
	frame, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame.GarbageLen != 5 {
		t.Errorf("GarbageLen = %d, want 5", frame.GarbageLen)
	}
	if frame.Command != CommandGetAddr {
		t.Errorf("command = %q, want %q", frame.Command, CommandGetAddr)
	}
}

func TestFramerDetectsChecksumMismatch(t *testing.T) {
	var wireBuf bytes.Buffer
	if _, err := WriteMessage(&wireBuf, NewMsgPing(1), 70012, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	raw := wireBuf.Bytes()
	// Corrupt the checksum field: magic(4) + command(12) + length(4) + checksum(4).
	raw[4+12+4] ^= 0xff

	framer := NewFramer(bytes.NewReader(raw), chaincfg.MainNet, fixedVer(70012))
	_, err := framer.ReadFrame()
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if _, ok := err.(*FrameError); !ok {
		t.Errorf("expected *FrameError, got %T: %v", err, err)
	}
}

func TestFramerResumesAfterFrameError(t *testing.T) {
	var firstBuf, secondBuf bytes.Buffer
	if _, err := WriteMessage(&firstBuf, NewMsgPing(1), 70012, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	first := firstBuf.Bytes()
	first[4+12+4] ^= 0xff // corrupt first frame's checksum

	if _, err := WriteMessage(&secondBuf, NewMsgGetAddr(), 70012, chaincfg.MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	full := append(append([]byte{}, first...), secondBuf.Bytes()...)

	framer := NewFramer(bytes.NewReader(full), chaincfg.MainNet, fixedVer(70012))
	if _, err := framer.ReadFrame(); err == nil {
		t.Fatal("expected first frame to error")
	}
	frame, err := framer.ReadFrame()
	if err != nil {
		t.Fatalf("second ReadFrame should succeed after resync: %v", err)
	}
	if frame.Command != CommandGetAddr {
		t.Errorf("command = %q, want %q", frame.Command, CommandGetAddr)
	}
}
