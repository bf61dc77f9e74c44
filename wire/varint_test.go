package wire

import (
	"bytes"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0xfc, 0xfd, 0xfe, 0xffff,
		0x10000, 0x10001, 0xffffffff,
		0x100000000, 0xffffffffffffffff,
	}
	for _, v := range values {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("WriteVarInt(%d): %v", v, err)
		}
		if buf.Len() != VarIntSerializeSize(v) {
			t.Errorf("value %d: wrote %d bytes, VarIntSerializeSize said %d", v, buf.Len(), VarIntSerializeSize(v))
		}
		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip: got %d want %d", got, v)
		}
	}
}

func TestVarIntRejectsNonCanonical(t *testing.T) {
	cases := [][]byte{
		{0xfd, 0xfc, 0x00}, // 0xfc fits in a single byte
		{0xfe, 0xff, 0xff, 0x00, 0x00}, // 0xffff fits in 0xfd form
		{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}, // 0xffffffff fits in 0xfe form
	}
	for i, c := range cases {
		if _, err := ReadVarInt(bytes.NewReader(c)); err == nil {
			t.Errorf("case %d: expected non-canonical encoding to be rejected", i)
		}
	}
}
