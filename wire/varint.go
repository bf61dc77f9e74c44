package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// ReadVarInt reads a variable length integer and returns it as a uint64,
// rejecting any encoding that is not the minimal one for its value.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binarySerializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	var result uint64
	switch discriminant {
	case 0xff:
		sv, err := binarySerializer.Uint64(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		result = sv
		if min := uint64(0x100000000); result < min {
			return 0, errors.Errorf("non-canonical varint %x - discriminant %x encodes a value less than %x", result, discriminant, min)
		}
	case 0xfe:
		sv, err := binarySerializer.Uint32(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		result = uint64(sv)
		if min := uint64(0x10000); result < min {
			return 0, errors.Errorf("non-canonical varint %x - discriminant %x encodes a value less than %x", result, discriminant, min)
		}
	case 0xfd:
		sv, err := binarySerializer.Uint16(r, binary.LittleEndian)
		if err != nil {
			return 0, err
		}
		result = uint64(sv)
		if min := uint64(0xfd); result < min {
			return 0, errors.Errorf("non-canonical varint %x - discriminant %x encodes a value less than %x", result, discriminant, min)
		}
	default:
		result = uint64(discriminant)
	}
	return result, nil
}

// WriteVarInt writes val using the shortest encoding that represents it.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binarySerializer.PutUint8(w, uint8(val))
	}
	if val <= math.MaxUint16 {
		if err := binarySerializer.PutUint8(w, 0xfd); err != nil {
			return err
		}
		return binarySerializer.PutUint16(w, binary.LittleEndian, uint16(val))
	}
	if val <= math.MaxUint32 {
		if err := binarySerializer.PutUint8(w, 0xfe); err != nil {
			return err
		}
		return binarySerializer.PutUint32(w, binary.LittleEndian, uint32(val))
	}
	if err := binarySerializer.PutUint8(w, 0xff); err != nil {
		return err
	}
	return binarySerializer.PutUint64(w, binary.LittleEndian, val)
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would emit for val.
func VarIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= math.MaxUint16 {
		return 3
	}
	if val <= math.MaxUint32 {
		return 5
	}
	return 9
}
