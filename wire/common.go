// Package wire implements the byte-level encoding of the wire protocol:
// varints, hashes, addresses, and the ten recognized message types,
// plus the frame reader that turns a raw byte stream into decoded
// messages and the writer that turns messages back into frames.
package wire

import (
	"encoding/binary"
	"io"
)

const ioBufferPoolSize = 1024

// binaryFreeList is a pool of reusable 8-byte buffers backing the
// Uint8/16/32/64 helpers below, so decoding a stream of small fixed
// fields does not allocate one slice per field.
type binaryFreeList chan []byte

var binarySerializer binaryFreeList = make(chan []byte, ioBufferPoolSize)

func (l binaryFreeList) borrow() []byte {
	select {
	case buf := <-l:
		return buf[:8]
	default:
		return make([]byte, 8)
	}
}

func (l binaryFreeList) Return(buf []byte) {
	select {
	case l <- buf:
	default:
	}
}

func (l binaryFreeList) Uint8(r io.Reader) (uint8, error) {
	buf := l.borrow()[:1]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := buf[0]
	l.Return(buf)
	return rv, nil
}

func (l binaryFreeList) Uint16(r io.Reader, order binary.ByteOrder) (uint16, error) {
	buf := l.borrow()[:2]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := order.Uint16(buf)
	l.Return(buf)
	return rv, nil
}

func (l binaryFreeList) Uint32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	buf := l.borrow()[:4]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := order.Uint32(buf)
	l.Return(buf)
	return rv, nil
}

func (l binaryFreeList) Uint64(r io.Reader, order binary.ByteOrder) (uint64, error) {
	buf := l.borrow()[:8]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := order.Uint64(buf)
	l.Return(buf)
	return rv, nil
}

func (l binaryFreeList) PutUint8(w io.Writer, val uint8) error {
	buf := l.borrow()[:1]
	buf[0] = val
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

func (l binaryFreeList) PutUint16(w io.Writer, order binary.ByteOrder, val uint16) error {
	buf := l.borrow()[:2]
	order.PutUint16(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

func (l binaryFreeList) PutUint32(w io.Writer, order binary.ByteOrder, val uint32) error {
	buf := l.borrow()[:4]
	order.PutUint32(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

func (l binaryFreeList) PutUint64(w io.Writer, order binary.ByteOrder, val uint64) error {
	buf := l.borrow()[:8]
	order.PutUint64(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}
