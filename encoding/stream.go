package encoding

import (
	"errors"
	"io"
)

var ErrOutOfRange = errors.New("offset out of range")

type Stream interface {
	Offset() uint64
	Skip(int) error
	Read([]byte) (int, error)
}

type bytesStream struct {
	data []byte
	off  int
}

// NewBytesStream reads from b starting at offset 0.
func NewBytesStream(b []byte) Stream {
	return &bytesStream{data: b}
}

// NewBytesStreamAt reads from b starting at off.
func NewBytesStreamAt(b []byte, off int) (Stream, error) {
	if off < 0 || off > len(b) {
		return nil, ErrOutOfRange
	}
	return &bytesStream{data: b, off: off}, nil
}

func (bs *bytesStream) Offset() uint64 {
	return uint64(bs.off)
}

func (bs *bytesStream) Skip(n int) error {
	if n < 0 || bs.off+n > len(bs.data) {
		return io.ErrUnexpectedEOF
	}
	bs.off += n
	return nil
}

func (bs *bytesStream) Read(b []byte) (int, error) {
	if bs.off+len(b) > len(bs.data) {
		n := copy(b, bs.data[bs.off:])
		bs.off += n
		return n, io.ErrUnexpectedEOF
	}
	n := copy(b, bs.data[bs.off:])
	bs.off += n
	return n, nil
}
