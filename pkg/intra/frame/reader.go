package frame

import (
	"encoding/binary"
	"io"
)

const readChunk = 64

// Reader reads frames from a byte stream.
type Reader struct {
	r     io.Reader
	dec   Decoder
	buf   []byte
	start int
	end   int
}

// NewReader creates a Reader with the default maximum frame size.
func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, DefaultMaxFrameSize)
}

// NewReaderSize creates a Reader accepting frames up to maxFrame decoded
// bytes, checksum included.
func NewReaderSize(r io.Reader, maxFrame int) *Reader {
	return &Reader{
		r:   r,
		dec: Decoder{MaxSize: maxFrame},
		buf: make([]byte, readChunk),
	}
}

// ReadFrame blocks until a complete frame is received and returns its
// payload with the checksum verified and stripped.
// Per-frame failures return ErrCobs, ErrFrameTooLong, ErrFrameTooShort or
// ErrCRC and leave the Reader ready for the next frame. Stream errors are
// returned unchanged.
func (r *Reader) ReadFrame() ([]byte, error) {
	for {
		if r.start < r.end {
			n, frame, err := r.dec.Feed(r.buf[r.start:r.end])
			r.start += n
			if err != nil {
				return nil, err
			}
			if frame != nil {
				return Verify(frame)
			}
			continue
		}
		n, err := r.r.Read(r.buf)
		r.start, r.end = 0, n
		if n > 0 {
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// Verify checks and strips the trailing big-endian checksum of a frame.
func Verify(frame []byte) ([]byte, error) {
	if len(frame) < 2 {
		return nil, ErrFrameTooShort
	}
	payload := frame[:len(frame)-2]
	if binary.BigEndian.Uint16(frame[len(payload):]) != Checksum(payload) {
		return nil, ErrCRC
	}
	return payload, nil
}
