package frame

import (
	"encoding/binary"
	"io"
	"sync"
)

// AppendFrame appends the encoded frame of payload, delimiter included.
func AppendFrame(dst, payload []byte) []byte {
	raw := make([]byte, len(payload)+2)
	copy(raw, payload)
	binary.BigEndian.PutUint16(raw[len(payload):], Checksum(payload))
	dst = EncodeCOBS(dst, raw)
	return append(dst, Delimiter)
}

// Writer writes frames to a byte stream.
type Writer struct {
	w    io.Writer
	lock sync.Mutex
	buf  []byte
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame encodes payload and writes it with a single Write.
func (w *Writer) WriteFrame(payload []byte) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.buf = AppendFrame(w.buf[:0], payload)
	_, err := w.w.Write(w.buf)
	return err
}
