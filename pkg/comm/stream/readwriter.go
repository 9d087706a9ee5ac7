// Package stream carries packets over a byte stream, e.g. a TCP
// connection or a recording file.
package stream

import (
	"encoding/binary"
	"errors"
	"io"
	"time"
)

// MaxPacketSize limits the size of a single packet.
const MaxPacketSize = 1 << 16

// ErrPacketTooLarge is returned when the length prefix exceeds MaxPacketSize.
var ErrPacketTooLarge = errors.New("packet too large")

// ReadWriter implements PacketReadWriter.
// Each packet is prefixed by 4-byte (little-endian) indicate the length.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(p, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}
	pkt := make([]byte, size)
	if _, err := io.ReadFull(p, pkt); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	if len(pkt) > MaxPacketSize {
		return ErrPacketTooLarge
	}
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	_, err := p.Write(buf)
	return err
}

// Close implements io.Closer if the underlying stream is closable.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Recording writes packets with the time elapsed since the first one,
// so they can be replayed with the original pacing.
type Recording struct {
	rw    *ReadWriter
	start time.Time
}

// NewRecording creates a Recording on the stream.
func NewRecording(s io.ReadWriter) *Recording {
	return &Recording{rw: New(s)}
}

// WritePacket implements PacketWriter.
func (r *Recording) WritePacket(pkt []byte) error {
	now := time.Now()
	if r.start.IsZero() {
		r.start = now
	}
	buf := make([]byte, 8+len(pkt))
	binary.LittleEndian.PutUint64(buf, uint64(now.Sub(r.start)))
	copy(buf[8:], pkt)
	return r.rw.WritePacket(buf)
}

// ReadEntry reads the next recorded packet and its offset from the
// start of the recording.
func (r *Recording) ReadEntry() (time.Duration, []byte, error) {
	buf, err := r.rw.ReadPacket()
	if err != nil {
		return 0, nil, err
	}
	if len(buf) < 8 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return time.Duration(binary.LittleEndian.Uint64(buf)), buf[8:], nil
}
