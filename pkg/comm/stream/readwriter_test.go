package stream

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadWriter(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte{1, 2, 3}))
	require.NoError(t, rw.WritePacket(nil))
	require.Equal(t, []byte{3, 0, 0, 0, 1, 2, 3, 0, 0, 0, 0}, buf.Bytes())

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
	_, err = rw.ReadPacket()
	require.Equal(t, io.EOF, err)
}

func TestReadWriterLimits(t *testing.T) {
	rw := New(bytes.NewBuffer([]byte{0xff, 0xff, 0xff, 0xff}))
	_, err := rw.ReadPacket()
	require.Equal(t, ErrPacketTooLarge, err)

	rw = New(bytes.NewBuffer([]byte{4, 0, 0, 0, 1}))
	_, err = rw.ReadPacket()
	require.Equal(t, io.ErrUnexpectedEOF, err)

	require.Equal(t, ErrPacketTooLarge, New(&bytes.Buffer{}).WritePacket(make([]byte, MaxPacketSize+1)))
}

func TestRecording(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecording(&buf)
	require.NoError(t, rec.WritePacket([]byte{1}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, rec.WritePacket([]byte{2}))

	offset, pkt, err := rec.ReadEntry()
	require.NoError(t, err)
	require.Zero(t, offset)
	require.Equal(t, []byte{1}, pkt)
	offset, pkt, err = rec.ReadEntry()
	require.NoError(t, err)
	require.True(t, offset >= 2*time.Millisecond)
	require.Equal(t, []byte{2}, pkt)
}
