package frame

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, uint16(0xBF05), Checksum([]byte("123456789")))
	require.Equal(t, uint16(0x6363), Checksum(nil))
	require.Equal(t, uint16(0x8d82), Checksum([]byte{0x00, 0xb8, 0x17, 0x00, 0x00}))
}

func TestCOBS(t *testing.T) {
	long := bytes.Repeat([]byte{0x11}, 254)
	cases := []struct {
		data    []byte
		encoded []byte
	}{
		{[]byte{}, []byte{0x01}},
		{[]byte{0x00}, []byte{0x01, 0x01}},
		{[]byte{0x00, 0x00}, []byte{0x01, 0x01, 0x01}},
		{[]byte{0x11, 0x22, 0x00, 0x33}, []byte{0x03, 0x11, 0x22, 0x02, 0x33}},
		{[]byte{0x11, 0x00, 0x00, 0x00}, []byte{0x02, 0x11, 0x01, 0x01, 0x01}},
		{long, append(append([]byte{0xff}, long...), 0x01)},
	}
	for _, c := range cases {
		encoded := EncodeCOBS(nil, c.data)
		require.Equal(t, c.encoded, encoded)
		require.NotContains(t, encoded, Delimiter)
		decoded, err := DecodeCOBS(encoded)
		require.NoError(t, err)
		require.Equal(t, c.data, decoded)
	}
}

func TestDecodeCOBSInvalid(t *testing.T) {
	_, err := DecodeCOBS([]byte{0x05, 0x11})
	require.Equal(t, ErrCobs, err)
	_, err = DecodeCOBS([]byte{0x02, 0x11, 0x00})
	require.Equal(t, ErrCobs, err)
}

func TestAppendFrame(t *testing.T) {
	require.Equal(t,
		[]byte{0x05, 0x01, 0x02, 0x24, 0x6a, 0x00},
		AppendFrame(nil, []byte{0x01, 0x02}))
	require.Equal(t,
		[]byte{0x01, 0x03, 0x51, 0xfe, 0x00},
		AppendFrame(nil, []byte{0x00}))
	require.Equal(t,
		[]byte{0x01, 0x03, 0xb8, 0x17, 0x01, 0x03, 0x8d, 0x82, 0x00},
		AppendFrame(nil, []byte{0x00, 0xb8, 0x17, 0x00, 0x00}))
}

func TestReadFrame(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)
	require.NoError(t, w.WriteFrame([]byte{0x01, 0x02}))
	require.NoError(t, w.WriteFrame([]byte{}))
	require.NoError(t, w.WriteFrame([]byte{0x00, 0xb8, 0x17, 0x00, 0x00}))

	r := NewReader(&stream)
	payload, err := r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, payload)
	payload, err = r.ReadFrame()
	require.NoError(t, err)
	require.Empty(t, payload)
	payload, err = r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xb8, 0x17, 0x00, 0x00}, payload)
	_, err = r.ReadFrame()
	require.Equal(t, io.EOF, err)
}

func TestReadFrameCorrupted(t *testing.T) {
	good := AppendFrame(nil, []byte{0x00, 0xb8, 0x17, 0x00, 0x00})
	for i := 0; i < len(good)-1; i++ {
		for _, flip := range []byte{0x01, 0x80, 0xff} {
			corrupted := append([]byte{}, good...)
			corrupted[i] ^= flip
			stream := append(corrupted, good...)
			r := NewReader(bytes.NewReader(stream))
			_, err := r.ReadFrame()
			if corrupted[i] == Delimiter {
				// the frame got split, drain until the good one
				for err == nil || IsFrameError(err) {
					var payload []byte
					payload, err = r.ReadFrame()
					if err == nil && bytes.Equal(payload, []byte{0x00, 0xb8, 0x17, 0x00, 0x00}) {
						break
					}
				}
				require.NoError(t, err)
				continue
			}
			require.Error(t, err, "byte %d flip %02x accepted", i, flip)
			require.True(t, IsFrameError(err))
			payload, err := r.ReadFrame()
			require.NoError(t, err)
			require.Equal(t, []byte{0x00, 0xb8, 0x17, 0x00, 0x00}, payload)
		}
	}
}

func TestReadFrameLimits(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(AppendFrame(nil, bytes.Repeat([]byte{0x42}, 20)))
	stream.Write([]byte{0x01, 0x00})
	stream.Write([]byte{0x00, 0x00})
	stream.Write(AppendFrame(nil, []byte{0x07}))

	r := NewReader(&stream)
	_, err := r.ReadFrame()
	require.Equal(t, ErrFrameTooLong, err)
	_, err = r.ReadFrame()
	require.Equal(t, ErrFrameTooShort, err)
	payload, err := r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []byte{0x07}, payload)

	r = NewReaderSize(bytes.NewReader(AppendFrame(nil, bytes.Repeat([]byte{0x42}, 20))), 64)
	payload, err = r.ReadFrame()
	require.NoError(t, err)
	require.Len(t, payload, 20)
}

type testStream struct {
	io.Reader
	io.Writer
}

func TestLink(t *testing.T) {
	inR, inW := io.Pipe()
	var out bytes.Buffer
	link := NewLink(&testStream{Reader: inR, Writer: &out})
	frameCh := make(chan []byte, 4)
	errorCh := make(chan error, 4)
	link.Handler = HandleFrameFunc(func(ctx context.Context, payload []byte) {
		frameCh <- payload
	})
	link.ErrorHandler = HandleFrameErrorFunc(func(ctx context.Context, err error) {
		errorCh <- err
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- link.Run(ctx) }()

	bad := AppendFrame(nil, []byte{0x01, 0x02})
	bad[1] ^= 0x10
	go func() {
		inW.Write(AppendFrame(nil, []byte{0x01, 0x02}))
		inW.Write(bad)
		inW.Write(AppendFrame(nil, []byte{0x03}))
		inW.Close()
	}()

	expectFrame := func(expected []byte) {
		select {
		case payload := <-frameCh:
			require.Equal(t, expected, payload)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("expect frame timeout")
		}
	}
	expectFrame([]byte{0x01, 0x02})
	select {
	case err := <-errorCh:
		require.Equal(t, ErrCRC, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expect frame error timeout")
	}
	expectFrame([]byte{0x03})

	select {
	case err := <-runErr:
		require.Equal(t, io.EOF, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expect link stop timeout")
	}

	require.NoError(t, link.Send([]byte{0x01, 0x02}))
	require.Equal(t, []byte{0x05, 0x01, 0x02, 0x24, 0x6a, 0x00}, out.Bytes())
}
