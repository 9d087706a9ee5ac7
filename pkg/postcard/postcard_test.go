package postcard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintEncoding(t *testing.T) {
	cases := []struct {
		name   string
		encode func(*Encoder)
		expect []byte
	}{
		{"u16 small", func(e *Encoder) { e.U16(5) }, []byte{0x05}},
		{"u16 two bytes", func(e *Encoder) { e.U16(300) }, []byte{0xac, 0x02}},
		{"u16 max", func(e *Encoder) { e.U16(0xffff) }, []byte{0xff, 0xff, 0x03}},
		{"u32", func(e *Encoder) { e.U32(0x9cd6040c) }, []byte{0x8c, 0x88, 0xd8, 0xe6, 0x09}},
		{"i16 zero", func(e *Encoder) { e.I16(0) }, []byte{0x00}},
		{"i16 minus one", func(e *Encoder) { e.I16(-1) }, []byte{0x01}},
		{"i16 one", func(e *Encoder) { e.I16(1) }, []byte{0x02}},
		{"i16 1500", func(e *Encoder) { e.I16(1500) }, []byte{0xb8, 0x17}},
		{"i16 min", func(e *Encoder) { e.I16(-32768) }, []byte{0xff, 0xff, 0x03}},
		{"option none", func(e *Encoder) { e.Option(false) }, []byte{0x00}},
		{"option some", func(e *Encoder) {
			if e.Option(true) {
				e.U8(7)
			}
		}, []byte{0x01, 0x07}},
		{"bool", func(e *Encoder) { e.Bool(true); e.Bool(false) }, []byte{0x01, 0x00}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEncoder(0)
			c.encode(e)
			out, err := e.Bytes()
			require.NoError(t, err)
			require.Equal(t, c.expect, out)
		})
	}
}

func TestDecodeSignedRange(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 1500, -1500, 32767, -32768} {
		e := NewEncoder(0)
		e.I16(v)
		out, err := e.Bytes()
		require.NoError(t, err)
		d := NewDecoder(out)
		require.Equal(t, v, d.I16())
		require.NoError(t, d.Finish())
	}
}

func TestEncoderLimit(t *testing.T) {
	e := NewEncoder(2)
	e.U8(1)
	e.U16(300)
	_, err := e.Bytes()
	require.Equal(t, ErrBufferFull, err)
	e.U8(2)
	require.Equal(t, ErrBufferFull, e.Err())
}

func TestDecoderErrors(t *testing.T) {
	cases := []struct {
		name   string
		input  []byte
		decode func(*Decoder)
		err    error
	}{
		{"eof", []byte{}, func(d *Decoder) { d.U8() }, ErrUnexpectedEOF},
		{"eof in varint", []byte{0x80}, func(d *Decoder) { d.U16() }, ErrUnexpectedEOF},
		{"u16 overflow", []byte{0xff, 0xff, 0x04}, func(d *Decoder) { d.U16() }, ErrBadVarint},
		{"u16 too long", []byte{0x80, 0x80, 0x80, 0x00}, func(d *Decoder) { d.U16() }, ErrBadVarint},
		{"bad bool", []byte{0x02}, func(d *Decoder) { d.Bool() }, ErrBadBool},
		{"bad option", []byte{0x05}, func(d *Decoder) { d.Option() }, ErrBadOption},
		{"trailing", []byte{0x01, 0x02}, func(d *Decoder) { d.U8() }, ErrTrailingBytes},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDecoder(c.input)
			c.decode(d)
			require.Equal(t, c.err, d.Finish())
		})
	}
}

func TestDecoderErrorSticks(t *testing.T) {
	d := NewDecoder([]byte{0x03})
	d.BadVariant("Team", 3)
	require.Zero(t, d.U8())
	err := d.Err()
	require.IsType(t, &DiscriminantError{}, err)
	require.Equal(t, "invalid Team discriminant 3", err.Error())
}
