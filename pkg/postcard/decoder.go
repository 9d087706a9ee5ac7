package postcard

// Decoder reads encoded values from a byte slice.
// The first error sticks; later reads return zero values.
type Decoder struct {
	buf []byte
	pos int
	err error
}

// NewDecoder creates a Decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}

// Fail records err unless an error is already recorded.
func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Finish returns the first error, or ErrTrailingBytes if input is left.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.Remaining() > 0 {
		return ErrTrailingBytes
	}
	return nil
}

// U8 reads a raw byte.
func (d *Decoder) U8() uint8 {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.buf) {
		d.err = ErrUnexpectedEOF
		return 0
	}
	b := d.buf[d.pos]
	d.pos++
	return b
}

// Bool reads a bool byte.
func (d *Decoder) Bool() bool {
	switch d.U8() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(ErrBadBool)
		return false
	}
}

func (d *Decoder) varint(bits uint) uint64 {
	var v uint64
	var shift uint
	maxLen := int((bits + 6) / 7)
	for n := 0; n < maxLen; n++ {
		b := d.U8()
		if d.err != nil {
			return 0
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if bits < 64 && v>>bits != 0 {
				d.err = ErrBadVarint
				return 0
			}
			return v
		}
		shift += 7
	}
	d.Fail(ErrBadVarint)
	return 0
}

// U16 reads a varint.
func (d *Decoder) U16() uint16 { return uint16(d.varint(16)) }

// U32 reads a varint.
func (d *Decoder) U32() uint32 { return uint32(d.varint(32)) }

// U64 reads a varint.
func (d *Decoder) U64() uint64 { return d.varint(64) }

// I16 reads a zigzag varint.
func (d *Decoder) I16() int16 {
	u := uint16(d.varint(16))
	return int16(u>>1) ^ -int16(u&1)
}

// I32 reads a zigzag varint.
func (d *Decoder) I32() int32 {
	u := uint32(d.varint(32))
	return int32(u>>1) ^ -int32(u&1)
}

// Variant reads an enum discriminant.
func (d *Decoder) Variant() uint32 { return uint32(d.varint(32)) }

// Option reads an option tag and reports whether a value follows.
func (d *Decoder) Option() bool {
	switch d.U8() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(ErrBadOption)
		return false
	}
}

// BadVariant records a DiscriminantError for the named type.
func (d *Decoder) BadVariant(typ string, value uint32) {
	d.Fail(&DiscriminantError{Type: typ, Value: value})
}
