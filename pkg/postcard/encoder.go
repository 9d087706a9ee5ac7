package postcard

// Encoder appends encoded values to a bounded buffer.
// The first error sticks; later writes are no-ops.
type Encoder struct {
	buf   []byte
	limit int
	err   error
}

// NewEncoder creates an Encoder producing at most limit bytes.
// A limit <= 0 means unbounded.
func NewEncoder(limit int) *Encoder {
	capacity := limit
	if capacity <= 0 || capacity > 256 {
		capacity = 64
	}
	return &Encoder{buf: make([]byte, 0, capacity), limit: limit}
}

// Bytes returns the encoded bytes, or the first error.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

// Err returns the first error encountered.
func (e *Encoder) Err() error {
	return e.err
}

// Fail records err unless an error is already recorded.
func (e *Encoder) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) push(b ...byte) {
	if e.err != nil {
		return
	}
	if e.limit > 0 && len(e.buf)+len(b) > e.limit {
		e.err = ErrBufferFull
		return
	}
	e.buf = append(e.buf, b...)
}

// U8 writes a raw byte.
func (e *Encoder) U8(v uint8) {
	e.push(v)
}

// Bool writes 0 or 1.
func (e *Encoder) Bool(v bool) {
	if v {
		e.push(1)
	} else {
		e.push(0)
	}
}

func (e *Encoder) varint(v uint64) {
	var tmp [10]byte
	n := 0
	for v >= 0x80 {
		tmp[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	tmp[n] = byte(v)
	e.push(tmp[:n+1]...)
}

// U16 writes a varint.
func (e *Encoder) U16(v uint16) { e.varint(uint64(v)) }

// U32 writes a varint.
func (e *Encoder) U32(v uint32) { e.varint(uint64(v)) }

// U64 writes a varint.
func (e *Encoder) U64(v uint64) { e.varint(v) }

// I16 writes a zigzag varint.
func (e *Encoder) I16(v int16) {
	e.varint(uint64(uint16((v << 1) ^ (v >> 15))))
}

// I32 writes a zigzag varint.
func (e *Encoder) I32(v int32) {
	e.varint(uint64(uint32((v << 1) ^ (v >> 31))))
}

// Variant writes an enum discriminant.
func (e *Encoder) Variant(index uint32) { e.varint(uint64(index)) }

// Option writes the option tag and reports whether the value follows.
func (e *Encoder) Option(some bool) bool {
	e.Bool(some)
	return some
}

// Raw appends already encoded bytes.
func (e *Encoder) Raw(b []byte) {
	e.push(b...)
}
