package frame

// Delimiter terminates every encoded frame.
const Delimiter byte = 0x00

// EncodeCOBS appends the COBS encoding of data to dst, without delimiter.
func EncodeCOBS(dst, data []byte) []byte {
	codeIdx := len(dst)
	dst = append(dst, 0)
	code := byte(1)
	for _, b := range data {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}
		dst = append(dst, b)
		code++
		if code == 0xff {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}
	dst[codeIdx] = code
	return dst
}

// DecodeCOBS decodes one COBS block (without delimiter).
func DecodeCOBS(data []byte) ([]byte, error) {
	var dec Decoder
	dec.MaxSize = len(data)
	for _, b := range data {
		if err := dec.push(b); err != nil {
			return nil, err
		}
	}
	return dec.finish()
}

// Decoder incrementally decodes a COBS stream.
// It is the receive side state machine: feed bytes with Feed and collect
// a frame each time a delimiter completes one.
type Decoder struct {
	// MaxSize limits the decoded size of a frame. 0 means DefaultMaxFrameSize.
	MaxSize int

	buf      []byte
	code     byte
	remain   byte
	overflow bool
	broken   bool
	started  bool
}

// DefaultMaxFrameSize is the receive buffer size of the robot boards.
const DefaultMaxFrameSize = 16

// Feed consumes bytes from p until a frame completes.
// It returns the number of bytes consumed and, when a delimiter was found,
// the decoded frame or the error of that frame. A nil frame with nil error
// and n == len(p) means more input is needed.
func (d *Decoder) Feed(p []byte) (n int, frame []byte, err error) {
	for n < len(p) {
		b := p[n]
		n++
		if b == Delimiter {
			if !d.started {
				// empty frame between two delimiters
				continue
			}
			frame, err = d.finish()
			d.reset()
			return n, frame, err
		}
		d.started = true
		if d.overflow || d.broken {
			continue
		}
		if perr := d.push(b); perr != nil {
			if perr == ErrFrameTooLong {
				d.overflow = true
			} else {
				d.broken = true
			}
		}
	}
	return n, nil, nil
}

// Reset drops any partially received frame.
func (d *Decoder) Reset() {
	d.reset()
}

func (d *Decoder) reset() {
	d.buf = d.buf[:0]
	d.code, d.remain = 0, 0
	d.overflow, d.broken, d.started = false, false, false
}

func (d *Decoder) maxSize() int {
	if d.MaxSize > 0 {
		return d.MaxSize
	}
	return DefaultMaxFrameSize
}

func (d *Decoder) push(b byte) error {
	if b == Delimiter {
		return ErrCobs
	}
	if d.remain == 0 {
		// b is a code byte; the previous block implies a zero unless it was full.
		if d.code != 0 && d.code != 0xff {
			if err := d.appendByte(0); err != nil {
				return err
			}
		}
		d.code, d.remain = b, b-1
		return nil
	}
	d.remain--
	return d.appendByte(b)
}

func (d *Decoder) appendByte(b byte) error {
	if len(d.buf) >= d.maxSize() {
		return ErrFrameTooLong
	}
	d.buf = append(d.buf, b)
	return nil
}

func (d *Decoder) finish() ([]byte, error) {
	switch {
	case d.overflow:
		return nil, ErrFrameTooLong
	case d.broken, d.remain != 0, d.code == 0:
		return nil, ErrCobs
	}
	frame := make([]byte, len(d.buf))
	copy(frame, d.buf)
	return frame, nil
}
