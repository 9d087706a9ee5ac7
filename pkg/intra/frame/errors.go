package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrCobs indicates a frame violating the COBS encoding.
	ErrCobs = errors.New("invalid cobs frame")
	// ErrCRC indicates a frame whose checksum does not match.
	ErrCRC = errors.New("crc mismatch")
	// ErrFrameTooLong indicates a frame exceeding the receive buffer.
	ErrFrameTooLong = errors.New("frame too long")
	// ErrFrameTooShort indicates a frame without room for the checksum.
	ErrFrameTooShort = errors.New("frame too short")
)

// DecodeError wraps a failure decoding a frame payload.
type DecodeError struct {
	Err error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsFrameError tells whether err is a per-frame error the receiver can
// skip, as opposed to an I/O error on the underlying stream.
func IsFrameError(err error) bool {
	var decodeErr *DecodeError
	return errors.Is(err, ErrCobs) ||
		errors.Is(err, ErrCRC) ||
		errors.Is(err, ErrFrameTooLong) ||
		errors.Is(err, ErrFrameTooShort) ||
		errors.As(err, &decodeErr)
}
