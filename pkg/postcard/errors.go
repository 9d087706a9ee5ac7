package postcard

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferFull indicates the encoded value exceeds the buffer limit.
	ErrBufferFull = errors.New("buffer full")
	// ErrUnexpectedEOF indicates the input ended in the middle of a value.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrBadVarint indicates a varint is too long or overflows its type.
	ErrBadVarint = errors.New("bad varint")
	// ErrBadBool indicates a bool byte other than 0 or 1.
	ErrBadBool = errors.New("bad bool")
	// ErrBadOption indicates an option tag other than 0 or 1.
	ErrBadOption = errors.New("bad option tag")
	// ErrTrailingBytes indicates input left over after a complete value.
	ErrTrailingBytes = errors.New("trailing bytes")
)

// DiscriminantError reports an enum variant index that is not defined.
type DiscriminantError struct {
	Type  string
	Value uint32
}

// Error implements error.
func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("invalid %s discriminant %d", e.Type, e.Value)
}
