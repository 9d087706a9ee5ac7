// Package config persists the robot configuration.
//
// A record is the variant index of the config version, the encoded
// fields and a CRC-32 (ISO-HDLC) of both, postcard encoded. Trailing
// bytes after the checksum are ignored, as the record is read from an
// erased flash sector on the robot.
package config

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/robotalks/soccer.go/pkg/postcard"
)

// MaxRecordSize is the size of the flash sector holding the record.
const MaxRecordSize = 4096

// Version0 is the only record version.
const Version0 = 0

// Record is a config version encodable as a record.
type Record interface {
	MarshalTo(*postcard.Encoder)
	UnmarshalFrom(*postcard.Decoder)
}

// ErrNoRecord indicates the backend holds no record yet.
var ErrNoRecord = errors.New("no config record")

// ChecksumError is returned when the stored checksum doesn't match.
type ChecksumError struct {
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("config checksum mismatch: stored 0x%08x, computed 0x%08x", e.Stored, e.Computed)
}

func encodeSelection(r Record) ([]byte, error) {
	e := postcard.NewEncoder(MaxRecordSize)
	e.Variant(Version0)
	r.MarshalTo(e)
	return e.Bytes()
}

// Encode encodes r into a record.
func Encode(r Record) ([]byte, error) {
	sel, err := encodeSelection(r)
	if err != nil {
		return nil, err
	}
	e := postcard.NewEncoder(MaxRecordSize)
	e.Raw(sel)
	e.U32(crc32.ChecksumIEEE(sel))
	return e.Bytes()
}

// Decode decodes a record into r and verifies the checksum.
func Decode(data []byte, r Record) error {
	if len(data) == 0 {
		return ErrNoRecord
	}
	d := postcard.NewDecoder(data)
	if v := d.Variant(); d.Err() == nil && v != Version0 {
		d.BadVariant("ConfigSelection", v)
	}
	r.UnmarshalFrom(d)
	stored := d.U32()
	if err := d.Err(); err != nil {
		return err
	}
	sel, err := encodeSelection(r)
	if err != nil {
		return err
	}
	if computed := crc32.ChecksumIEEE(sel); computed != stored {
		return &ChecksumError{Stored: stored, Computed: computed}
	}
	return nil
}
