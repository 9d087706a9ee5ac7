package config

import (
	"context"
	"errors"
	"hash/crc32"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/postcard"
)

func TestRecordLayout(t *testing.T) {
	v := DefaultMainV0()
	data, err := Encode(&v)
	require.NoError(t, err)
	// variant, 2400, id, 3276, 6553, 200
	sel := []byte{0x00, 0xe0, 0x12, 0x00, 0xcc, 0x19, 0x99, 0x33, 0xc8, 0x01}
	require.Equal(t, sel, data[:len(sel)])

	d := postcard.NewDecoder(data[len(sel):])
	require.Equal(t, crc32.ChecksumIEEE(sel), d.U32())
	require.NoError(t, d.Finish())
}

func TestMainLoadSave(t *testing.T) {
	backend := &MemoryBackend{}
	c := NewMain(DefaultMainV0())
	require.Equal(t, ErrNoRecord, c.Load(backend))
	require.Equal(t, DefaultMainV0(), c.Values())

	c.ID.Set(7)
	c.RFFrequency.Set(2450)
	require.NoError(t, c.Save(backend))

	loaded := NewMain(DefaultMainV0())
	require.NoError(t, loaded.Load(backend))
	require.Equal(t, uint8(7), loaded.ID.Get())
	require.Equal(t, uint32(2450), loaded.RFFrequency.Get())
}

func TestMainLoadClampsID(t *testing.T) {
	backend := &MemoryBackend{}
	v := DefaultMainV0()
	v.ID = 200
	data, err := Encode(&v)
	require.NoError(t, err)
	require.NoError(t, backend.Save(data))

	c := NewMain(DefaultMainV0())
	require.NoError(t, c.Load(backend))
	require.Equal(t, uint8(15), c.ID.Get())
}

func TestLoadRejectsCorruption(t *testing.T) {
	v := DefaultMainV0()
	data, err := Encode(&v)
	require.NoError(t, err)

	corrupted := append([]byte(nil), data...)
	corrupted[2] ^= 0x01
	backend := &MemoryBackend{}
	require.NoError(t, backend.Save(corrupted))
	c := NewMain(DefaultMainV0())
	c.ID.Set(3)
	err = c.Load(backend)
	var csErr *ChecksumError
	require.True(t, errors.As(err, &csErr))
	require.Equal(t, uint8(3), c.ID.Get())

	require.NoError(t, backend.Save(append([]byte{0x01}, data[1:]...)))
	var discErr *postcard.DiscriminantError
	require.True(t, errors.As(c.Load(backend), &discErr))

	require.NoError(t, backend.Save(data[:4]))
	require.Equal(t, postcard.ErrUnexpectedEOF, c.Load(backend))
}

func TestTrailingBytesIgnored(t *testing.T) {
	v := DefaultMotorV0()
	data, err := Encode(&v)
	require.NoError(t, err)
	sector := make([]byte, 64)
	for i := range sector {
		sector[i] = 0xff
	}
	copy(sector, data)
	var loaded MotorV0
	require.NoError(t, Decode(sector, &loaded))
	require.Equal(t, v, loaded)
}

func TestFileBackend(t *testing.T) {
	backend := &FileBackend{Path: filepath.Join(t.TempDir(), "motor.cfg")}
	c := NewMotor(DefaultMotorV0())
	require.Equal(t, ErrNoRecord, c.Load(backend))
	c.KickerChargeVoltage.Set(230)
	require.NoError(t, c.Save(backend))
	loaded := NewMotor(DefaultMotorV0())
	require.NoError(t, loaded.Load(backend))
	require.Equal(t, c.Values(), loaded.Values())
}

func TestParameterSubscriberLimit(t *testing.T) {
	c := NewMain(DefaultMainV0())
	sub, err := c.ID.Subscribe()
	require.NoError(t, err)
	_, err = c.ID.Subscribe()
	require.Error(t, err)
	sub.Close()
}

func TestSaveSignal(t *testing.T) {
	s := NewSaveSignal()
	saved := make(chan struct{}, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx, func() error {
		saved <- struct{}{}
		return nil
	})
	s.Signal()
	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("expect save")
	}
}
