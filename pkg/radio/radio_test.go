package radio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIrqStatus(t *testing.T) {
	s := IrqMask(IrqTxDone, IrqRxTxTimeout)
	require.Equal(t, IrqStatus(0x4001), s)
	require.True(t, s.IsSet(IrqTxDone))
	require.True(t, s.IsSet(IrqRxTxTimeout))
	require.False(t, s.IsSet(IrqRxDone))
	require.True(t, s.Any(IrqRxDone, IrqRxTxTimeout))
	require.False(t, s.Any(IrqRxDone, IrqCrcError))
}

func TestPacketStatus(t *testing.T) {
	st := ParsePacketStatus(0x91, 0x12)
	require.Equal(t, int32(-72), st.Rssi)
	require.True(t, st.Errors.CRC)
	require.True(t, st.Errors.PacketReceived)
	require.False(t, st.Errors.Sync)
	require.True(t, st.Errors.Corrupted())
	require.Equal(t, byte(0x12), st.Errors.Byte())
	require.Equal(t, "crc", st.Errors.String())

	for b := 0; b < 0x80; b++ {
		require.Equal(t, byte(b), ParsePacketErrors(byte(b)).Byte())
	}
	require.False(t, ParsePacketErrors(0x46).Corrupted())
	require.True(t, ParsePacketErrors(0x20).Corrupted())
	require.True(t, ParsePacketErrors(0x08).Corrupted())
}

func TestTimeout(t *testing.T) {
	require.Equal(t, 10*time.Millisecond, Milliseconds(10).Duration())
	require.Equal(t, 4*time.Millisecond, Timeout{Steps: 1, Base: PeriodBase4ms}.Duration())
	require.Equal(t, 15625*time.Nanosecond*64, Timeout{Steps: 64, Base: PeriodBase15us625}.Duration())
	require.Equal(t, 125*time.Microsecond, Timeout{Steps: 2, Base: PeriodBase62us5}.Duration())
	require.Zero(t, Timeout{}.Duration())
	require.Zero(t, Timeout{Steps: ContinuousSteps, Base: PeriodBase1ms}.Duration())
	require.Equal(t, "single", Timeout{}.String())
	require.Equal(t, "continuous", Timeout{Steps: ContinuousSteps}.String())
}

type failingPins struct {
	PinLevels
	fail Pin
}

func (p *failingPins) SetPin(pin Pin, high bool) error {
	if pin == p.fail {
		return errors.New("gpio fault")
	}
	return p.PinLevels.SetPin(pin, high)
}

func TestFrontEndModes(t *testing.T) {
	var pins PinLevels
	f := NewFrontEnd(&pins)
	require.Equal(t, ModeUndefined, f.Mode())

	sleep, err := f.Init()
	require.NoError(t, err)
	require.Equal(t, ModeSleep, f.Mode())
	require.False(t, pins.Level(PinCSD))

	tx, err := sleep.TransmitHighPower()
	require.NoError(t, err)
	require.Equal(t, ModeTransmitHighPower, tx.Mode())
	require.True(t, pins.Level(PinCSD))
	require.False(t, pins.Level(PinCPS))
	require.True(t, pins.Level(PinCTX))
	require.True(t, pins.Level(PinCHL))

	rx, err := tx.ReceiveLNA()
	require.NoError(t, err)
	require.Equal(t, ModeReceiveLNA, f.Mode())
	require.True(t, pins.Level(PinCRX))
	require.False(t, pins.Level(PinCTX))

	low, err := rx.TransmitLowPower()
	require.NoError(t, err)
	require.True(t, pins.Level(PinCTX))
	require.False(t, pins.Level(PinCHL))

	sleep, err = low.Sleep()
	require.NoError(t, err)
	bypass, err := sleep.ReceiveBypass()
	require.NoError(t, err)
	require.Equal(t, ModeReceiveBypass, bypass.Mode())
	require.True(t, pins.Level(PinCPS))
	require.True(t, pins.Level(PinCRX))

	sleep, err = bypass.Sleep()
	require.NoError(t, err)
	txBypass, err := sleep.TransmitBypass()
	require.NoError(t, err)
	require.Equal(t, ModeTransmitBypass, txBypass.Mode())
	require.True(t, pins.Level(PinCPS))
	require.True(t, pins.Level(PinCTX))
}

func TestFrontEndStaleHandle(t *testing.T) {
	f := NewFrontEnd(&PinLevels{})
	sleep, err := f.Init()
	require.NoError(t, err)
	tx, err := sleep.TransmitHighPower()
	require.NoError(t, err)
	require.False(t, sleep.Valid())
	require.True(t, tx.Valid())

	_, err = sleep.ReceiveLNA()
	require.Equal(t, ErrStaleHandle, err)
	require.Equal(t, ModeTransmitHighPower, f.Mode())

	_, err = tx.Sleep()
	require.NoError(t, err)
	_, err = tx.Sleep()
	require.Equal(t, ErrStaleHandle, err)
}

func TestFrontEndSleepTiedCSD(t *testing.T) {
	var pins PinLevels
	f := NewFrontEnd(&pins)
	f.CSDTiedHigh = true
	sleep, err := f.Init()
	require.NoError(t, err)
	rx, err := sleep.ReceiveLNA()
	require.NoError(t, err)
	require.True(t, pins.Level(PinCRX))
	_, err = rx.Sleep()
	require.NoError(t, err)
	require.True(t, pins.Level(PinCSD))
	require.False(t, pins.Level(PinCRX))
	require.False(t, pins.Level(PinCTX))
}

func TestFrontEndPinFailure(t *testing.T) {
	pins := &failingPins{fail: PinCHL}
	f := NewFrontEnd(pins)
	sleep, err := f.Init()
	require.NoError(t, err)
	_, err = sleep.TransmitHighPower()
	require.Error(t, err)
	require.Equal(t, ModeUndefined, f.Mode())
	_, err = sleep.ReceiveLNA()
	require.Equal(t, ErrStaleHandle, err)
	sleep, err = f.Init()
	require.NoError(t, err)
	require.True(t, sleep.Valid())
}
