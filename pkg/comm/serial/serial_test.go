package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestMode(t *testing.T) {
	mode, err := DefaultConfig("/dev/ttyUSB0").Mode()
	require.NoError(t, err)
	require.Equal(t, &serial.Mode{
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}, mode)

	mode, err = Config{StopBits: "2", Parity: "Even"}.Mode()
	require.NoError(t, err)
	require.Equal(t, serial.TwoStopBits, mode.StopBits)
	require.Equal(t, serial.EvenParity, mode.Parity)

	_, err = Config{StopBits: "3"}.Mode()
	require.Error(t, err)
	_, err = Config{Parity: "weird"}.Mode()
	require.Error(t, err)
}
