package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	ev, err := Decode([]byte{1, 0, 0, 0, 0x01, 0x80, evAXIS, 3})
	require.NoError(t, err)
	require.Equal(t, Event{Kind: KindAxis, Index: 3, Value: -32767}, ev)
	require.Equal(t, 1.0, ev.Deflection())
	require.Equal(t, "axis 3: -32767", ev.String())

	ev, err = Decode([]byte{0, 0, 0, 0, 1, 0, evBTN | evINIT, 2})
	require.NoError(t, err)
	require.Equal(t, Event{Kind: KindButton, Index: 2, Value: 1, Initial: true}, ev)
	require.True(t, ev.Pressed())
	require.Equal(t, "button 2: 1 (initial)", ev.String())

	ev, err = Decode([]byte{0, 0, 0, 0, 0, 0, 0x04, 0})
	require.NoError(t, err)
	require.Equal(t, KindUnknown, ev.Kind)
	require.False(t, ev.Pressed())

	_, err = Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDeflection(t *testing.T) {
	require.Equal(t, -1.0, Axis(1, AxisMax).Deflection())
	require.Equal(t, 1.0, Axis(1, -32768).Deflection())
	require.InDelta(t, 0.5, Axis(0, -AxisMax/2).Deflection(), 1e-4)
	require.Zero(t, Axis(0, 0).Deflection())
	require.False(t, Axis(0, 1).Pressed())
	require.False(t, Button(0, false).Pressed())
	require.True(t, Button(0, true).Pressed())
}

func TestInfo(t *testing.T) {
	require.Equal(t, "/dev/input/js3", Path(3))
	info := Info{Index: 3, Name: "Pad", Axes: 8, Buttons: 11}
	require.Equal(t, `js3 "Pad" (8 axes, 11 buttons)`, info.String())
}
