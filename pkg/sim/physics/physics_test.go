package physics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/robot/motorcontroller"
	"github.com/robotalks/soccer.go/pkg/sim"
)

func TestAdvance(t *testing.T) {
	testCases := []struct {
		name     string
		from     sim.Pose2D
		velocity motorcontroller.Movement
		secs     float64
		expect   sim.Pose2D
	}{
		{
			name:     "forward",
			velocity: motorcontroller.Movement{Forward: 1},
			secs:     1,
			expect:   sim.Pose2D{Pos2D: sim.Pos2D{X: 1000}},
		},
		{
			name:     "forward facing left",
			from:     sim.Pose2D{Orientation: sim.Degrees(90)},
			velocity: motorcontroller.Movement{Forward: 0.5},
			secs:     2,
			expect:   sim.Pose2D{Pos2D: sim.Pos2D{Y: 1000}, Orientation: sim.Degrees(90)},
		},
		{
			name:     "sideways",
			from:     sim.Pose2D{Pos2D: sim.Pos2D{X: 100, Y: -100}},
			velocity: motorcontroller.Movement{Left: -1},
			secs:     0.5,
			expect:   sim.Pose2D{Pos2D: sim.Pos2D{X: 100, Y: -600}},
		},
		{
			name:     "turn in place",
			velocity: motorcontroller.Movement{CounterClockwise: math.Pi / 2},
			secs:     1,
			expect:   sim.Pose2D{Orientation: sim.Degrees(90)},
		},
		{
			name:     "arc",
			velocity: motorcontroller.Movement{Forward: 1, CounterClockwise: math.Pi / 2},
			secs:     1,
			expect: sim.Pose2D{
				Pos2D:       sim.Pos2D{X: 2000 / math.Pi, Y: 2000 / math.Pi},
				Orientation: sim.Degrees(90),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pose := Advance(tc.from, tc.velocity, tc.secs)
			require.InDelta(t, tc.expect.X, pose.X, 1e-6)
			require.InDelta(t, tc.expect.Y, pose.Y, 1e-6)
			require.InDelta(t, float64(tc.expect.Orientation), float64(pose.Orientation), 1e-9)
		})
	}
}

func TestBodyUpdate(t *testing.T) {
	b := NewBody(sim.Pose2D{})
	start := time.Now()
	v := motorcontroller.Movement{Forward: 2}
	require.Equal(t, sim.Pose2D{}, b.Update(start, v))
	pose := b.Update(start.Add(100*time.Millisecond), v)
	require.InDelta(t, 200, pose.X, 1e-6)
	require.Equal(t, pose, b.Position2D())
}

func TestWheels(t *testing.T) {
	now := time.Now()
	w := NewWheels()
	w.now = func() time.Time { return now }
	target := [4]float64{10, -10, 5, 0}

	speeds, err := w.Regulate(target)
	require.NoError(t, err)
	require.Equal(t, [4]float64{}, speeds)

	now = now.Add(w.TimeConstant)
	speeds, err = w.Regulate(target)
	require.NoError(t, err)
	for i := range speeds {
		require.InDelta(t, target[i]*(1-math.Exp(-1)), speeds[i], 1e-9)
	}

	now = now.Add(time.Second)
	speeds, _ = w.Regulate(target)
	for i := range speeds {
		require.InDelta(t, target[i], speeds[i], 1e-9)
	}

	require.NoError(t, w.Stop())
	require.Equal(t, [4]float64{}, w.Speeds())
}
