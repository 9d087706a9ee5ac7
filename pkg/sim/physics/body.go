// Package physics simulates the motion of robots on the field.
package physics

import (
	"math"
	"sync"
	"time"

	"github.com/robotalks/soccer.go/pkg/robot/motorcontroller"
	"github.com/robotalks/soccer.go/pkg/sim"
)

// Body is a robot moving with a robot frame velocity.
type Body struct {
	lock       sync.Mutex
	pose       sim.Pose2D
	lastUpdate time.Time
}

// NewBody creates a Body at pose.
func NewBody(pose sim.Pose2D) *Body {
	return &Body{pose: pose}
}

// Position2D implements sim.Positionable2D.
func (b *Body) Position2D() sim.Pose2D {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.pose
}

// SetPose2D implements sim.Placeable2D.
func (b *Body) SetPose2D(pose sim.Pose2D) sim.Pose2D {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.pose = pose
	return b.pose
}

// Update advances the pose to now with velocity held since the previous
// update. The first update only records the time.
func (b *Body) Update(now time.Time, velocity motorcontroller.Movement) sim.Pose2D {
	b.lock.Lock()
	defer b.lock.Unlock()
	if !b.lastUpdate.IsZero() && now.After(b.lastUpdate) {
		b.pose = Advance(b.pose, velocity, now.Sub(b.lastUpdate).Seconds())
	}
	b.lastUpdate = now
	return b.pose
}

// Advance moves pose for secs with a constant robot frame velocity. The
// robot follows an arc when it turns.
func Advance(pose sim.Pose2D, v motorcontroller.Movement, secs float64) sim.Pose2D {
	turn := v.CounterClockwise * secs
	var local sim.Pos2D
	if math.Abs(turn) < 1e-9 {
		local = sim.Pos2D{X: v.Forward * secs, Y: v.Left * secs}
	} else {
		sin, cos := math.Sin(turn), math.Cos(turn)
		w := v.CounterClockwise
		local = sim.Pos2D{
			X: (v.Forward*sin + v.Left*(cos-1)) / w,
			Y: (v.Forward*(1-cos) + v.Left*sin) / w,
		}
	}
	// m to mm
	local = sim.Pos2D{X: local.X * 1000, Y: local.Y * 1000}
	pose.Pos2D.OffsetBy(local.Rotate(pose.Orientation))
	pose.Orientation = pose.Orientation.Add(sim.Angle(turn))
	return pose
}
