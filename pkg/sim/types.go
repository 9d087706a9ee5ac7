package sim

import (
	fx "github.com/robotalks/soccer.go/pkg/framework"
)

// Size2D is the rectangular size on the field in mm.
type Size2D struct {
	CX, CY float64
}

// Pos2D is a position on the field in mm, in the vision coordinate system.
type Pos2D struct {
	X, Y float64
}

// Rect is a rectangle on the field.
type Rect struct {
	Pos2D
	Size2D
}

// Pose2D is a position with the heading of the robot front.
type Pose2D struct {
	Pos2D
	Orientation Angle
}

// Angle is an angle in radians normalized into (-π, π].
type Angle float64

// Rectangular object provides a rectangular outline.
type Rectangular interface {
	OutlineRect() Rect
}

// Positionable2D object maintains a pose on the field.
type Positionable2D interface {
	Position2D() Pose2D
}

// Placeable2D object can be moved to a new pose.
type Placeable2D interface {
	Positionable2D
	SetPose2D(Pose2D) Pose2D
}

// Object is anything on the field.
type Object interface {
	fx.Named
}

// ObjectsChangeListener listens for object changes.
type ObjectsChangeListener interface {
	ObjectsChanged(fx.ControlContext, ...Object)
	ObjectsRemoved(fx.ControlContext, ...Object)
}

// ObjectsChangeSubscriber subscribes objects change notifications.
type ObjectsChangeSubscriber interface {
	SubscribeObjectsChange(ObjectsChangeListener)
}

// Add returns p + p1.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// OffsetBy performs Add in-place.
func (p *Pos2D) OffsetBy(p1 Pos2D) *Pos2D {
	p.X += p1.X
	p.Y += p1.Y
	return p
}

// Rotate returns p rotated counterclockwise around the origin by a.
func (p Pos2D) Rotate(a Angle) Pos2D {
	cos, sin := a.Cos(), a.Sin()
	return Pos2D{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}
