package see

import (
	"strings"

	"github.com/robotalks/soccer.go/pkg/sim"
)

// VisibleObject is an object which can be visualized.
type VisibleObject interface {
	sim.Object
	sim.Rectangular
	sim.Positionable2D
}

// Object is the data model of a visualized object.
type Object map[string]any

// Pos is a position.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObjectMapper maps a VisibleObject into data models.
type ObjectMapper interface {
	MapObject(VisibleObject) []Object
}

// MapObjectFunc is the func form of ObjectMapper.
type MapObjectFunc func(VisibleObject) []Object

// MapObject implements ObjectMapper.
func (f MapObjectFunc) MapObject(obj VisibleObject) []Object {
	return f(obj)
}

// Message is one update of the visualization.
type Message struct {
	Action   string `json:"action"`
	Object   Object `json:"object,omitempty"`
	RemoveID string `json:"id,omitempty"`
}

// Actions
const (
	ActionReset  = "reset"
	ActionObject = "object"
	ActionRemove = "remove"
)

// Properties
const (
	PropID     = "id"
	PropType   = "type"
	PropOrigin = "origin"
	PropRadius = "radius"
	PropRotate = "rotate"
	PropStyle  = "style"
)

// ObjectID converts an object name to an ID.
func ObjectID(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// NewObject creates an Object.
func NewObject(typ, id string) Object {
	return Object{PropID: id, PropType: typ}
}

// ObjectFrom places a circle of the object's outline at its pose.
func ObjectFrom(typ string, vo VisibleObject) Object {
	rc, pose := vo.OutlineRect(), vo.Position2D()
	return NewObject(typ, ObjectID(vo.Name())).
		At(pose.X, pose.Y).
		Radius(max(rc.CX, rc.CY) / 2).
		Rotate(pose.Orientation.Degrees())
}

// At sets the origin.
func (o Object) At(x, y float64) Object {
	o[PropOrigin] = &Pos{X: x, Y: y}
	return o
}

// Radius sets the radius.
func (o Object) Radius(r float64) Object {
	o[PropRadius] = r
	return o
}

// Rotate sets the rotation in degrees.
func (o Object) Rotate(deg float64) Object {
	o[PropRotate] = deg
	return o
}

// With sets a custom property.
func (o Object) With(key string, val any) Object {
	o[key] = val
	return o
}
