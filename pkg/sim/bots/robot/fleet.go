package robot

import (
	"time"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/proto/sslvision"
	"github.com/robotalks/soccer.go/pkg/sim"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// VisionSink receives the detection frames of the simulated camera.
type VisionSink interface {
	Update(*sslvision.SSL_WrapperPacket)
}

// Fleet moves the simulated robots on the field and reports them as a
// camera would.
type Fleet struct {
	Robots   []*Robot
	Vision   VisionSink
	CameraID uint32

	frame     uint32
	started   time.Time
	listeners []sim.ObjectsChangeListener
}

// SubscribeObjectsChange implements ObjectsChangeSubscriber. Listeners are
// told about every robot after each step.
func (f *Fleet) SubscribeObjectsChange(ln sim.ObjectsChangeListener) {
	f.listeners = append(f.listeners, ln)
}

// AddToLoop implements LoopAdder.
func (f *Fleet) AddToLoop(l *fx.Loop) {
	for _, r := range f.Robots {
		l.AddRunnable(r)
	}
	l.AddController(fx.PrLvLow, fx.ControlFunc(f.Step))
}

// Step advances every robot to the iteration time, notifies listeners and
// emits one detection frame.
func (f *Fleet) Step(cc fx.ControlContext) error {
	now := cc.Time()
	if f.started.IsZero() {
		f.started = now
	}
	objs := make([]sim.Object, 0, len(f.Robots))
	for _, r := range f.Robots {
		r.Body.Update(now, r.Motor.Signals.RobotVelocity.Get())
		objs = append(objs, r)
	}
	for _, ln := range f.listeners {
		ln.ObjectsChanged(cc, objs...)
	}
	if f.Vision != nil {
		f.Vision.Update(f.DetectionFrame(now))
	}
	return nil
}

// DetectionFrame builds the vision packet with the current poses.
func (f *Fleet) DetectionFrame(now time.Time) *sslvision.SSL_WrapperPacket {
	f.frame++
	t := now.Sub(f.started).Seconds()
	frame := &sslvision.SSL_DetectionFrame{
		FrameNumber: proto.Uint32(f.frame),
		TCapture:    proto.Float64(t),
		TSent:       proto.Float64(t),
		CameraId:    proto.Uint32(f.CameraID),
	}
	for _, r := range f.Robots {
		pose := r.Position2D()
		detected := &sslvision.SSL_DetectionRobot{
			Confidence:  proto.Float32(1),
			RobotId:     proto.Uint32(uint32(r.ID)),
			X:           proto.Float32(float32(pose.X)),
			Y:           proto.Float32(float32(pose.Y)),
			Orientation: proto.Float32(float32(pose.Orientation.Unsigned())),
			PixelX:      proto.Float32(0),
			PixelY:      proto.Float32(0),
		}
		if r.Team == wire.TeamYellow {
			frame.RobotsYellow = append(frame.RobotsYellow, detected)
		} else {
			frame.RobotsBlue = append(frame.RobotsBlue, detected)
		}
	}
	return &sslvision.SSL_WrapperPacket{Detection: frame}
}
