// Package sslvision defines the detection messages of the SSL vision
// multicast feed (proto2, messages_robocup_ssl_wrapper.proto).
// Geometry data is not modelled and skipped when decoding.
package sslvision

import (
	"github.com/golang/protobuf/proto"
)

// SSL_DetectionBall is one detected ball.
type SSL_DetectionBall struct {
	Confidence *float32 `protobuf:"fixed32,1,req,name=confidence" json:"confidence,omitempty"`
	Area       *uint32  `protobuf:"varint,2,opt,name=area" json:"area,omitempty"`
	X          *float32 `protobuf:"fixed32,3,req,name=x" json:"x,omitempty"`
	Y          *float32 `protobuf:"fixed32,4,req,name=y" json:"y,omitempty"`
	Z          *float32 `protobuf:"fixed32,5,opt,name=z" json:"z,omitempty"`
	PixelX     *float32 `protobuf:"fixed32,6,req,name=pixel_x,json=pixelX" json:"pixel_x,omitempty"`
	PixelY     *float32 `protobuf:"fixed32,7,req,name=pixel_y,json=pixelY" json:"pixel_y,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SSL_DetectionBall) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SSL_DetectionBall) Reset() { *m = SSL_DetectionBall{} }

// String implements proto.Message.
func (m *SSL_DetectionBall) String() string { return proto.CompactTextString(m) }

// GetX returns x in mm.
func (m *SSL_DetectionBall) GetX() float32 {
	if m != nil && m.X != nil {
		return *m.X
	}
	return 0
}

// GetY returns y in mm.
func (m *SSL_DetectionBall) GetY() float32 {
	if m != nil && m.Y != nil {
		return *m.Y
	}
	return 0
}

// SSL_DetectionRobot is one detected robot.
type SSL_DetectionRobot struct {
	Confidence  *float32 `protobuf:"fixed32,1,req,name=confidence" json:"confidence,omitempty"`
	RobotId     *uint32  `protobuf:"varint,2,opt,name=robot_id,json=robotId" json:"robot_id,omitempty"`
	X           *float32 `protobuf:"fixed32,3,req,name=x" json:"x,omitempty"`
	Y           *float32 `protobuf:"fixed32,4,req,name=y" json:"y,omitempty"`
	Orientation *float32 `protobuf:"fixed32,5,opt,name=orientation" json:"orientation,omitempty"`
	PixelX      *float32 `protobuf:"fixed32,6,req,name=pixel_x,json=pixelX" json:"pixel_x,omitempty"`
	PixelY      *float32 `protobuf:"fixed32,7,req,name=pixel_y,json=pixelY" json:"pixel_y,omitempty"`
	Height      *float32 `protobuf:"fixed32,8,opt,name=height" json:"height,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SSL_DetectionRobot) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SSL_DetectionRobot) Reset() { *m = SSL_DetectionRobot{} }

// String implements proto.Message.
func (m *SSL_DetectionRobot) String() string { return proto.CompactTextString(m) }

// GetRobotId returns the robot id, ok is false when vision did not
// identify the robot.
func (m *SSL_DetectionRobot) GetRobotId() (id uint32, ok bool) {
	if m != nil && m.RobotId != nil {
		return *m.RobotId, true
	}
	return 0, false
}

// GetX returns x in mm.
func (m *SSL_DetectionRobot) GetX() float32 {
	if m != nil && m.X != nil {
		return *m.X
	}
	return 0
}

// GetY returns y in mm.
func (m *SSL_DetectionRobot) GetY() float32 {
	if m != nil && m.Y != nil {
		return *m.Y
	}
	return 0
}

// GetOrientation returns the heading in rad.
func (m *SSL_DetectionRobot) GetOrientation() float32 {
	if m != nil && m.Orientation != nil {
		return *m.Orientation
	}
	return 0
}

// SSL_DetectionFrame is the detection result of one camera.
type SSL_DetectionFrame struct {
	FrameNumber    *uint32               `protobuf:"varint,1,req,name=frame_number,json=frameNumber" json:"frame_number,omitempty"`
	TCapture       *float64              `protobuf:"fixed64,2,req,name=t_capture,json=tCapture" json:"t_capture,omitempty"`
	TSent          *float64              `protobuf:"fixed64,3,req,name=t_sent,json=tSent" json:"t_sent,omitempty"`
	CameraId       *uint32               `protobuf:"varint,4,req,name=camera_id,json=cameraId" json:"camera_id,omitempty"`
	Balls          []*SSL_DetectionBall  `protobuf:"bytes,5,rep,name=balls" json:"balls,omitempty"`
	RobotsYellow   []*SSL_DetectionRobot `protobuf:"bytes,6,rep,name=robots_yellow,json=robotsYellow" json:"robots_yellow,omitempty"`
	RobotsBlue     []*SSL_DetectionRobot `protobuf:"bytes,7,rep,name=robots_blue,json=robotsBlue" json:"robots_blue,omitempty"`
	TCaptureCamera *float64              `protobuf:"fixed64,8,opt,name=t_capture_camera,json=tCaptureCamera" json:"t_capture_camera,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SSL_DetectionFrame) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SSL_DetectionFrame) Reset() { *m = SSL_DetectionFrame{} }

// String implements proto.Message.
func (m *SSL_DetectionFrame) String() string { return proto.CompactTextString(m) }

// GetFrameNumber returns the frame number.
func (m *SSL_DetectionFrame) GetFrameNumber() uint32 {
	if m != nil && m.FrameNumber != nil {
		return *m.FrameNumber
	}
	return 0
}

// GetCameraId returns the camera id.
func (m *SSL_DetectionFrame) GetCameraId() uint32 {
	if m != nil && m.CameraId != nil {
		return *m.CameraId
	}
	return 0
}

// SSL_WrapperPacket is one vision datagram.
type SSL_WrapperPacket struct {
	Detection *SSL_DetectionFrame `protobuf:"bytes,1,opt,name=detection" json:"detection,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SSL_WrapperPacket) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SSL_WrapperPacket) Reset() { *m = SSL_WrapperPacket{} }

// String implements proto.Message.
func (m *SSL_WrapperPacket) String() string { return proto.CompactTextString(m) }
