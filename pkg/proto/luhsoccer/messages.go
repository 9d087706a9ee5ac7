package luhsoccer

import (
	"github.com/golang/protobuf/proto"
)

// LocalVelocity is a velocity in the robot frame, m/s and rad/s.
type LocalVelocity struct {
	Forward          float32 `protobuf:"fixed32,1,opt,name=forward,proto3" json:"forward,omitempty"`
	Left             float32 `protobuf:"fixed32,2,opt,name=left,proto3" json:"left,omitempty"`
	CounterClockwise float32 `protobuf:"fixed32,3,opt,name=counter_clockwise,json=counterClockwise,proto3" json:"counter_clockwise,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *LocalVelocity) ProtoMessage() {}

// Reset implements proto.Message.
func (m *LocalVelocity) Reset() { *m = LocalVelocity{} }

// String implements proto.Message.
func (m *LocalVelocity) String() string { return proto.CompactTextString(m) }

// GlobalVelocity is a velocity in the field frame, m/s and rad/s.
type GlobalVelocity struct {
	X                float32 `protobuf:"fixed32,1,opt,name=x,proto3" json:"x,omitempty"`
	Y                float32 `protobuf:"fixed32,2,opt,name=y,proto3" json:"y,omitempty"`
	CounterClockwise float32 `protobuf:"fixed32,3,opt,name=counter_clockwise,json=counterClockwise,proto3" json:"counter_clockwise,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *GlobalVelocity) ProtoMessage() {}

// Reset implements proto.Message.
func (m *GlobalVelocity) Reset() { *m = GlobalVelocity{} }

// String implements proto.Message.
func (m *GlobalVelocity) String() string { return proto.CompactTextString(m) }

// GlobalPosition is a pose in the field frame, m and rad.
type GlobalPosition struct {
	X     float32 `protobuf:"fixed32,1,opt,name=x,proto3" json:"x,omitempty"`
	Y     float32 `protobuf:"fixed32,2,opt,name=y,proto3" json:"y,omitempty"`
	Theta float32 `protobuf:"fixed32,3,opt,name=theta,proto3" json:"theta,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *GlobalPosition) ProtoMessage() {}

// Reset implements proto.Message.
func (m *GlobalPosition) Reset() { *m = GlobalPosition{} }

// String implements proto.Message.
func (m *GlobalPosition) String() string { return proto.CompactTextString(m) }

// KickerInfo is the kicker part of a command.
// Relative and Absolute form the kicking_speed oneof.
type KickerInfo struct {
	ChargeHint ChargeHint `protobuf:"varint,1,opt,name=charge_hint,json=chargeHint,proto3,enum=luhsoccer.ChargeHint" json:"charge_hint,omitempty"`
	Relative   *float32   `protobuf:"fixed32,2,opt,name=relative" json:"relative,omitempty"`
	Absolute   *float32   `protobuf:"fixed32,3,opt,name=absolute" json:"absolute,omitempty"`
	Mode       KickerMode `protobuf:"varint,4,opt,name=mode,proto3,enum=luhsoccer.KickerMode" json:"mode,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *KickerInfo) ProtoMessage() {}

// Reset implements proto.Message.
func (m *KickerInfo) Reset() { *m = KickerInfo{} }

// String implements proto.Message.
func (m *KickerInfo) String() string { return proto.CompactTextString(m) }

// DribblerInfo is the dribbler part of a command.
// Percent, Rpm and TristateMode form the dribbler_mode oneof.
type DribblerInfo struct {
	Percent      *float32              `protobuf:"fixed32,1,opt,name=percent" json:"percent,omitempty"`
	Rpm          *float32              `protobuf:"fixed32,2,opt,name=rpm" json:"rpm,omitempty"`
	TristateMode *TristateDribblerMode `protobuf:"varint,3,opt,name=tristate_mode,json=tristateMode,enum=luhsoccer.TristateDribblerMode" json:"tristate_mode,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *DribblerInfo) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DribblerInfo) Reset() { *m = DribblerInfo{} }

// String implements proto.Message.
func (m *DribblerInfo) String() string { return proto.CompactTextString(m) }

// ToBasestationPacket is the command for one robot.
// LocalVelocity, GlobalVelocity and GlobalPosition form the movement oneof.
type ToBasestationPacket struct {
	Id             uint32          `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	TeamColor      TeamColor       `protobuf:"varint,2,opt,name=team_color,json=teamColor,proto3,enum=luhsoccer.TeamColor" json:"team_color,omitempty"`
	LocalVelocity  *LocalVelocity  `protobuf:"bytes,3,opt,name=local_velocity,json=localVelocity" json:"local_velocity,omitempty"`
	GlobalVelocity *GlobalVelocity `protobuf:"bytes,4,opt,name=global_velocity,json=globalVelocity" json:"global_velocity,omitempty"`
	GlobalPosition *GlobalPosition `protobuf:"bytes,5,opt,name=global_position,json=globalPosition" json:"global_position,omitempty"`
	KickerInfo     *KickerInfo     `protobuf:"bytes,6,opt,name=kicker_info,json=kickerInfo,proto3" json:"kicker_info,omitempty"`
	DribblerInfo   *DribblerInfo   `protobuf:"bytes,7,opt,name=dribbler_info,json=dribblerInfo,proto3" json:"dribbler_info,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *ToBasestationPacket) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ToBasestationPacket) Reset() { *m = ToBasestationPacket{} }

// String implements proto.Message.
func (m *ToBasestationPacket) String() string { return proto.CompactTextString(m) }

// ToBasestationWrapper is one datagram from the server.
type ToBasestationWrapper struct {
	Packets []*ToBasestationPacket `protobuf:"bytes,1,rep,name=packets,proto3" json:"packets,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *ToBasestationWrapper) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ToBasestationWrapper) Reset() { *m = ToBasestationWrapper{} }

// String implements proto.Message.
func (m *ToBasestationWrapper) String() string { return proto.CompactTextString(m) }

// FirmwareVersion is a semantic version.
type FirmwareVersion struct {
	Major uint32 `protobuf:"varint,1,opt,name=major,proto3" json:"major,omitempty"`
	Minor uint32 `protobuf:"varint,2,opt,name=minor,proto3" json:"minor,omitempty"`
	Patch uint32 `protobuf:"varint,3,opt,name=patch,proto3" json:"patch,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *FirmwareVersion) ProtoMessage() {}

// Reset implements proto.Message.
func (m *FirmwareVersion) Reset() { *m = FirmwareVersion{} }

// String implements proto.Message.
func (m *FirmwareVersion) String() string { return proto.CompactTextString(m) }

// LocalVelocityFeedback is a measured velocity in the robot frame.
type LocalVelocityFeedback struct {
	Forward          float32 `protobuf:"fixed32,1,opt,name=forward,proto3" json:"forward,omitempty"`
	Left             float32 `protobuf:"fixed32,2,opt,name=left,proto3" json:"left,omitempty"`
	CounterClockwise float32 `protobuf:"fixed32,3,opt,name=counter_clockwise,json=counterClockwise,proto3" json:"counter_clockwise,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *LocalVelocityFeedback) ProtoMessage() {}

// Reset implements proto.Message.
func (m *LocalVelocityFeedback) Reset() { *m = LocalVelocityFeedback{} }

// String implements proto.Message.
func (m *LocalVelocityFeedback) String() string { return proto.CompactTextString(m) }

// GlobalVelocityFeedback is a measured velocity in the field frame.
type GlobalVelocityFeedback struct {
	X                float32 `protobuf:"fixed32,1,opt,name=x,proto3" json:"x,omitempty"`
	Y                float32 `protobuf:"fixed32,2,opt,name=y,proto3" json:"y,omitempty"`
	CounterClockwise float32 `protobuf:"fixed32,3,opt,name=counter_clockwise,json=counterClockwise,proto3" json:"counter_clockwise,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *GlobalVelocityFeedback) ProtoMessage() {}

// Reset implements proto.Message.
func (m *GlobalVelocityFeedback) Reset() { *m = GlobalVelocityFeedback{} }

// String implements proto.Message.
func (m *GlobalVelocityFeedback) String() string { return proto.CompactTextString(m) }

// FromBasestationPacket is the feedback of one robot.
// LocalVelocity and GlobalVelocity form the velocity_feedback oneof.
type FromBasestationPacket struct {
	Id                  uint32                  `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	TeamColor           TeamColor               `protobuf:"varint,2,opt,name=team_color,json=teamColor,proto3,enum=luhsoccer.TeamColor" json:"team_color,omitempty"`
	BatteryVoltage      float32                 `protobuf:"fixed32,3,opt,name=battery_voltage,json=batteryVoltage,proto3" json:"battery_voltage,omitempty"`
	KickerVoltage       float32                 `protobuf:"fixed32,4,opt,name=kicker_voltage,json=kickerVoltage,proto3" json:"kicker_voltage,omitempty"`
	HasBall             bool                    `protobuf:"varint,5,opt,name=has_ball,json=hasBall,proto3" json:"has_ball,omitempty"`
	ErrorCode           uint32                  `protobuf:"varint,6,opt,name=error_code,json=errorCode,proto3" json:"error_code,omitempty"`
	BatteryCurrent      *float32                `protobuf:"fixed32,7,opt,name=battery_current,json=batteryCurrent" json:"battery_current,omitempty"`
	BatteryCapacityUsed *float32                `protobuf:"fixed32,8,opt,name=battery_capacity_used,json=batteryCapacityUsed" json:"battery_capacity_used,omitempty"`
	RssiRobot           int32                   `protobuf:"varint,9,opt,name=rssi_robot,json=rssiRobot,proto3" json:"rssi_robot,omitempty"`
	RssiBasestation     int32                   `protobuf:"varint,10,opt,name=rssi_basestation,json=rssiBasestation,proto3" json:"rssi_basestation,omitempty"`
	GlobalPosition      *GlobalPosition         `protobuf:"bytes,11,opt,name=global_position,json=globalPosition,proto3" json:"global_position,omitempty"`
	FeedbackTime        uint64                  `protobuf:"varint,12,opt,name=feedback_time,json=feedbackTime,proto3" json:"feedback_time,omitempty"`
	FirmwareVersion     *FirmwareVersion        `protobuf:"bytes,13,opt,name=firmware_version,json=firmwareVersion,proto3" json:"firmware_version,omitempty"`
	MeasuredRtt         uint32                  `protobuf:"varint,14,opt,name=measured_rtt,json=measuredRtt,proto3" json:"measured_rtt,omitempty"`
	LocalVelocity       *LocalVelocityFeedback  `protobuf:"bytes,15,opt,name=local_velocity,json=localVelocity" json:"local_velocity,omitempty"`
	GlobalVelocity      *GlobalVelocityFeedback `protobuf:"bytes,16,opt,name=global_velocity,json=globalVelocity" json:"global_velocity,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *FromBasestationPacket) ProtoMessage() {}

// Reset implements proto.Message.
func (m *FromBasestationPacket) Reset() { *m = FromBasestationPacket{} }

// String implements proto.Message.
func (m *FromBasestationPacket) String() string { return proto.CompactTextString(m) }

// FromBasestationWrapper is one feedback datagram to the server.
type FromBasestationWrapper struct {
	Packets         []*FromBasestationPacket `protobuf:"bytes,1,rep,name=packets,proto3" json:"packets,omitempty"`
	ErrorCode       uint32                   `protobuf:"varint,2,opt,name=error_code,json=errorCode,proto3" json:"error_code,omitempty"`
	FirmwareVersion *FirmwareVersion         `protobuf:"bytes,3,opt,name=firmware_version,json=firmwareVersion,proto3" json:"firmware_version,omitempty"`
	SeqId           uint32                   `protobuf:"varint,4,opt,name=seq_id,json=seqId,proto3" json:"seq_id,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *FromBasestationWrapper) ProtoMessage() {}

// Reset implements proto.Message.
func (m *FromBasestationWrapper) Reset() { *m = FromBasestationWrapper{} }

// String implements proto.Message.
func (m *FromBasestationWrapper) String() string { return proto.CompactTextString(m) }
