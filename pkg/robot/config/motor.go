package config

import (
	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/postcard"
)

// Kicker calibration points at 230V on the capacitor.
const (
	DefaultKickerCapDAC230V = 517
	DefaultKickerCapADC230V = 2072
	MaxKickerCapDAC         = 0x3ff
	MaxKickerCapADC         = 0xfff
)

// MotorV0 is version 0 of the motor controller configuration.
type MotorV0 struct {
	// LinearAcceleration in mm/s².
	LinearAcceleration uint16
	// AngularAcceleration in rad/s² x1024.
	AngularAcceleration uint32
	KickerCapDAC230V    uint16
	KickerCapADC230V    uint16
	// KickerChargeVoltage in V.
	KickerChargeVoltage uint8
}

// DefaultMotorV0 returns the factory defaults.
func DefaultMotorV0() MotorV0 {
	return MotorV0{
		LinearAcceleration:  7000,
		AngularAcceleration: 42 * 1024,
		KickerCapDAC230V:    DefaultKickerCapDAC230V,
		KickerCapADC230V:    DefaultKickerCapADC230V,
		KickerChargeVoltage: 200,
	}
}

// MarshalTo implements Record.
func (c *MotorV0) MarshalTo(e *postcard.Encoder) {
	e.U16(c.LinearAcceleration)
	e.U32(c.AngularAcceleration)
	e.U16(c.KickerCapDAC230V)
	e.U16(c.KickerCapADC230V)
	e.U8(c.KickerChargeVoltage)
}

// UnmarshalFrom implements Record.
func (c *MotorV0) UnmarshalFrom(d *postcard.Decoder) {
	c.LinearAcceleration = d.U16()
	c.AngularAcceleration = d.U32()
	c.KickerCapDAC230V = d.U16()
	c.KickerCapADC230V = d.U16()
	c.KickerChargeVoltage = d.U8()
}

// Motor is the live motor controller configuration.
type Motor struct {
	LinearAcceleration  *observable.Observable[uint16]
	AngularAcceleration *observable.Observable[uint32]
	KickerCapDAC230V    *observable.Observable[uint16]
	KickerCapADC230V    *observable.Observable[uint16]
	KickerChargeVoltage *observable.Observable[uint8]
}

// NewMotor creates Motor with v.
func NewMotor(v MotorV0) *Motor {
	return &Motor{
		LinearAcceleration:  observable.New(v.LinearAcceleration, 1),
		AngularAcceleration: observable.New(v.AngularAcceleration, 1),
		KickerCapDAC230V:    observable.New(v.KickerCapDAC230V, 1),
		KickerCapADC230V:    observable.New(v.KickerCapADC230V, 1),
		KickerChargeVoltage: observable.New(v.KickerChargeVoltage, 1),
	}
}

// Values returns a snapshot.
func (c *Motor) Values() MotorV0 {
	return MotorV0{
		LinearAcceleration:  c.LinearAcceleration.Get(),
		AngularAcceleration: c.AngularAcceleration.Get(),
		KickerCapDAC230V:    c.KickerCapDAC230V.Get(),
		KickerCapADC230V:    c.KickerCapADC230V.Get(),
		KickerChargeVoltage: c.KickerChargeVoltage.Get(),
	}
}

// Apply updates the parameters which differ from v.
func (c *Motor) Apply(v MotorV0) {
	c.LinearAcceleration.SetIfDifferent(v.LinearAcceleration)
	c.AngularAcceleration.SetIfDifferent(v.AngularAcceleration)
	c.KickerCapDAC230V.SetIfDifferent(v.KickerCapDAC230V)
	c.KickerCapADC230V.SetIfDifferent(v.KickerCapADC230V)
	c.KickerChargeVoltage.SetIfDifferent(v.KickerChargeVoltage)
}

// Load applies the stored record. On failure the current values are kept
// and the error is logged and returned.
func (c *Motor) Load(b Backend) error {
	data, err := b.Load()
	var v MotorV0
	if err == nil {
		err = Decode(data, &v)
	}
	if err != nil {
		glog.Errorf("Using default config: %v", err)
		return err
	}
	c.Apply(v)
	return nil
}

// Save stores the current values.
func (c *Motor) Save(b Backend) error {
	v := c.Values()
	data, err := Encode(&v)
	if err != nil {
		return err
	}
	return b.Save(data)
}
