package config

import (
	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/postcard"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// MainV0 is version 0 of the main controller configuration.
type MainV0 struct {
	// RFFrequency in MHz.
	RFFrequency  uint32
	ID           uint8
	DribblerLow  uint16
	DribblerHigh uint16
	// LightBarrierFilterTime in ms.
	LightBarrierFilterTime uint32
}

// DefaultMainV0 returns the factory defaults.
func DefaultMainV0() MainV0 {
	return MainV0{
		RFFrequency:            2400,
		ID:                     0,
		DribblerLow:            0xffff / 20,
		DribblerHigh:           0xffff / 10,
		LightBarrierFilterTime: 200,
	}
}

// MarshalTo implements Record.
func (c *MainV0) MarshalTo(e *postcard.Encoder) {
	e.U32(c.RFFrequency)
	e.U8(c.ID)
	e.U16(c.DribblerLow)
	e.U16(c.DribblerHigh)
	e.U32(c.LightBarrierFilterTime)
}

// UnmarshalFrom implements Record.
func (c *MainV0) UnmarshalFrom(d *postcard.Decoder) {
	c.RFFrequency = d.U32()
	c.ID = d.U8()
	c.DribblerLow = d.U16()
	c.DribblerHigh = d.U16()
	c.LightBarrierFilterTime = d.U32()
}

// Main is the live main controller configuration. Every parameter
// accepts one subscriber.
type Main struct {
	RFFrequency            *observable.Observable[uint32]
	ID                     *observable.Observable[uint8]
	DribblerLow            *observable.Observable[uint16]
	DribblerHigh           *observable.Observable[uint16]
	LightBarrierFilterTime *observable.Observable[uint32]
}

// NewMain creates Main with v.
func NewMain(v MainV0) *Main {
	return &Main{
		RFFrequency:            observable.New(v.RFFrequency, 1),
		ID:                     observable.New(v.ID, 1),
		DribblerLow:            observable.New(v.DribblerLow, 1),
		DribblerHigh:           observable.New(v.DribblerHigh, 1),
		LightBarrierFilterTime: observable.New(v.LightBarrierFilterTime, 1),
	}
}

// Values returns a snapshot.
func (c *Main) Values() MainV0 {
	return MainV0{
		RFFrequency:            c.RFFrequency.Get(),
		ID:                     c.ID.Get(),
		DribblerLow:            c.DribblerLow.Get(),
		DribblerHigh:           c.DribblerHigh.Get(),
		LightBarrierFilterTime: c.LightBarrierFilterTime.Get(),
	}
}

// Apply updates the parameters which differ from v.
func (c *Main) Apply(v MainV0) {
	c.RFFrequency.SetIfDifferent(v.RFFrequency)
	c.ID.SetIfDifferent(v.ID)
	c.DribblerLow.SetIfDifferent(v.DribblerLow)
	c.DribblerHigh.SetIfDifferent(v.DribblerHigh)
	c.LightBarrierFilterTime.SetIfDifferent(v.LightBarrierFilterTime)
}

// Load applies the stored record. On failure the current values are kept
// and the error is logged and returned.
func (c *Main) Load(b Backend) error {
	data, err := b.Load()
	var v MainV0
	if err == nil {
		err = Decode(data, &v)
	}
	if err != nil {
		glog.Errorf("Using default config: %v", err)
		return err
	}
	if v.ID >= wire.MaxRobots {
		v.ID = wire.MaxRobots - 1
	}
	c.Apply(v)
	return nil
}

// Save stores the current values.
func (c *Main) Save(b Backend) error {
	v := c.Values()
	data, err := Encode(&v)
	if err != nil {
		return err
	}
	return b.Save(data)
}
