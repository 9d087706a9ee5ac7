// Package see streams the simulated field to github.com/robotalks/see.
package see

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/comm"
	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/sim"
)

// Adapter collects object changes and writes them as one JSON batch per
// loop iteration.
type Adapter struct {
	Config *Config
	Mapper ObjectMapper
	Out    comm.PacketWriter

	initial bool
	updated map[string]sim.Object
	removed map[string]bool
}

// NewAdapter creates the adapter writing to out.
func NewAdapter(config *Config, out comm.PacketWriter) *Adapter {
	return &Adapter{
		Config:  config,
		Mapper:  MapObjectFunc(func(vo VisibleObject) []Object { return []Object{ObjectFrom("robot", vo)} }),
		Out:     out,
		initial: true,
		updated: make(map[string]sim.Object),
		removed: make(map[string]bool),
	}
}

// Subscribe is a helper to subscribe object changes.
func (a *Adapter) Subscribe(sub sim.ObjectsChangeSubscriber) *Adapter {
	sub.SubscribeObjectsChange(a)
	return a
}

// ObjectsChanged implements ObjectsChangeListener.
func (a *Adapter) ObjectsChanged(cc fx.ControlContext, objs ...sim.Object) {
	for _, obj := range objs {
		a.updated[obj.Name()] = obj
		delete(a.removed, obj.Name())
	}
}

// ObjectsRemoved implements ObjectsChangeListener.
func (a *Adapter) ObjectsRemoved(cc fx.ControlContext, objs ...sim.Object) {
	for _, obj := range objs {
		a.removed[obj.Name()] = true
		delete(a.updated, obj.Name())
	}
}

// AddToLoop implements LoopAdder.
func (a *Adapter) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvIdle, fx.ControlFunc(a.ReportChanges))
}

// ReportChanges writes the changes since the last call.
func (a *Adapter) ReportChanges(cc fx.ControlContext) error {
	msgs := a.Messages()
	if len(msgs) == 0 || a.Out == nil {
		return nil
	}
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode see messages: %w", err)
	}
	// a viewer going away must not stop the simulation
	if err := a.Out.WritePacket(encoded); err != nil {
		glog.V(1).Infof("see: %v", err)
	}
	return nil
}

// Messages drains the changes into messages. The first batch resets the
// view and marks the corners of the area.
func (a *Adapter) Messages() []Message {
	var msgs []Message
	if a.initial {
		w, h := a.Config.W/2, a.Config.H/2
		msgs = []Message{
			{Action: ActionReset},
			{Action: ActionObject, Object: NewObject("corner", "corner-lt").With("loc", "lt").At(-w, h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-lb").With("loc", "lb").At(-w, -h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-rt").With("loc", "rt").At(w, h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-rb").With("loc", "rb").At(w, -h).Radius(1)},
		}
		a.initial = false
		clear(a.removed)
	}

	names := make([]string, 0, len(a.updated))
	for name := range a.updated {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vo, ok := a.updated[name].(VisibleObject)
		if !ok {
			continue
		}
		for _, mapped := range a.Mapper.MapObject(vo) {
			if mapped != nil {
				msgs = append(msgs, Message{Action: ActionObject, Object: mapped})
			}
		}
	}
	for name := range a.removed {
		msgs = append(msgs, Message{Action: ActionRemove, RemoveID: ObjectID(name)})
	}
	clear(a.updated)
	clear(a.removed)
	return msgs
}
