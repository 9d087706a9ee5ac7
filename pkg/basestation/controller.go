package basestation

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/soccer.go/pkg/comm"
	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

// DefaultStatusInterval is the interval of the status report.
const DefaultStatusInterval = time.Second

// ServerPacket is posted into the Loop for every packet received from the
// game server.
type ServerPacket struct {
	Wrapper  *luhsoccer.ToBasestationWrapper
	Received time.Time
}

// FeedbackSink consumes every non-empty feedback aggregate.
type FeedbackSink interface {
	HandleFeedback(*luhsoccer.FromBasestationWrapper)
}

// FeedbackSinkFunc is func form of FeedbackSink.
type FeedbackSinkFunc func(*luhsoccer.FromBasestationWrapper)

// HandleFeedback implements FeedbackSink.
func (f FeedbackSinkFunc) HandleFeedback(w *luhsoccer.FromBasestationWrapper) {
	f(w)
}

// Status is a snapshot of the basestation counters.
type Status struct {
	Server          string
	SeqID           uint32
	Pending         int
	Cycles          uint64
	PacketsReceived uint64
	PacketsDropped  uint64
	FeedbackSent    uint64
	LastFeedback    time.Time
	Radio           CycleStats
}

// Basestation connects the server transport, the State Table and the
// radio Scheduler through a Loop:
//   - PrLvIngress takes the posted ServerPackets in arrival order;
//   - PrLvRadio handles each of them in turn: stores its commands, runs a
//     Scheduler cycle when any command is pending and drains the feedback,
//     so the sequence id advances once per server packet;
//   - PrLvEgress sends the non-empty feedback aggregates;
//   - PrLvIdle logs the status every StatusInterval.
type Basestation struct {
	Table          *StateTable
	Scheduler      *Scheduler
	StatusInterval time.Duration

	server     comm.PacketReadWriter
	pipe       *comm.Pipe
	egress     comm.WriterMux
	sinks      []FeedbackSink
	received   []*luhsoccer.ToBasestationWrapper
	outgoing   []*luhsoccer.FromBasestationWrapper
	lastStatus time.Time

	lock   sync.Mutex
	status Status
}

// New creates a Basestation serving the server transport.
func New(server comm.PacketReadWriter, sched *Scheduler) *Basestation {
	b := &Basestation{
		Table:          sched.Table,
		Scheduler:      sched,
		StatusInterval: DefaultStatusInterval,
		server:         server,
	}
	b.pipe = comm.NewPipe(server, nil)
	b.egress.Add(b.pipe)
	return b
}

// AddFeedbackWriter sends the encoded feedback aggregates to more writers.
func (b *Basestation) AddFeedbackWriter(writers ...comm.PacketWriter) *Basestation {
	b.egress.Add(writers...)
	return b
}

// AddFeedbackSink passes the feedback aggregates to sinks.
func (b *Basestation) AddFeedbackSink(sinks ...FeedbackSink) *Basestation {
	b.sinks = append(b.sinks, sinks...)
	return b
}

// Status returns a snapshot of the counters.
func (b *Basestation) Status() Status {
	b.lock.Lock()
	st := b.status
	b.lock.Unlock()
	st.SeqID = b.Table.SeqID()
	st.Pending = len(b.Table.Pending())
	if peer, ok := b.server.(interface{ Peer() net.Addr }); ok {
		if addr := peer.Peer(); addr != nil {
			st.Server = addr.String()
		}
	}
	return st
}

// AddToLoop implements LoopAdder.
func (b *Basestation) AddToLoop(loop *fx.Loop) {
	b.pipe.Handler = &Ingress{Loop: loop, Basestation: b}
	loop.Add(b.pipe)
	loop.AddController(fx.PrLvIngress, fx.ControlFunc(b.ingest))
	loop.AddController(fx.PrLvRadio, fx.ControlFunc(b.transmit))
	loop.AddController(fx.PrLvEgress, fx.ControlFunc(b.sendFeedback))
	loop.AddController(fx.PrLvIdle, fx.ControlFunc(b.report))
}

func (b *Basestation) ingest(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		if pkt, ok := mc.CurrentMessage().(*ServerPacket); ok {
			mc.MessageTaken()
			b.received = append(b.received, pkt.Wrapper)
		}
	}))
	return nil
}

func (b *Basestation) transmit(cc fx.ControlContext) error {
	for n, w := range b.received {
		b.Table.UpdateFromNetwork(w)
		if b.Table.HasPending() {
			stats := b.Scheduler.RunCycle(cc.Context())
			b.lock.Lock()
			b.status.Cycles++
			b.status.Radio.Add(stats)
			b.lock.Unlock()
		}
		if hasAny, fb := b.Table.TakeAllFeedback(); hasAny {
			b.outgoing = append(b.outgoing, fb)
		}
		b.received[n] = nil
	}
	b.received = b.received[:0]
	return nil
}

func (b *Basestation) sendFeedback(cc fx.ControlContext) error {
	for n, w := range b.outgoing {
		b.outgoing[n] = nil
		for _, sink := range b.sinks {
			sink.HandleFeedback(w)
		}
		data, err := proto.Marshal(w)
		if err != nil {
			glog.Errorf("Failed to encode feedback: %v", err)
			continue
		}
		b.lock.Lock()
		b.status.FeedbackSent++
		b.status.LastFeedback = cc.Time()
		b.lock.Unlock()
		if err := b.egress.WritePacket(data); err != nil {
			glog.Errorf("Failed to send feedback: %v", err)
		}
	}
	b.outgoing = b.outgoing[:0]
	return nil
}

func (b *Basestation) report(cc fx.ControlContext) error {
	if b.StatusInterval <= 0 || cc.Time().Sub(b.lastStatus) < b.StatusInterval {
		return nil
	}
	b.lastStatus = cc.Time()
	st := b.Status()
	server := st.Server
	if server == "" {
		server = "none"
	}
	glog.Infof("server %s, pending %d, seq %d, received %d, dropped %d, cycles %d, %s",
		server, st.Pending, st.SeqID, st.PacketsReceived, st.PacketsDropped, st.Cycles, st.Radio)
	return nil
}

// Ingress decodes packets from the server and posts them into the Loop.
type Ingress struct {
	Loop        fx.LoopControl
	Basestation *Basestation
}

// HandlePacket implements comm.PacketHandler.
// Undecodable packets are logged and dropped.
func (i *Ingress) HandlePacket(ctx context.Context, pkt []byte) error {
	var w luhsoccer.ToBasestationWrapper
	if err := proto.Unmarshal(pkt, &w); err != nil {
		glog.Errorf("Failed to decode server packet: %v", err)
		i.count(false)
		return nil
	}
	i.count(true)
	i.Loop.PostMessage(&ServerPacket{Wrapper: &w, Received: time.Now()})
	i.Loop.TriggerNext()
	return nil
}

func (i *Ingress) count(ok bool) {
	b := i.Basestation
	if b == nil {
		return
	}
	b.lock.Lock()
	if ok {
		b.status.PacketsReceived++
	} else {
		b.status.PacketsDropped++
	}
	b.lock.Unlock()
}
