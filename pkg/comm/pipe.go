package comm

import (
	"context"
	"io"
	"sync"

	fx "github.com/robotalks/soccer.go/pkg/framework"
)

// Pipe reads packets from a PacketReadWriter in background and
// serializes the writes.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    PacketHandler

	sendLock sync.Mutex
}

// NewPipe creates a Pipe with given PacketReadWriter.
func NewPipe(rw PacketReadWriter, handler PacketHandler) *Pipe {
	return &Pipe{ReadWriter: rw, Handler: handler}
}

// WritePacket implements PacketWriter.
func (p *Pipe) WritePacket(pkt []byte) error {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run implements Runnable.
func (p *Pipe) Run(ctx context.Context) error {
	closer, ok := p.ReadWriter.(io.Closer)
	if !ok {
		// the ReadWriter ends ReadPacket by itself, e.g. mqtt.ReadWriter.
		return p.readLoop(ctx)
	}
	return fx.RunWithContextCloser(ctx, closer, func() error { return p.readLoop(ctx) })
}

func (p *Pipe) readLoop(ctx context.Context) error {
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err != nil {
			return err
		}
		if h := p.Handler; h != nil {
			if err = h.HandlePacket(ctx, pkt); err != nil {
				return err
			}
		}
	}
}

// Close implements Closer.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	if adder, ok := p.ReadWriter.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := p.ReadWriter.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddRunnable(p)
}
