package mqtt

import (
	"context"
	"io"
	"sync"
)

// Topics relative to the Queue prefix.
const (
	CommandTopic  = "cmd"
	FeedbackTopic = "feedback"
	MetaTopic     = "meta"
)

// ReadWriter implements PacketReadWriter bound to a pair of topics.
// Packets are only received while Run is active.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	doneCh   chan struct{}
	once     sync.Once
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, 4),
		doneCh:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForServer binds the topics of the basestation side:
// receives commands and publishes feedback.
func (p *ReadWriter) ForServer() *ReadWriter {
	return p.WithTopics(CommandTopic, FeedbackTopic)
}

// ForClient binds the topics of the game server side:
// receives feedback and publishes commands.
func (p *ReadWriter) ForClient() *ReadWriter {
	return p.WithTopics(FeedbackTopic, CommandTopic)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.doneCh:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	var sub *Subscription
	if p.SubTopic != "" {
		sub = p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	}
	<-ctx.Done()
	p.once.Do(func() { close(p.doneCh) })
	if sub != nil {
		sub.Close()
	}
	return ctx.Err()
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.doneCh:
	}
}
