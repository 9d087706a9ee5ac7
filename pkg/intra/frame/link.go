package frame

import (
	"context"
	"io"
)

// FrameHandler is called when a valid frame is received.
type FrameHandler interface {
	HandleFrame(ctx context.Context, payload []byte)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(context.Context, []byte)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, payload []byte) {
	f(ctx, payload)
}

// ErrorHandler is called when a frame is dropped.
type ErrorHandler interface {
	HandleFrameError(ctx context.Context, err error)
}

// HandleFrameErrorFunc is func type of ErrorHandler.
type HandleFrameErrorFunc func(context.Context, error)

// HandleFrameError implements ErrorHandler.
func (f HandleFrameErrorFunc) HandleFrameError(ctx context.Context, err error) {
	f(ctx, err)
}

// Link is a duplex frame channel over a byte stream.
// Run owns the receive half; Send may be called from any goroutine.
type Link struct {
	ReadWriter   io.ReadWriter
	Handler      FrameHandler
	ErrorHandler ErrorHandler
	MaxFrameSize int

	writer *Writer
}

// NewLink creates a Link.
func NewLink(rw io.ReadWriter) *Link {
	return &Link{
		ReadWriter:   rw,
		MaxFrameSize: DefaultMaxFrameSize,
		writer:       NewWriter(rw),
	}
}

// Send sends a frame.
func (l *Link) Send(payload []byte) error {
	return l.writer.WriteFrame(payload)
}

type readResult struct {
	payload []byte
	err     error
}

// Run receives frames until the stream fails or ctx is done.
// Dropped frames are reported to ErrorHandler and do not stop the loop.
func (l *Link) Run(ctx context.Context) error {
	resultCh := make(chan readResult)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.readLoop(subCtx, resultCh)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-resultCh:
			if res.err == nil {
				if h := l.Handler; h != nil {
					h.HandleFrame(ctx, res.payload)
				}
				continue
			}
			if !IsFrameError(res.err) {
				return res.err
			}
			if h := l.ErrorHandler; h != nil {
				h.HandleFrameError(ctx, res.err)
			}
		}
	}
}

func (l *Link) readLoop(ctx context.Context, resultCh chan readResult) {
	reader := NewReaderSize(l.ReadWriter, l.MaxFrameSize)
	for {
		payload, err := reader.ReadFrame()
		select {
		case resultCh <- readResult{payload: payload, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil && !IsFrameError(err) {
			return
		}
	}
}
