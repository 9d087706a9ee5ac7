// Package link carries typed messages between the main controller and the
// motor controller over frame encoded serial streams.
package link

import (
	"context"
	"io"

	"github.com/robotalks/soccer.go/pkg/intra/frame"
	"github.com/robotalks/soccer.go/pkg/postcard"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// MaxPayloadSize is the largest message payload fitting a frame.
const MaxPayloadSize = frame.DefaultMaxFrameSize - 2

// Marshaler is a message encoded into a frame payload.
type Marshaler interface {
	MarshalTo(*postcard.Encoder)
}

// unmarshaler is the pointer form of a received message.
type unmarshaler[M any] interface {
	*M
	UnmarshalFrom(*postcard.Decoder)
}

// Endpoint sends messages of type S and receives messages of type R.
type Endpoint[S Marshaler, R any, PR unmarshaler[R]] struct {
	writer *frame.Writer
	reader *frame.Reader
}

// Main is the main controller end of the link.
type Main = Endpoint[*wire.Main2Motor, wire.Motor2Main, *wire.Motor2Main]

// Motor is the motor controller end of the link.
type Motor = Endpoint[*wire.Motor2Main, wire.Main2Motor, *wire.Main2Motor]

// NewMain creates the main controller end over rw.
func NewMain(rw io.ReadWriter) *Main {
	return newEndpoint[*wire.Main2Motor, wire.Motor2Main](rw)
}

// NewMotor creates the motor controller end over rw.
func NewMotor(rw io.ReadWriter) *Motor {
	return newEndpoint[*wire.Motor2Main, wire.Main2Motor](rw)
}

func newEndpoint[S Marshaler, R any, PR unmarshaler[R]](rw io.ReadWriter) *Endpoint[S, R, PR] {
	return &Endpoint[S, R, PR]{
		writer: frame.NewWriter(rw),
		reader: frame.NewReader(rw),
	}
}

// Send encodes msg and writes it as one frame.
func (e *Endpoint[S, R, PR]) Send(msg S) error {
	payload, err := Encode(msg)
	if err != nil {
		return err
	}
	return e.writer.WriteFrame(payload)
}

// Receive blocks for the next frame and decodes it.
// Frame and payload errors satisfy frame.IsFrameError and the next call
// continues with the following frame.
func (e *Endpoint[S, R, PR]) Receive() (msg R, err error) {
	payload, err := e.reader.ReadFrame()
	if err != nil {
		return msg, err
	}
	d := postcard.NewDecoder(payload)
	PR(&msg).UnmarshalFrom(d)
	if err = d.Finish(); err != nil {
		return msg, &frame.DecodeError{Err: err}
	}
	return msg, nil
}

type received[R any] struct {
	msg R
	err error
}

// Serve receives messages until the stream fails or ctx is done, passing
// each one to handle. Frame errors are passed to onError and skipped.
// Reads happen in their own goroutine so ctx interrupts a blocked read.
func (e *Endpoint[S, R, PR]) Serve(ctx context.Context, handle func(R), onError func(error)) error {
	resultCh := make(chan received[R])
	go func() {
		for {
			msg, err := e.Receive()
			select {
			case resultCh <- received[R]{msg: msg, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !frame.IsFrameError(err) {
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-resultCh:
			switch {
			case res.err == nil:
				handle(res.msg)
			case !frame.IsFrameError(res.err):
				return res.err
			case onError != nil:
				onError(res.err)
			}
		}
	}
}

// Encode serializes msg into a frame payload.
func Encode(msg Marshaler) ([]byte, error) {
	e := postcard.NewEncoder(MaxPayloadSize)
	msg.MarshalTo(e)
	return e.Bytes()
}
