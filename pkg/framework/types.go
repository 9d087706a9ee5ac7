package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Message is anything posted into the loop from outside, e.g. a packet
// received from the network.
type Message interface{}

// Controller defines the logic executed in every iteration.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of current iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// PriorityLevel gets the current priority level.
	PriorityLevel() int
	// Messages retrieves all messages collected when
	// this iteration starts.
	Messages() MessageStore
	// Iteration is the sequence number of this iteration, starting at 1.
	Iteration() uint64
	// PostRun injects post-run one-shot hooks at current
	// priority level. If called in post-run hooks, new hooks
	// are installed for next iteration.
	PostRun(hooks ...Controller)

	LoopControl
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefine priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvIngress handles input from the network.
	PrLvIngress = PrLvHigh
	// PrLvRadio talks to the robots.
	PrLvRadio = PrLvNormal
	// PrLvEgress sends results back to the network.
	PrLvEgress = PrLvIdle - 1
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PreRunAt injects one-shot pre-run controller hooks at
	// specified priority level.
	PreRunAt(priorityLevel int, controllers ...Controller)
	// PostRunAt injects one-shot post-run controller hooks at
	// specified priority level.
	PostRunAt(priorityLevel int, controllers ...Controller)
	// PostMessage enqueues the message.
	PostMessage(Message)
	// TriggerNext schedules the next iteration to be executed
	// immediately after the current iteration.
	TriggerNext()
}

// MessageStore provides read/write access to a list of messages.
type MessageStore interface {
	// ProcessMessages uses a processor to process all messages.
	ProcessMessages(MessageProcessor)
	// Len returns the number of messages.
	Len() int

	MessageAppender
}

// MessageAppender appends message to store.
type MessageAppender interface {
	// AddMessages appends messages to the store for next processing cycle.
	AddMessages(msgs ...Message)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for current message.
type MessageProcessingContext interface {
	// CurrentMessage gets the current message being processed.
	CurrentMessage() Message
	// MessageTaken indicates the message has been processed and
	// should be removed from store.
	MessageTaken()
	// StopProcessing indicates no need to examine further messages.
	StopProcessing()

	MessageAppender
}
