package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the iteration interval of a Loop without Interval.
const DefaultInterval = 10 * time.Millisecond

// Loop runs controllers by priority level, once per Interval or
// immediately when triggered.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels]controllerList

	runners []Runnable

	messages  messageList
	iteration uint64
	lock      sync.Mutex

	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopIteration struct {
	*Loop
	ctx           context.Context
	time          time.Time
	seq           uint64
	priorityLevel int
	messages      messageList
}

type messageList struct {
	head *messageItem
	tail *messageItem
	len  int
}

type messageItem struct {
	msg  Message
	next *messageItem
}

func (l *messageList) append(item *messageItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
	l.len++
}

func (l *messageList) splice(src *messageList) {
	*l = *src
	*src = messageList{}
}

func (l *messageList) concat(lst *messageList) {
	if lst.head == nil {
		return
	}
	if l.head == nil {
		l.head = lst.head
	} else {
		l.tail.next = lst.head
	}
	l.tail = lst.tail
	l.len += lst.len
	*lst = messageList{}
}

type controllerList struct {
	preHooks    []Controller
	controllers []Controller
	postHooks   []Controller
	lock        sync.Mutex
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{
		Interval: DefaultInterval,
		wakeUpCh: make(chan struct{}, 1),
	}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop.
// Controllers which are also Runnable run in background with the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	lst := &l.controllers[priorityLevel]
	lst.controllers = append(lst.controllers, ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	runner := NewRunnerWith(runCtx)
	runner.Go(l.runners...)
	defer func() {
		cancel()
		if err := runner.Wait(); err != nil {
			glog.Errorf("loop runners: %v", err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-runner.errCh:
			runner.collected++
			if err != nil && ctx.Err() == nil {
				return err
			}
		case <-ticker.C:
			l.RunIteration(ctx)
		case <-l.wakeUpCh:
			l.RunIteration(ctx)
		}
	}
}

// PreRunAt implements LoopControl.
func (l *Loop) PreRunAt(priorityLevel int, hooks ...Controller) {
	lst := &l.controllers[priorityLevel]
	lst.lock.Lock()
	lst.preHooks = append(lst.preHooks, hooks...)
	lst.lock.Unlock()
}

// PostRunAt implements LoopControl.
func (l *Loop) PostRunAt(priorityLevel int, hooks ...Controller) {
	lst := &l.controllers[priorityLevel]
	lst.lock.Lock()
	lst.postHooks = append(lst.postHooks, hooks...)
	lst.lock.Unlock()
}

// PostMessage implements LoopControl.
// It is safe to call from any goroutine.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages.append(&messageItem{msg: msg})
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Iterations returns the number of completed iterations.
func (l *Loop) Iterations() uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.iteration
}

// RunIteration runs all controllers once with the messages posted so far.
// Messages not taken by any controller are kept for the next iteration.
func (l *Loop) RunIteration(ctx context.Context) {
	iter := &loopIteration{Loop: l, time: time.Now(), ctx: ctx}
	l.lock.Lock()
	iter.messages.splice(&l.messages)
	l.iteration++
	iter.seq = l.iteration
	l.lock.Unlock()
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		l.controllers[i].run(iter)
	}
	if iter.messages.len > 0 {
		l.lock.Lock()
		iter.messages.concat(&l.messages)
		l.messages = iter.messages
		l.lock.Unlock()
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}

func (t *loopIteration) Iteration() uint64 {
	return t.seq
}

func (t *loopIteration) Messages() MessageStore {
	return t
}

func (t *loopIteration) PostRun(hooks ...Controller) {
	t.PostRunAt(t.priorityLevel, hooks...)
}

// MessageStore implementations

type messageContext struct {
	iter  *loopIteration
	item  *messageItem
	taken bool
	stop  bool
}

func (c *messageContext) CurrentMessage() Message     { return c.item.msg }
func (c *messageContext) MessageTaken()               { c.taken = true }
func (c *messageContext) StopProcessing()             { c.stop = true }
func (c *messageContext) AddMessages(msgs ...Message) { c.iter.AddMessages(msgs...) }

func (t *loopIteration) Len() int {
	return t.messages.len
}

func (t *loopIteration) ProcessMessages(proc MessageProcessor) {
	var msgs, remains messageList
	msgs.splice(&t.messages)
	for msgs.head != nil {
		item := msgs.head
		msgs.head = item.next
		msgs.len--
		item.next = nil
		mctx := &messageContext{iter: t, item: item}
		proc.ProcessMessage(mctx)
		if !mctx.taken {
			remains.append(item)
		}
		if mctx.stop {
			if msgs.head != nil {
				remains.concat(&msgs)
			}
			break
		}
	}
	// messages added while processing go after the remaining ones
	remains.concat(&t.messages)
	t.messages = remains
}

func (t *loopIteration) AddMessages(msgs ...Message) {
	for _, msg := range msgs {
		t.messages.append(&messageItem{msg: msg})
	}
}

func (c *controllerList) run(iter *loopIteration) {
	c.lock.Lock()
	ctls := c.preHooks
	c.preHooks = nil
	c.lock.Unlock()
	runControllers(iter, ctls)
	runControllers(iter, c.controllers)
	c.lock.Lock()
	ctls, c.postHooks = c.postHooks, nil
	c.lock.Unlock()
	runControllers(iter, ctls)
}

func runControllers(iter *loopIteration, ctls []Controller) {
	for _, ctl := range ctls {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
}
