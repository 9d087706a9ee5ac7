package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPriorityOrder(t *testing.T) {
	var order []int
	loop := NewLoop()
	for _, lv := range []int{PrLvEgress, PrLvIngress, PrLvRadio} {
		lv := lv
		loop.AddController(lv, ControlFunc(func(cc ControlContext) error {
			require.Equal(t, lv, cc.PriorityLevel())
			order = append(order, lv)
			return nil
		}))
	}
	loop.RunIteration(context.Background())
	require.Equal(t, []int{PrLvIngress, PrLvRadio, PrLvEgress}, order)
	require.Equal(t, uint64(1), loop.Iterations())
}

func TestMessages(t *testing.T) {
	loop := NewLoop()
	var seen []Message
	loop.AddController(PrLvIngress, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			seen = append(seen, mc.CurrentMessage())
			if s, ok := mc.CurrentMessage().(string); ok {
				mc.MessageTaken()
				if s == "stop" {
					mc.StopProcessing()
				}
			}
		}))
		return nil
	}))
	var remaining int
	loop.AddController(PrLvEgress, ControlFunc(func(cc ControlContext) error {
		remaining = cc.Messages().Len()
		return nil
	}))

	loop.PostMessage("a")
	loop.PostMessage(1)
	loop.PostMessage("stop")
	loop.PostMessage("b")
	loop.RunIteration(context.Background())
	require.Equal(t, []Message{"a", 1, "stop"}, seen)
	require.Equal(t, 2, remaining)

	seen = nil
	loop.PostMessage("c")
	loop.RunIteration(context.Background())
	require.Equal(t, []Message{1, "b", "c"}, seen)
	require.Equal(t, 1, remaining)
}

func TestPostRunHooks(t *testing.T) {
	loop := NewLoop()
	var calls []string
	loop.AddController(PrLvRadio, ControlFunc(func(cc ControlContext) error {
		calls = append(calls, "ctl")
		if cc.Iteration() == 1 {
			cc.PostRun(ControlFunc(func(ControlContext) error {
				calls = append(calls, "hook")
				return errors.New("ignored")
			}))
		}
		return nil
	}))
	loop.RunIteration(context.Background())
	loop.RunIteration(context.Background())
	require.Equal(t, []string{"ctl", "hook", "ctl"}, calls)
}

func TestTriggerNext(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour
	ran := make(chan struct{}, 1)
	loop.AddController(PrLvRadio, ControlFunc(func(cc ControlContext) error {
		ran <- struct{}{}
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	loop.TriggerNext()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expect iteration timeout")
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

func TestLoopStopsOnRunnerFailure(t *testing.T) {
	loop := NewLoop()
	failure := errors.New("socket closed")
	loop.AddRunnable(RunFunc(func(ctx context.Context) error { return failure }))
	require.Equal(t, failure, loop.Run(context.Background()))
}

func TestRunnerWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx)
	failure := errors.New("failed")
	r.Go(
		NamedRun("canceled", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(context.Context) error { return failure }),
	)
	cancel()
	err := r.Wait()
	require.True(t, errors.Is(err, failure))
}
