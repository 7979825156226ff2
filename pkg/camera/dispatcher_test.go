package camera

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	ptzif "camdeck/v0/server/route/ptz/interfaces"
)

type sentCommand struct {
	CameraId string
	Kind     CommandKind
	Move     ptzif.MoveCommand
}

// fakeSender records commands; the first call blocks until release is closed.
type fakeSender struct {
	mutex   sync.Mutex
	sent    []sentCommand
	release chan struct{}
	started chan struct{}
	once    sync.Once
	failAll bool
}

func newFakeSender(block bool) *fakeSender {
	s := &fakeSender{
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	if !block {
		close(s.release)
	}
	return s
}

func (s *fakeSender) record(cmd sentCommand) error {
	s.once.Do(func() { close(s.started) })
	<-s.release

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sent = append(s.sent, cmd)
	if s.failAll {
		return fmt.Errorf("boom")
	}
	return nil
}

func (s *fakeSender) MovePTZ(ctx context.Context, cameraId string, cmd ptzif.MoveCommand) error {
	return s.record(sentCommand{CameraId: cameraId, Kind: CommandMove, Move: cmd})
}

func (s *fakeSender) StopPTZ(ctx context.Context, cameraId string) error {
	return s.record(sentCommand{CameraId: cameraId, Kind: CommandStop})
}

func (s *fakeSender) Sent() []sentCommand {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]sentCommand, len(s.sent))
	copy(out, s.sent)
	return out
}

func collectResults(n int) (func(CommandResult), func(t *testing.T) []CommandResult) {
	results := make(chan CommandResult, 64)
	hook := func(res CommandResult) { results <- res }
	wait := func(t *testing.T) []CommandResult {
		t.Helper()
		out := []CommandResult{}
		for len(out) < n {
			select {
			case res := <-results:
				out = append(out, res)
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out after %d of %d results", len(out), n)
			}
		}
		return out
	}
	return hook, wait
}

func TestDispatcher_PreservesOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newFakeSender(false)
	hook, wait := collectResults(2)
	d := NewCommandDispatcher(ctx, sender, CommandDispatcherOptions{OnResult: hook})

	first := d.Move("1", ptzif.NewMoveCommand(0, 1, 0))
	second := d.Stop("1")
	if second <= first {
		t.Fatalf("sequence not monotonic: %d then %d", first, second)
	}
	wait(t)

	sent := sender.Sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d commands, want 2", len(sent))
	}
	if sent[0].Kind != CommandMove || sent[1].Kind != CommandStop {
		t.Errorf("order = %s, %s; want move, stop", sent[0].Kind, sent[1].Kind)
	}
}

func TestDispatcher_DropsReplacedMoves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newFakeSender(true)
	hook, wait := collectResults(4)
	d := NewCommandDispatcher(ctx, sender, CommandDispatcherOptions{OnResult: hook})

	// First move blocks in flight while the rest queue behind it.
	d.Move("1", ptzif.NewMoveCommand(1, 0, 0))
	<-sender.started
	d.Move("1", ptzif.NewMoveCommand(0, 1, 0))
	d.Move("1", ptzif.NewMoveCommand(0, -1, 0))
	d.Stop("1")
	close(sender.release)

	results := wait(t)
	dropped := 0
	for _, res := range results {
		if res.Dropped {
			dropped++
			if res.Command.Kind != CommandMove || res.Command.Move.Tilt != 1 {
				t.Errorf("dropped %+v, want the replaced tilt up move", res.Command)
			}
		}
	}
	if dropped != 1 {
		t.Errorf("dropped %d moves, want 1", dropped)
	}

	sent := sender.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d commands, want 3", len(sent))
	}
	if sent[0].Move.Pan != 1 || sent[1].Move.Tilt != -1 || sent[2].Kind != CommandStop {
		t.Errorf("sent = %+v, want pan, tilt down, stop", sent)
	}
}

func TestDispatcher_QueuedMoveBeforeStopIsSent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newFakeSender(true)
	hook, wait := collectResults(3)
	d := NewCommandDispatcher(ctx, sender, CommandDispatcherOptions{OnResult: hook})

	d.Stop("1")
	<-sender.started
	d.Move("1", ptzif.NewMoveCommand(0, 1, 0))
	d.Stop("1")
	close(sender.release)

	for _, res := range wait(t) {
		if res.Dropped {
			t.Errorf("dropped %s #%d", res.Command.Kind, res.Command.Seq)
		}
	}
	sent := sender.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d commands, want 3", len(sent))
	}
	if sent[1].Kind != CommandMove || sent[1].Move.Tilt != 1 || sent[2].Kind != CommandStop {
		t.Errorf("sent = %+v, want stop, move up, stop", sent)
	}
}

func TestDispatcher_FailedInFlightCommandIsStale(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newFakeSender(true)
	sender.failAll = true
	hook, wait := collectResults(2)
	d := NewCommandDispatcher(ctx, sender, CommandDispatcherOptions{OnResult: hook})

	d.Move("1", ptzif.NewMoveCommand(1, 0, 0))
	<-sender.started
	d.Stop("1")
	close(sender.release)

	results := wait(t)
	if !results[0].Stale || results[0].Err == nil {
		t.Errorf("first result = %+v, want stale failure", results[0])
	}
	if results[1].Stale {
		t.Errorf("latest command reported as stale")
	}
}

func TestDispatcher_ReapsIdleWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newFakeSender(false)
	hook, wait := collectResults(2)
	d := NewCommandDispatcher(ctx, sender, CommandDispatcherOptions{
		IdleTimeout: 50 * time.Millisecond,
		OnResult:    hook,
	})

	d.Stop("1")
	d.Stop("2")
	wait(t)
	if d.Workers() != 2 {
		t.Fatalf("Workers() = %d, want 2", d.Workers())
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Workers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Workers() = %d after idle timeout, want 0", d.Workers())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
