// The camera package contains workers which deliver PTZ commands to a given
// camera, one at a time and in the order they were issued.
package camera

import (
	"context"
	"log"
	"sync"
	"time"

	"camdeck/v0/internal/config"
	ptzif "camdeck/v0/server/route/ptz/interfaces"
)

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandStop
)

func (k CommandKind) String() string {
	if k == CommandStop {
		return "stop"
	}
	return "move"
}

// Command is a sequenced PTZ command for a single camera.
type Command struct {
	Kind CommandKind
	Move ptzif.MoveCommand
	Seq  uint64
}

// CommandSender delivers PTZ commands to the server.
type CommandSender interface {
	MovePTZ(ctx context.Context, cameraId string, cmd ptzif.MoveCommand) error
	StopPTZ(ctx context.Context, cameraId string) error
}

// CommandResult reports the outcome of a submitted command.
type CommandResult struct {
	CameraId string
	Command  Command
	Err      error

	// Dropped moves were replaced by a newer queued move before being sent.
	Dropped bool

	// Stale commands were superseded while in flight.
	Stale bool
}

type CameraCommandWorker struct {
	ctx            context.Context
	cameraId       string
	sender         CommandSender
	requestTimeout time.Duration
	onResult       func(CommandResult)

	mutex      sync.Mutex
	pending    []Command
	latestSeq  uint64
	busy       bool
	lastActive time.Time
	wake       chan struct{}
	done       chan struct{}
}

type CameraCommandWorkerOptions struct {
	CameraId       string
	Sender         CommandSender
	RequestTimeout time.Duration
	OnResult       func(CommandResult)
}

// NewCameraCommandWorker creates a new CameraCommandWorker instance given the options
// and context. The worker runs until the context is cancelled.
func NewCameraCommandWorker(ctx context.Context, opts CameraCommandWorkerOptions) *CameraCommandWorker {
	worker := &CameraCommandWorker{
		ctx:            ctx,
		cameraId:       opts.CameraId,
		sender:         opts.Sender,
		requestTimeout: opts.RequestTimeout,
		onResult:       opts.OnResult,
		lastActive:     time.Now(),
		wake:           make(chan struct{}, 1),
		done:           make(chan struct{}),
	}

	go worker.run()
	return worker
}

// Submit queues a command behind any pending ones.
func (worker *CameraCommandWorker) Submit(cmd Command) {
	worker.mutex.Lock()
	worker.pending = append(worker.pending, cmd)
	if cmd.Seq > worker.latestSeq {
		worker.latestSeq = cmd.Seq
	}
	worker.lastActive = time.Now()
	worker.mutex.Unlock()

	select {
	case worker.wake <- struct{}{}:
	default:
	}
}

// Idle reports whether the worker has had nothing to do for at least d.
func (worker *CameraCommandWorker) Idle(d time.Duration) bool {
	worker.mutex.Lock()
	defer worker.mutex.Unlock()
	return !worker.busy && len(worker.pending) == 0 && time.Since(worker.lastActive) >= d
}

// Done is closed once the worker goroutine exits.
func (worker *CameraCommandWorker) Done() <-chan struct{} {
	return worker.done
}

// next pops the next command, reporting whether it is a move directly followed by
// another queued move.
func (worker *CameraCommandWorker) next() (Command, bool, bool) {
	worker.mutex.Lock()
	defer worker.mutex.Unlock()

	if len(worker.pending) == 0 {
		if worker.busy {
			worker.lastActive = time.Now()
		}
		worker.busy = false
		return Command{}, false, false
	}

	cmd := worker.pending[0]
	worker.pending = worker.pending[1:]
	worker.busy = true
	replaced := cmd.Kind == CommandMove && len(worker.pending) > 0 && worker.pending[0].Kind == CommandMove
	return cmd, replaced, true
}

func (worker *CameraCommandWorker) superseded(cmd Command) bool {
	worker.mutex.Lock()
	defer worker.mutex.Unlock()
	return cmd.Seq < worker.latestSeq
}

func (worker *CameraCommandWorker) report(res CommandResult) {
	if worker.onResult != nil {
		worker.onResult(res)
	}
}

// run is intended to run in a goroutine, draining the pending queue in order.
func (worker *CameraCommandWorker) run() {
	defer close(worker.done)

	for {
		select {
		case <-worker.ctx.Done():
			if config.Verbose {
				log.Printf("worker context closed, terminating ptz worker[%s]\n", worker.cameraId)
			}
			return
		case <-worker.wake:
		}

		for {
			cmd, replaced, ok := worker.next()
			if !ok {
				break
			}

			// Only a newer move replaces a queued move. A move followed by a stop is
			// still sent.
			if replaced {
				if config.Verbose {
					log.Printf("Dropping replaced ptz move #%d for camera[%s]\n", cmd.Seq, worker.cameraId)
				}
				worker.report(CommandResult{CameraId: worker.cameraId, Command: cmd, Dropped: true})
				continue
			}

			worker.send(cmd)
		}
	}
}

func (worker *CameraCommandWorker) send(cmd Command) {
	reqCtx := worker.ctx
	if worker.requestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(worker.ctx, worker.requestTimeout)
		defer cancel()
	}

	var err error
	switch cmd.Kind {
	case CommandMove:
		err = worker.sender.MovePTZ(reqCtx, worker.cameraId, cmd.Move)
	case CommandStop:
		err = worker.sender.StopPTZ(reqCtx, worker.cameraId)
	}

	res := CommandResult{
		CameraId: worker.cameraId,
		Command:  cmd,
		Err:      err,
		Stale:    worker.superseded(cmd),
	}

	if err != nil {
		if res.Stale {
			log.Printf("Stale ptz %s #%d for camera[%s] failed: %v\n", cmd.Kind, cmd.Seq, worker.cameraId, err)
		} else if cmd.Kind == CommandStop {
			log.Printf("PTZ stop failed for camera[%s]: %v\n", worker.cameraId, err)
		} else {
			log.Printf("PTZ command failed for camera[%s]: %v\n", worker.cameraId, err)
		}
	}

	worker.report(res)
}
