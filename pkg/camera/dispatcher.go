package camera

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	ptzif "camdeck/v0/server/route/ptz/interfaces"
)

const (
	DEFAULT_IDLE_TIMEOUT = 1 * time.Minute
)

// CommandDispatcher fans PTZ commands out to one ordered worker per camera, creating
// workers on demand and tearing down idle ones.
type CommandDispatcher struct {
	ctx    context.Context
	sender CommandSender
	opts   CommandDispatcherOptions

	// Monotonic sequence shared by every camera.
	seq atomic.Uint64

	workers          map[string]*CameraCommandWorker
	workerCtxCancels map[string]context.CancelFunc
	mutex            sync.Mutex
}

type CommandDispatcherOptions struct {
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	// Optional hook invoked from worker goroutines after every command.
	OnResult func(CommandResult)
}

// NewCommandDispatcher creates a dispatcher whose workers live until ctx is cancelled.
func NewCommandDispatcher(ctx context.Context, sender CommandSender, opts CommandDispatcherOptions) *CommandDispatcher {
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = DEFAULT_IDLE_TIMEOUT
	}

	d := &CommandDispatcher{
		ctx:              ctx,
		sender:           sender,
		opts:             opts,
		workers:          map[string]*CameraCommandWorker{},
		workerCtxCancels: map[string]context.CancelFunc{},
	}

	go d.reapIdleWorkers()
	return d
}

// Move queues a continuous move for a camera, returning its sequence number.
func (d *CommandDispatcher) Move(cameraId string, cmd ptzif.MoveCommand) uint64 {
	return d.submit(cameraId, Command{Kind: CommandMove, Move: cmd})
}

// Stop queues a stop for a camera, returning its sequence number.
func (d *CommandDispatcher) Stop(cameraId string) uint64 {
	return d.submit(cameraId, Command{Kind: CommandStop})
}

func (d *CommandDispatcher) submit(cameraId string, cmd Command) uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	cmd.Seq = d.seq.Add(1)

	worker, ok := d.workers[cameraId]
	if !ok {
		log.Printf("Creating new ptz worker to handle camera[%s]\n", cameraId)
		workerCtx, workerCancel := context.WithCancel(d.ctx)
		worker = NewCameraCommandWorker(workerCtx, CameraCommandWorkerOptions{
			CameraId:       cameraId,
			Sender:         d.sender,
			RequestTimeout: d.opts.RequestTimeout,
			OnResult:       d.opts.OnResult,
		})
		d.workers[cameraId] = worker
		d.workerCtxCancels[cameraId] = workerCancel
	}

	worker.Submit(cmd)
	return cmd.Seq
}

// Workers returns the number of live workers.
func (d *CommandDispatcher) Workers() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.workers)
}

// reap terminates workers idle for longer than the idle timeout.
func (d *CommandDispatcher) reap() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for cameraId, worker := range d.workers {
		if !worker.Idle(d.opts.IdleTimeout) {
			continue
		}

		log.Printf("Idle ptz worker[%s], terminating...\n", cameraId)
		d.workerCtxCancels[cameraId]()
		delete(d.workers, cameraId)
		delete(d.workerCtxCancels, cameraId)
	}
}

// reapIdleWorkers is intended to run in a goroutine which periodically tears down
// idle workers until the dispatcher's context is done.
func (d *CommandDispatcher) reapIdleWorkers() {
	interval := d.opts.IdleTimeout / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-d.ctx.Done():
			log.Println("PTZ dispatcher terminating...")
			return
		case <-tick.C:
			d.reap()
		}
	}
}
