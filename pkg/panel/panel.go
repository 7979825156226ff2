// panel package is the viewer control panel: the fullscreen viewer, settings and
// recordings menus and the PTZ controller, sharing the selected camera.
package panel

import (
	"context"
	"fmt"
	"log"
	"sync"

	ptzif "camdeck/v0/server/route/ptz/interfaces"
	setif "camdeck/v0/server/route/settings/interfaces"
)

// API is the part of the server contract the panel invokes directly.
type API interface {
	ApplySettings(ctx context.Context, cameraId string, req setif.ApplySettingsRequest) error
	ListRecordings(ctx context.Context) ([]string, error)
}

// PTZDispatcher delivers PTZ commands asynchronously.
type PTZDispatcher interface {
	Move(cameraId string, cmd ptzif.MoveCommand) uint64
	Stop(cameraId string) uint64
}

type Options struct {
	API API
	PTZ PTZDispatcher
}

// Panel is safe for concurrent use.
type Panel struct {
	api API
	ptz PTZDispatcher

	mutex             sync.Mutex
	viewer            ViewerState
	settingsVisible   bool
	recordingsVisible bool
	recordings        []RecordingLink
}

// New creates a panel with every overlay closed.
func New(opts Options) (*Panel, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("panel requires an api")
	}
	if opts.PTZ == nil {
		return nil, fmt.Errorf("panel requires a ptz dispatcher")
	}

	return &Panel{
		api: opts.API,
		ptz: opts.PTZ,
	}, nil
}

// OpenFullScreen shows the overlay with src and selects cameraId. Neither is
// validated.
func (p *Panel) OpenFullScreen(src, cameraId string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.viewer = p.viewer.Select(src, cameraId)
}

// CloseFullScreen hides the overlay, clearing its source so no more frames are
// fetched, and deselects the camera.
func (p *Panel) CloseFullScreen() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.viewer = p.viewer.Deselect()
}

// Viewer returns the current viewer state.
func (p *Panel) Viewer() ViewerState {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.viewer
}

// SendPTZCommand consumes ev and starts continuous motion on cameraId.
// It returns the command's sequence number.
func (p *Panel) SendPTZCommand(ev *Event, cameraId string, v Vector) uint64 {
	ev.StopPropagation()
	return p.ptz.Move(cameraId, v.Command())
}

// Press handles a fullscreen PTZ button press, moving the selected camera.
// It returns false when no camera is selected and nothing was sent.
func (p *Panel) Press(ev *Event, dir Direction) bool {
	cameraId, ok := p.Viewer().Selected()
	if !ok {
		log.Printf("Ignoring ptz %s press, no camera selected\n", dir)
		return false
	}

	p.SendPTZCommand(ev, cameraId, dir.Vector())
	return true
}

// Release handles a pointer release anywhere. Motion on the selected camera is stopped
// while the viewer is open, whether or not a move was started.
// It returns whether a stop was sent.
func (p *Panel) Release() bool {
	cameraId, ok := p.Viewer().Selected()
	if !ok {
		return false
	}

	p.ptz.Stop(cameraId)
	return true
}
