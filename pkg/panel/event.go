package panel

// Event is the input event that triggered a handler. Handlers which consume the event
// stop its propagation so enclosing handlers, like a tile's open-fullscreen click, do
// not also fire.
type Event struct {
	stopped bool
}

// NewEvent creates a propagating event.
func NewEvent() *Event {
	return &Event{}
}

func (e *Event) StopPropagation() {
	if e != nil {
		e.stopped = true
	}
}

// Propagates reports whether enclosing handlers should still see the event.
func (e *Event) Propagates() bool {
	return e != nil && !e.stopped
}
