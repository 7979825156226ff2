package panel

// ViewerState is the fullscreen viewer's state. Visibility and camera selection change
// together, the zero value is a closed viewer with nothing selected.
type ViewerState struct {
	visible  bool
	source   string
	cameraId string
}

// Select opens the viewer on src bound to cameraId.
func (s ViewerState) Select(src, cameraId string) ViewerState {
	return ViewerState{
		visible:  true,
		source:   src,
		cameraId: cameraId,
	}
}

// Deselect closes the viewer, clearing both source and camera.
func (s ViewerState) Deselect() ViewerState {
	return ViewerState{}
}

// Visible reports whether the viewer overlay is shown.
func (s ViewerState) Visible() bool {
	return s.visible
}

// Source is the overlay image source, empty when closed.
func (s ViewerState) Source() string {
	return s.source
}

// Selected returns the selected camera, if any.
func (s ViewerState) Selected() (string, bool) {
	return s.cameraId, s.visible
}
