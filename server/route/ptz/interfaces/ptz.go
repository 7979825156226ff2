package interfaces

// CONTINUOUS_MOTION is the only supported move command type.
const CONTINUOUS_MOTION = "continuous"

// MoveCommand is a continuous-motion velocity vector. Each axis is one of -1, 0 or 1
// and the motion persists until a stop command arrives.
type MoveCommand struct {
	Type string `json:"type"`
	Pan  int    `json:"pan"`
	Tilt int    `json:"tilt"`
	Zoom int    `json:"zoom"`
}

// NewMoveCommand constructs a continuous MoveCommand.
func NewMoveCommand(pan, tilt, zoom int) MoveCommand {
	return MoveCommand{
		Type: CONTINUOUS_MOTION,
		Pan:  pan,
		Tilt: tilt,
		Zoom: zoom,
	}
}
