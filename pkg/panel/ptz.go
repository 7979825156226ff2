package panel

import (
	"fmt"

	ptzif "camdeck/v0/server/route/ptz/interfaces"
)

type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionZoomIn
	DirectionZoomOut
)

// Directions lists every PTZ button in display order.
var Directions = []Direction{
	DirectionLeft,
	DirectionUp,
	DirectionDown,
	DirectionRight,
	DirectionZoomIn,
	DirectionZoomOut,
}

// Vector is a (pan, tilt, zoom) unit velocity.
type Vector struct {
	Pan  int
	Tilt int
	Zoom int
}

var directionVectors = map[Direction]Vector{
	DirectionUp:      {Pan: 0, Tilt: 1, Zoom: 0},
	DirectionDown:    {Pan: 0, Tilt: -1, Zoom: 0},
	DirectionLeft:    {Pan: -1, Tilt: 0, Zoom: 0},
	DirectionRight:   {Pan: 1, Tilt: 0, Zoom: 0},
	DirectionZoomIn:  {Pan: 0, Tilt: 0, Zoom: 1},
	DirectionZoomOut: {Pan: 0, Tilt: 0, Zoom: -1},
}

// Vector returns the direction's fixed unit vector.
func (d Direction) Vector() Vector {
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionZoomIn:
		return "zoom-in"
	case DirectionZoomOut:
		return "zoom-out"
	}
	return "unknown"
}

// ParseDirection returns the direction named name, as printed by String.
func ParseDirection(name string) (Direction, error) {
	for _, dir := range Directions {
		if dir.String() == name {
			return dir, nil
		}
	}
	return 0, fmt.Errorf("unknown ptz direction '%s'", name)
}

// Command builds the continuous-motion command for the vector.
func (v Vector) Command() ptzif.MoveCommand {
	return ptzif.NewMoveCommand(v.Pan, v.Tilt, v.Zoom)
}
