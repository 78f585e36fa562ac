package component

import "image/color"

// Visual is a drawable marker. Inactive visuals and visuals whose Layer is
// not in the main camera's culling mask are skipped by the renderer.
type Visual struct {
	Active bool
	Layer  uint32
	Radius float64
	Color  color.Color
}

var VisualComponent = NewComponent[Visual]()
