package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is applied along world -Y, in units per second squared.
	Gravity = -9.81

	// PixelsPerUnit scales world units onto the top-down debug view.
	PixelsPerUnit = 24.0
)
