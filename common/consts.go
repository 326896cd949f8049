package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity pulls airborne bodies back to the floor, in units/s^2.
	Gravity = 30.0

	// PixelsPerUnit converts arena units to screen pixels.
	PixelsPerUnit = 5.0
)
