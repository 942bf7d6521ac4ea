package common

const (
	// TPS is the fixed simulation rate. Every timer in the game counts ticks.
	TPS = 60

	// BaseWidth/BaseHeight are the logical render size; the window is scaled up.
	BaseWidth  = 320
	BaseHeight = 240

	WindowScale = 2

	// TileSize is the default grid size in pixels; level files may override it.
	TileSize = 16
)
