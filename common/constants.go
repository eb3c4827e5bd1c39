package common

// TileSize is the edge length of one grid unit in world pixels.
const TileSize = 32.0

const (
	BaseWidth  = 1280
	BaseHeight = 720
)
