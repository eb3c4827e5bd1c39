package common

import "image/color"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Dim blends c toward black by t in [0, 1], keeping alpha.
func Dim(c color.RGBA, t float32) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(Lerp(float32(v), 0, t))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// TileCenter converts a tile coordinate to the world-space center of that tile.
func TileCenter(tx, ty float64) (float64, float64) {
	return (tx + 0.5) * TileSize, (ty + 0.5) * TileSize
}
