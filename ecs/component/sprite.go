package component

import "image/color"

// Sprite is drawn as a filled box centered on the Transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Layer  int
}

var SpriteComponent = NewComponent[Sprite]()
