package component

import "image/color"

// Platform is a static, drawable block of level geometry.
type Platform struct {
	Width    float64
	Height   float64
	Material string
	Wall     bool
	Color    color.RGBA
}

var PlatformComponent = NewComponent[Platform]()
