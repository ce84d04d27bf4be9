package component

// LevelBounds stores the world-space bounds of the current level. The
// physics system walls them off and the camera clamps scroll to them.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
