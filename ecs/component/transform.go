package component

// Transform is the world position of an entity. For physics-driven bodies
// X/Y is the collider centre.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
