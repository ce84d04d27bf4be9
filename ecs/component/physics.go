package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Width        float64
	Height       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	AlignTopLeft bool
	OffsetX      float64
	OffsetY      float64

	// Material names the surface material of a static body.
	Material string

	// GravityY overrides world gravity for a dynamic body when
	// CustomGravity is set. The player controller rewrites it every tick.
	GravityY      float64
	CustomGravity bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
