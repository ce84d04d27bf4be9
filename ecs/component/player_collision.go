package component

const (
	WallNone  = 0
	WallLeft  = 1
	WallRight = 2
)

// PlayerCollision stores per-player collision state derived from physics contacts.
type PlayerCollision struct {
	Grounded bool
	// Wall: 0 = none, 1 = left, 2 = right
	Wall int
	// GroundMaterial is the material name of the surface under the ground
	// sensor, empty while airborne.
	GroundMaterial string
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
