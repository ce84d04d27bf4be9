package component

// PlayerMotion is the per-frame movement state the controller carries
// between ticks. Timers are milliseconds counting down.
type PlayerMotion struct {
	CoyoteTimer     float64
	WasOnGround     bool
	PrevJumpPressed bool
	JumpBufferTimer float64

	CurrentAnimation AnimationState
	// CurrentMaterial is nil while airborne.
	CurrentMaterial *Material

	WallSliding       bool
	WallJumpDirection int
	WallJumpTimer     float64

	DoubleJumpAvailable bool

	DashAvailable bool
	DashTimer     float64
	DashDirection int
	DashCooldown  float64

	GroundPoundAvailable bool
	GroundPoundTimer     float64
	GroundPounding       bool

	FacingLeft bool
}

// NewPlayerMotion returns the spawn state: every ability ready, idle.
func NewPlayerMotion() PlayerMotion {
	return PlayerMotion{
		CurrentAnimation:     AnimIdle,
		DoubleJumpAvailable:  true,
		DashAvailable:        true,
		GroundPoundAvailable: true,
	}
}

var PlayerMotionComponent = NewComponent[PlayerMotion]()
