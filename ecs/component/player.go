package component

// PlayerParams holds the tunable movement constants for a player. Velocities
// are px/s with screen-down Y, so jump strengths are negative. Durations are
// milliseconds. JSON names match saved configuration files.
type PlayerParams struct {
	Gravity               float64 `json:"gravity"`
	JumpStrength          float64 `json:"jumpStrength"`
	MoveSpeed             float64 `json:"moveSpeed"`
	CoyoteTimeMs          float64 `json:"coyoteTimeMs"`
	JumpBufferTimeMs      float64 `json:"jumpBufferTimeMs"`
	JumpGravityMultiplier float64 `json:"jumpGravityMultiplier"`
	Scale                 float64 `json:"scale"`
	MaxSpeed              float64 `json:"maxSpeed"`
	TerminalVelocity      float64 `json:"terminalVelocity"`

	// Acceleration and its siblings are kept in saved configs for
	// compatibility. Horizontal response is driven by the material library.
	Acceleration    float64 `json:"acceleration"`
	Deceleration    float64 `json:"deceleration"`
	AirAcceleration float64 `json:"airAcceleration"`
	AirDeceleration float64 `json:"airDeceleration"`

	WallSlideSpeed       float64 `json:"wallSlideSpeed"`
	WallJumpStrength     float64 `json:"wallJumpStrength"`
	WallJumpTimeMs       float64 `json:"wallJumpTimeMs"`
	WallJumpPushStrength float64 `json:"wallJumpPushStrength"`
	DoubleJumpStrength   float64 `json:"doubleJumpStrength"`

	DashSpeed      float64 `json:"dashSpeed"`
	DashDurationMs float64 `json:"dashDurationMs"`
	DashCooldownMs float64 `json:"dashCooldownMs"`

	GroundPoundSpeed          float64 `json:"groundPoundSpeed"`
	GroundPoundBounceStrength float64 `json:"groundPoundBounceStrength"`
	GroundPoundCooldownMs     float64 `json:"groundPoundCooldownMs"`
}

func DefaultPlayerParams() PlayerParams {
	return PlayerParams{
		Gravity:                   1000,
		JumpStrength:              -450,
		MoveSpeed:                 220,
		CoyoteTimeMs:              100,
		JumpBufferTimeMs:          120,
		JumpGravityMultiplier:     0.5,
		Scale:                     100,
		MaxSpeed:                  400,
		TerminalVelocity:          700,
		Acceleration:              0.5,
		Deceleration:              0.7,
		AirAcceleration:           0.2,
		AirDeceleration:           0.3,
		WallSlideSpeed:            80,
		WallJumpStrength:          -420,
		WallJumpTimeMs:            250,
		WallJumpPushStrength:      260,
		DoubleJumpStrength:        -400,
		DashSpeed:                 600,
		DashDurationMs:            150,
		DashCooldownMs:            400,
		GroundPoundSpeed:          900,
		GroundPoundBounceStrength: -250,
		GroundPoundCooldownMs:     300,
	}
}

var PlayerParamsComponent = NewComponent[PlayerParams]()
