package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
)

// wallSlideRegrab is how long (ms) after a wall jump before the player can
// stick to a wall again.
const wallSlideRegrab = 100.0

const stopEpsilon = 0.1

// MotionFrame is one tick of controller input and output. VX/VY carry the
// body velocity in and the new velocity out. Gravity is written by
// StepPlayer.
type MotionFrame struct {
	DeltaMs   float64
	Params    *component.PlayerParams
	Abilities component.Abilities
	Input     component.Input
	Materials *component.MaterialLibrary

	OnGround       bool
	Wall           int
	GroundMaterial string

	VX float64
	VY float64

	Gravity float64
}

// StepPlayer advances the player's movement state by one frame.
func StepPlayer(m *component.PlayerMotion, f *MotionFrame) {
	if m == nil || f == nil || f.Params == nil {
		return
	}
	p := f.Params
	dt := f.DeltaMs
	in := f.Input
	onGround := f.OnGround

	m.CurrentMaterial = ResolveMaterial(onGround, f.GroundMaterial, m.CurrentMaterial, f.Materials)

	if onGround && !m.WasOnGround {
		m.DoubleJumpAvailable = true
		m.DashAvailable = true
		m.GroundPoundAvailable = true
		m.WallSliding = false
		m.WallJumpTimer = 0
		if m.GroundPounding && p.GroundPoundBounceStrength != 0 {
			f.VY = p.GroundPoundBounceStrength
		}
		m.GroundPounding = false
	}
	if onGround && m.DashTimer <= 0 {
		m.DashAvailable = true
	}

	if onGround {
		m.CoyoteTimer = p.CoyoteTimeMs
	} else if m.CoyoteTimer > 0 {
		m.CoyoteTimer -= dt
	}

	if in.JumpBuffered {
		m.JumpBufferTimer = p.JumpBufferTimeMs
	} else if m.JumpBufferTimer > 0 {
		m.JumpBufferTimer -= dt
	}

	if m.WallJumpTimer > 0 {
		m.WallJumpTimer -= dt
		if m.WallJumpTimer <= 0 {
			m.WallJumpTimer = 0
		}
	}

	// Any horizontal input holds a wall, so pressing away still slides and
	// a jump from there is a wall jump.
	holding := f.Wall != component.WallNone && (in.Left || in.Right)
	regrab := m.WallJumpTimer == 0 || m.WallJumpTimer < p.WallJumpTimeMs-wallSlideRegrab
	if f.Abilities.WallSlide && holding && !onGround && regrab {
		m.WallSliding = true
		if m.DashTimer > 0 {
			m.DashCooldown = p.DashCooldownMs
		}
		m.DashTimer = 0
		f.VY = p.WallSlideSpeed
	} else {
		m.WallSliding = false
	}

	if m.WallSliding && in.JumpBuffered {
		m.WallJumpDirection = 1
		if f.Wall == component.WallRight {
			m.WallJumpDirection = -1
		}
		m.WallJumpTimer = p.WallJumpTimeMs
		m.JumpBufferTimer = 0
		m.GroundPounding = false
		f.VY = p.WallJumpStrength
		f.VX = p.WallJumpPushStrength * float64(m.WallJumpDirection)
	}

	// While coyote time remains the press belongs to the ground jump below,
	// so the double jump waits for the timer to run out.
	if f.Abilities.DoubleJump && !onGround && !m.WallSliding && in.JumpBuffered &&
		m.DoubleJumpAvailable && m.CoyoteTimer <= 0 {
		m.DoubleJumpAvailable = false
		m.JumpBufferTimer = 0
		m.GroundPounding = false
		f.VY = p.DoubleJumpStrength
	}

	if m.DashCooldown > 0 {
		m.DashCooldown -= dt
	}
	if f.Abilities.Dash && in.DashBuffered && m.DashAvailable && m.DashTimer <= 0 && m.DashCooldown <= 0 {
		m.DashAvailable = false
		m.DashTimer = p.DashDurationMs
		switch {
		case in.Right:
			m.DashDirection = 1
		case in.Left:
			m.DashDirection = -1
		case m.FacingLeft:
			m.DashDirection = -1
		default:
			m.DashDirection = 1
		}
	}
	if m.DashTimer > 0 {
		m.DashTimer -= dt
		f.VX = p.DashSpeed * float64(m.DashDirection)
		f.VY = 0
		if m.DashTimer <= 0 {
			m.DashTimer = 0
			m.DashCooldown = p.DashCooldownMs
		}
	}

	// Ground pound is airborne only. Pressing it on the ground does nothing.
	if f.Abilities.GroundPound && in.GroundPoundBuffered && !onGround &&
		m.GroundPoundAvailable && m.GroundPoundTimer <= 0 {
		m.GroundPoundAvailable = false
		m.GroundPounding = true
		m.GroundPoundTimer = p.GroundPoundCooldownMs
		f.VY = p.GroundPoundSpeed
	}
	if m.GroundPoundTimer > 0 {
		m.GroundPoundTimer -= dt
	}

	if m.DashTimer <= 0 {
		f.VX = horizontalVelocity(m, f)
		if p.MaxSpeed > 0 && math.Abs(f.VX) > p.MaxSpeed {
			f.VX = common.Sign(f.VX) * p.MaxSpeed
		}
		terminal := p.TerminalVelocity
		if m.GroundPounding && p.GroundPoundSpeed > terminal {
			terminal = p.GroundPoundSpeed
		}
		if f.VY > terminal {
			f.VY = terminal
		}
	}

	if m.JumpBufferTimer > 0 && m.CoyoteTimer > 0 {
		f.VY = p.JumpStrength
		m.CoyoteTimer = 0
		m.JumpBufferTimer = 0
	}

	f.Gravity = p.Gravity
	if f.VY < 0 && in.Jump {
		f.Gravity = p.Gravity * p.JumpGravityMultiplier * (dt / common.ReferenceFrameMillis)
	}

	m.CurrentAnimation = AnimationForState(m, in, f.VX, f.VY, onGround, m.WasOnGround)
	m.WasOnGround = onGround
	m.PrevJumpPressed = in.Jump
}

// horizontalVelocity moves vx toward the input target by the current
// material's acceleration, or brakes and applies friction with no input.
func horizontalVelocity(m *component.PlayerMotion, f *MotionFrame) float64 {
	p := f.Params
	vx := f.VX

	target := 0.0
	if f.Input.Left {
		target = -p.MoveSpeed
		m.FacingLeft = true
	} else if f.Input.Right {
		target = p.MoveSpeed
		m.FacingLeft = false
	}

	if target != 0 {
		dir := common.Sign(target - vx)
		next := vx + dir*CurrentAcceleration(f.OnGround, m.CurrentMaterial, f.Materials)*f.DeltaMs
		if common.Sign(next) == common.Sign(target) && math.Abs(next) > math.Abs(target) {
			next = target
		}
		return next
	}

	dir := -common.Sign(vx)
	next := vx + dir*CurrentDeceleration(f.OnGround, m.CurrentMaterial, f.Materials)*f.DeltaMs
	if common.Sign(next) != common.Sign(vx) || math.Abs(next) < stopEpsilon {
		next = 0
	}
	return ApplyFriction(next, f.OnGround, m.CurrentMaterial, f.Materials)
}

// PlayerControllerSystem feeds contacts and input into StepPlayer and writes
// the result back to the player's body.
type PlayerControllerSystem struct {
	DeltaMs float64
}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{DeltaMs: common.FrameMillis}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	delta := p.DeltaMs
	if delta <= 0 {
		delta = common.FrameMillis
	}

	var lib *component.MaterialLibrary
	if e, ok := ecs.First(w, component.MaterialLibraryComponent.Kind()); ok {
		lib, _ = ecs.Get(w, e, component.MaterialLibraryComponent.Kind())
	}

	ecs.ForEach4(w,
		component.PlayerMotionComponent.Kind(),
		component.PlayerParamsComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, motion *component.PlayerMotion, params *component.PlayerParams, input *component.Input, bodyComp *component.PhysicsBody) {
			if bodyComp.Body == nil {
				return
			}

			abilities := component.AllAbilities()
			if a, ok := ecs.Get(w, e, component.AbilitiesComponent.Kind()); ok {
				abilities = *a
			}

			frame := &MotionFrame{
				DeltaMs:   delta,
				Params:    params,
				Abilities: abilities,
				Input:     *input,
				Materials: lib,
			}
			if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
				frame.OnGround = pc.Grounded
				frame.Wall = pc.Wall
				frame.GroundMaterial = pc.GroundMaterial
			}

			vel := bodyComp.Body.Velocity()
			frame.VX, frame.VY = vel.X, vel.Y

			StepPlayer(motion, frame)

			bodyComp.Body.SetVelocityVector(cp.Vector{X: frame.VX, Y: frame.VY})
			bodyComp.Body.SetAngle(0)
			bodyComp.Body.SetAngularVelocity(0)
			bodyComp.GravityY = frame.Gravity
			bodyComp.CustomGravity = true

			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && params.Scale > 0 {
				t.ScaleX = params.Scale / 100
				t.ScaleY = params.Scale / 100
			}
			if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				s.FacingLeft = motion.FacingLeft
			}
			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Play(string(motion.CurrentAnimation))
			}
			if dbg, ok := ecs.Get(w, e, component.DebugReadoutComponent.Kind()); ok {
				updateReadout(dbg, motion, frame)
			}
		})
}

func updateReadout(dbg *component.DebugReadout, m *component.PlayerMotion, f *MotionFrame) {
	dbg.Gravity = f.Gravity
	if m.CurrentMaterial == nil {
		air := orDefaultLibrary(f.Materials).Air
		dbg.Material = "None"
		dbg.Acceleration = air.Acceleration
		dbg.Deceleration = air.Deceleration
		dbg.Friction = air.Friction
		return
	}
	dbg.Material = string(m.CurrentMaterial.Type)
	dbg.Acceleration = m.CurrentMaterial.Acceleration
	dbg.Deceleration = m.CurrentMaterial.Deceleration
	dbg.Friction = m.CurrentMaterial.Friction
}
