package system

import (
	"math"
	"testing"

	"github.com/milk9111/gamefeel/ecs/component"
)

const testDelta = 16.67

type contact struct {
	onGround bool
	wall     int
	material string
}

var (
	grounded = contact{onGround: true, material: "default"}
	onIce    = contact{onGround: true, material: "ice"}
	airborne = contact{}
)

type stepper struct {
	m         component.PlayerMotion
	p         component.PlayerParams
	abilities component.Abilities
	lib       component.MaterialLibrary
	vx, vy    float64
	last      *MotionFrame
}

func newStepper() *stepper {
	return &stepper{
		m:         component.NewPlayerMotion(),
		p:         component.DefaultPlayerParams(),
		abilities: component.AllAbilities(),
		lib:       component.DefaultMaterials(),
	}
}

func (s *stepper) step(c contact, in component.Input) *MotionFrame {
	f := &MotionFrame{
		DeltaMs:        testDelta,
		Params:         &s.p,
		Abilities:      s.abilities,
		Input:          in,
		Materials:      &s.lib,
		OnGround:       c.onGround,
		Wall:           c.wall,
		GroundMaterial: c.material,
		VX:             s.vx,
		VY:             s.vy,
	}
	StepPlayer(&s.m, f)
	s.vx, s.vy = f.VX, f.VY
	s.last = f
	return f
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCoyoteJumpAfterLeavingLedge(t *testing.T) {
	s := newStepper()
	s.step(grounded, component.Input{})
	if s.m.CoyoteTimer != s.p.CoyoteTimeMs {
		t.Fatalf("expected coyote timer refreshed to %v, got %v", s.p.CoyoteTimeMs, s.m.CoyoteTimer)
	}

	f := s.step(airborne, component.Input{Jump: true, JumpBuffered: true})
	if f.VY != s.p.JumpStrength {
		t.Fatalf("expected coyote jump vy=%v, got %v", s.p.JumpStrength, f.VY)
	}
	if s.m.CoyoteTimer != 0 || s.m.JumpBufferTimer != 0 {
		t.Fatalf("jump should consume both timers, got coyote=%v buffer=%v", s.m.CoyoteTimer, s.m.JumpBufferTimer)
	}
	if !s.m.DoubleJumpAvailable {
		t.Fatalf("coyote jump must not spend the double jump")
	}
	if s.m.CurrentAnimation != component.AnimJump {
		t.Fatalf("expected jump animation, got %s", s.m.CurrentAnimation)
	}
}

func TestJumpBuffer(t *testing.T) {
	tests := []struct {
		name      string
		airFrames int
		wantJump  bool
	}{
		{name: "within_buffer", airFrames: 1, wantJump: true},
		{name: "buffer_expired", airFrames: 8, wantJump: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper()
			s.abilities.DoubleJump = false

			s.step(airborne, component.Input{Jump: true, JumpBuffered: true})
			if s.vy == s.p.JumpStrength {
				t.Fatalf("should not jump without ground or coyote time")
			}
			for i := 1; i < tc.airFrames; i++ {
				s.vy = 0
				s.step(airborne, component.Input{})
			}
			s.vy = 0
			f := s.step(grounded, component.Input{})

			if got := f.VY == s.p.JumpStrength; got != tc.wantJump {
				t.Fatalf("expected jump=%v, got vy=%v", tc.wantJump, f.VY)
			}
		})
	}
}

func TestDoubleJump(t *testing.T) {
	s := newStepper()
	s.vy = 100

	f := s.step(airborne, component.Input{Jump: true, JumpBuffered: true})
	if f.VY != s.p.DoubleJumpStrength {
		t.Fatalf("expected double jump vy=%v, got %v", s.p.DoubleJumpStrength, f.VY)
	}
	if s.m.DoubleJumpAvailable {
		t.Fatalf("double jump should be spent")
	}

	s.vy = 100
	f = s.step(airborne, component.Input{Jump: true, JumpBuffered: true})
	if f.VY == s.p.DoubleJumpStrength {
		t.Fatalf("second air jump should not fire")
	}

	s.step(grounded, component.Input{})
	if !s.m.DoubleJumpAvailable {
		t.Fatalf("landing should restore the double jump")
	}
}

func TestWallSlide(t *testing.T) {
	tests := []struct {
		name      string
		wall      int
		input     component.Input
		wantSlide bool
	}{
		{name: "pressing_into_left_wall", wall: component.WallLeft, input: component.Input{Left: true}, wantSlide: true},
		{name: "pressing_into_right_wall", wall: component.WallRight, input: component.Input{Right: true}, wantSlide: true},
		{name: "pressing_away", wall: component.WallLeft, input: component.Input{Right: true}, wantSlide: true},
		{name: "input_without_wall", wall: component.WallNone, input: component.Input{Left: true}, wantSlide: false},
		{name: "no_input", wall: component.WallLeft, wantSlide: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper()
			s.vy = 300
			f := s.step(contact{wall: tc.wall}, tc.input)
			if s.m.WallSliding != tc.wantSlide {
				t.Fatalf("expected wall sliding=%v", tc.wantSlide)
			}
			if tc.wantSlide && f.VY != s.p.WallSlideSpeed {
				t.Fatalf("expected slide speed %v, got %v", s.p.WallSlideSpeed, f.VY)
			}
		})
	}
}

func TestWallJumpPushesAwayAndBlocksRegrab(t *testing.T) {
	s := newStepper()
	wall := contact{wall: component.WallLeft}

	s.vy = 200
	f := s.step(wall, component.Input{Left: true, Jump: true, JumpBuffered: true})
	if f.VY != s.p.WallJumpStrength {
		t.Fatalf("expected wall jump vy=%v, got %v", s.p.WallJumpStrength, f.VY)
	}
	if s.m.WallJumpDirection != 1 || f.VX <= 250 {
		t.Fatalf("expected push to the right, dir=%d vx=%v", s.m.WallJumpDirection, f.VX)
	}
	if s.m.WallJumpTimer != s.p.WallJumpTimeMs {
		t.Fatalf("expected wall jump timer %v, got %v", s.p.WallJumpTimeMs, s.m.WallJumpTimer)
	}
	if !s.m.DoubleJumpAvailable {
		t.Fatalf("wall jump must not spend the double jump")
	}

	s.step(wall, component.Input{Left: true, Jump: true})
	if s.m.WallSliding {
		t.Fatalf("wall slide should be locked out right after a wall jump")
	}
}

func TestWallJumpPressingAway(t *testing.T) {
	s := newStepper()
	s.vy = 200
	f := s.step(contact{wall: component.WallLeft}, component.Input{Right: true, Jump: true, JumpBuffered: true})
	if f.VY != s.p.WallJumpStrength {
		t.Fatalf("expected wall jump vy=%v, got %v", s.p.WallJumpStrength, f.VY)
	}
	if s.m.WallJumpDirection != 1 || f.VX <= 0 {
		t.Fatalf("expected push to the right, dir=%d vx=%v", s.m.WallJumpDirection, f.VX)
	}
	if s.m.WallJumpTimer != s.p.WallJumpTimeMs {
		t.Fatalf("expected wall jump timer %v, got %v", s.p.WallJumpTimeMs, s.m.WallJumpTimer)
	}
	if !s.m.DoubleJumpAvailable {
		t.Fatalf("pressing away from a wall should wall jump, not double jump")
	}
}

func TestDash(t *testing.T) {
	t.Run("duration_and_cooldown", func(t *testing.T) {
		s := newStepper()
		s.step(grounded, component.Input{})

		f := s.step(grounded, component.Input{Dash: true, DashBuffered: true})
		if f.VX != s.p.DashSpeed || f.VY != 0 {
			t.Fatalf("expected dash velocity (%v, 0), got (%v, %v)", s.p.DashSpeed, f.VX, f.VY)
		}
		if s.m.CurrentAnimation != component.AnimDash {
			t.Fatalf("expected dash animation, got %s", s.m.CurrentAnimation)
		}

		for i := 0; i < 20 && s.m.DashTimer > 0; i++ {
			s.step(grounded, component.Input{Dash: true})
		}
		if s.m.DashTimer != 0 {
			t.Fatalf("dash should have ended, timer=%v", s.m.DashTimer)
		}
		if s.m.DashCooldown != s.p.DashCooldownMs {
			t.Fatalf("expected cooldown %v, got %v", s.p.DashCooldownMs, s.m.DashCooldown)
		}

		s.step(grounded, component.Input{Dash: true, DashBuffered: true})
		if s.m.DashTimer > 0 {
			t.Fatalf("dash should be blocked during cooldown")
		}
	})

	t.Run("uses_facing_without_input", func(t *testing.T) {
		s := newStepper()
		s.m.FacingLeft = true
		f := s.step(airborne, component.Input{DashBuffered: true})
		if f.VX != -s.p.DashSpeed {
			t.Fatalf("expected leftward dash, got vx=%v", f.VX)
		}
	})

	t.Run("one_air_dash", func(t *testing.T) {
		s := newStepper()
		s.step(airborne, component.Input{DashBuffered: true})
		for i := 0; i < 40; i++ {
			s.step(airborne, component.Input{})
		}
		s.step(airborne, component.Input{DashBuffered: true})
		if s.m.DashTimer > 0 {
			t.Fatalf("second air dash should not fire before landing")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		s := newStepper()
		s.abilities.Dash = false
		s.step(grounded, component.Input{DashBuffered: true})
		if s.m.DashTimer > 0 || !s.m.DashAvailable {
			t.Fatalf("disabled dash should not fire")
		}
	})
}

func TestGroundPoundAndBounce(t *testing.T) {
	s := newStepper()

	s.step(grounded, component.Input{GroundPoundBuffered: true})
	if s.m.GroundPounding {
		t.Fatalf("ground pound requires being airborne")
	}

	s.vy = 0
	f := s.step(airborne, component.Input{GroundPoundBuffered: true})
	if f.VY != s.p.GroundPoundSpeed {
		t.Fatalf("expected pound vy=%v, got %v", s.p.GroundPoundSpeed, f.VY)
	}
	if s.m.CurrentAnimation != component.AnimGroundPound {
		t.Fatalf("expected ground pound animation, got %s", s.m.CurrentAnimation)
	}

	s.vy = 0
	f = s.step(grounded, component.Input{})
	if f.VY != s.p.GroundPoundBounceStrength {
		t.Fatalf("expected bounce vy=%v, got %v", s.p.GroundPoundBounceStrength, f.VY)
	}
	if s.m.GroundPounding {
		t.Fatalf("landing should end the ground pound")
	}
	if !s.m.GroundPoundAvailable {
		t.Fatalf("landing should restore the ground pound")
	}
}

func TestHorizontalMomentum(t *testing.T) {
	tests := []struct {
		name   string
		c      contact
		input  component.Input
		vx     float64
		want   float64
		maxSpd float64
	}{
		{name: "accelerate_default", c: grounded, input: component.Input{Right: true}, want: 0.5 * testDelta},
		{name: "accelerate_ice", c: onIce, input: component.Input{Right: true}, want: 0.2 * testDelta},
		{name: "accelerate_air", c: airborne, input: component.Input{Left: true}, want: -0.2 * testDelta},
		{name: "no_overshoot", c: grounded, input: component.Input{Right: true}, vx: 215, want: 220},
		{name: "decelerate_with_friction", c: grounded, vx: 220, want: (220 - 0.7*testDelta) * 0.8},
		{name: "decelerate_ice", c: onIce, vx: 220, want: (220 - 0.1*testDelta) * 0.1},
		{name: "snap_to_zero", c: grounded, vx: 5, want: 0},
		{name: "max_speed_clamp", c: grounded, input: component.Input{Right: true}, vx: 150, maxSpd: 100, want: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper()
			if tc.maxSpd > 0 {
				s.p.MaxSpeed = tc.maxSpd
			}
			s.m.WasOnGround = tc.c.onGround
			s.vx = tc.vx
			f := s.step(tc.c, tc.input)
			if !near(f.VX, tc.want) {
				t.Fatalf("expected vx=%v, got %v", tc.want, f.VX)
			}
		})
	}
}

func TestFacingFollowsInput(t *testing.T) {
	s := newStepper()
	s.step(grounded, component.Input{Left: true})
	if !s.m.FacingLeft {
		t.Fatalf("expected facing left")
	}
	s.step(grounded, component.Input{Right: true})
	if s.m.FacingLeft {
		t.Fatalf("expected facing right")
	}
}

func TestTerminalVelocity(t *testing.T) {
	s := newStepper()
	s.vy = 5000
	f := s.step(airborne, component.Input{})
	if f.VY != s.p.TerminalVelocity {
		t.Fatalf("expected vy clamped to %v, got %v", s.p.TerminalVelocity, f.VY)
	}
}

func TestVariableJumpGravity(t *testing.T) {
	tests := []struct {
		name  string
		vy    float64
		input component.Input
		want  float64
	}{
		{name: "rising_held", vy: -300, input: component.Input{Jump: true}, want: 1000 * 0.5},
		{name: "rising_released", vy: -300, want: 1000},
		{name: "falling_held", vy: 300, input: component.Input{Jump: true}, want: 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStepper()
			s.vy = tc.vy
			f := s.step(airborne, tc.input)
			if !near(f.Gravity, tc.want) {
				t.Fatalf("expected gravity %v, got %v", tc.want, f.Gravity)
			}
		})
	}
}

func TestLandingResetsAbilities(t *testing.T) {
	s := newStepper()
	s.m.DoubleJumpAvailable = false
	s.m.DashAvailable = false
	s.m.GroundPoundAvailable = false
	s.m.WallJumpTimer = 120
	s.m.WallSliding = true

	s.step(grounded, component.Input{})

	if !s.m.DoubleJumpAvailable || !s.m.DashAvailable || !s.m.GroundPoundAvailable {
		t.Fatalf("abilities not restored on landing: %+v", s.m)
	}
	if s.m.WallJumpTimer != 0 || s.m.WallSliding {
		t.Fatalf("wall state not cleared on landing")
	}
	if s.m.CurrentAnimation != component.AnimLand {
		t.Fatalf("expected land animation, got %s", s.m.CurrentAnimation)
	}
	if s.m.CurrentMaterial == nil || s.m.CurrentMaterial.Type != component.MaterialDefault {
		t.Fatalf("expected default material under the player")
	}
}
