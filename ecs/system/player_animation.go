package system

import (
	"math"

	"github.com/milk9111/gamefeel/ecs/component"
)

// AnimationForState picks the player animation. Priority, highest first:
// groundPound, dash, wallSlide, land, jump, fall, run, idle.
func AnimationForState(m *component.PlayerMotion, in component.Input, vx, vy float64, onGround, wasOnGround bool) component.AnimationState {
	if m == nil {
		return component.AnimIdle
	}
	moving := math.Abs(vx) > stopEpsilon

	switch {
	case m.GroundPoundTimer > 0:
		return component.AnimGroundPound
	case m.DashTimer > 0:
		return component.AnimDash
	case m.WallSliding:
		return component.AnimWallSlide
	case onGround && !wasOnGround:
		return component.AnimLand
	case vy < 0 && !onGround:
		return component.AnimJump
	case vy > 0 && !onGround:
		return component.AnimFall
	case onGround && moving && (in.Left || in.Right):
		return component.AnimRun
	}
	return component.AnimIdle
}
