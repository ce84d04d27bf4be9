package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationState names one player animation.
type AnimationState string

const (
	AnimIdle        AnimationState = "idle"
	AnimRun         AnimationState = "run"
	AnimJump        AnimationState = "jump"
	AnimFall        AnimationState = "fall"
	AnimLand        AnimationState = "land"
	AnimWallSlide   AnimationState = "wallSlide"
	AnimDash        AnimationState = "dash"
	AnimGroundPound AnimationState = "groundPound"
)

// Sheet rows, one per source strip.
const (
	SheetRowIdle = iota
	SheetRowSprint
	SheetRowJump
	SheetRowLand
	SheetRows
)

// SheetColumns is the widest strip (sprint).
const SheetColumns = 8

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to name and restarts it. Replaying the current animation is
// a no-op.
func (a *Animation) Play(name string) bool {
	if a == nil || a.Current == name {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

// PlayerAnimationDefs returns the player's animation table for a sheet of
// frameW x frameH cells.
func PlayerAnimationDefs(frameW, frameH int) map[string]AnimationDef {
	def := func(state AnimationState, row, start, count int, fps float64, loop bool) AnimationDef {
		return AnimationDef{
			Name:       string(state),
			Row:        row,
			ColStart:   start,
			FrameCount: count,
			FrameW:     frameW,
			FrameH:     frameH,
			FPS:        fps,
			Loop:       loop,
		}
	}

	defs := []AnimationDef{
		def(AnimIdle, SheetRowIdle, 0, 4, 8, true),
		def(AnimRun, SheetRowSprint, 0, 8, 15, true),
		def(AnimJump, SheetRowJump, 0, 4, 10, false),
		def(AnimFall, SheetRowJump, 4, 1, 1, true),
		def(AnimLand, SheetRowLand, 0, 4, 12, false),
		def(AnimWallSlide, SheetRowJump, 4, 1, 1, true),
		def(AnimDash, SheetRowSprint, 4, 1, 1, true),
		def(AnimGroundPound, SheetRowJump, 4, 1, 1, true),
	}

	out := make(map[string]AnimationDef, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}

var AnimationComponent = NewComponent[Animation]()
