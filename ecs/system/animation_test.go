package system

import (
	"testing"

	"github.com/milk9111/gamefeel/ecs/component"
)

func TestAdvanceFrame(t *testing.T) {
	defs := component.PlayerAnimationDefs(32, 32)

	tests := []struct {
		name        string
		anim        component.AnimationState
		ticks       int
		wantFrame   int
		wantPlaying bool
	}{
		// idle: 8 fps -> 7 ticks per frame, 4 frames looping.
		{name: "idle_first_step", anim: component.AnimIdle, ticks: 7, wantFrame: 1, wantPlaying: true},
		{name: "idle_wraps", anim: component.AnimIdle, ticks: 28, wantFrame: 0, wantPlaying: true},
		// land: 12 fps -> 5 ticks per frame, 4 frames, once.
		{name: "land_holds_last", anim: component.AnimLand, ticks: 40, wantFrame: 3, wantPlaying: false},
		// jump: 10 fps -> 6 ticks per frame.
		{name: "jump_mid", anim: component.AnimJump, ticks: 13, wantFrame: 2, wantPlaying: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &component.Animation{Defs: defs}
			if !a.Play(string(tc.anim)) {
				t.Fatalf("Play(%s) reported no change", tc.anim)
			}
			def := defs[string(tc.anim)]
			for i := 0; i < tc.ticks; i++ {
				advanceFrame(a, def)
			}
			if a.Frame != tc.wantFrame || a.Playing != tc.wantPlaying {
				t.Fatalf("expected frame=%d playing=%v, got frame=%d playing=%v", tc.wantFrame, tc.wantPlaying, a.Frame, a.Playing)
			}
		})
	}
}

func TestPlayRestartsOnlyOnChange(t *testing.T) {
	a := &component.Animation{Defs: component.PlayerAnimationDefs(32, 32)}
	a.Play(string(component.AnimRun))
	a.Frame = 3
	if a.Play(string(component.AnimRun)) {
		t.Fatalf("replaying the current animation should be a no-op")
	}
	if a.Frame != 3 {
		t.Fatalf("frame reset on replay")
	}
	if a.Play("missing") {
		t.Fatalf("unknown animation should not play")
	}
	if !a.Play(string(component.AnimFall)) || a.Frame != 0 {
		t.Fatalf("switching animation should restart at frame 0")
	}
}
