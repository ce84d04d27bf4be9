package system

import (
	"testing"

	"github.com/milk9111/gamefeel/ecs/component"
)

func TestAnimationForStatePriority(t *testing.T) {
	tests := []struct {
		name        string
		motion      component.PlayerMotion
		input       component.Input
		vx, vy      float64
		onGround    bool
		wasOnGround bool
		want        component.AnimationState
	}{
		{
			name:   "ground_pound_beats_dash",
			motion: component.PlayerMotion{GroundPoundTimer: 10, DashTimer: 10},
			vy:     500,
			want:   component.AnimGroundPound,
		},
		{
			name:   "dash_beats_wall_slide",
			motion: component.PlayerMotion{DashTimer: 10, WallSliding: true},
			want:   component.AnimDash,
		},
		{
			name:   "wall_slide",
			motion: component.PlayerMotion{WallSliding: true},
			vy:     80,
			want:   component.AnimWallSlide,
		},
		{
			name:     "land_edge",
			onGround: true,
			input:    component.Input{Right: true},
			vx:       100,
			want:     component.AnimLand,
		},
		{name: "jump", vy: -300, want: component.AnimJump},
		{name: "fall", vy: 300, want: component.AnimFall},
		{
			name:        "run_needs_input",
			onGround:    true,
			wasOnGround: true,
			input:       component.Input{Left: true},
			vx:          -120,
			want:        component.AnimRun,
		},
		{
			name:        "sliding_without_input_is_idle",
			onGround:    true,
			wasOnGround: true,
			vx:          50,
			want:        component.AnimIdle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AnimationForState(&tc.motion, tc.input, tc.vx, tc.vy, tc.onGround, tc.wasOnGround)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
