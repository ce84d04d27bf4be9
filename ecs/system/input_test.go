package system

import (
	"testing"

	"github.com/milk9111/gamefeel/ecs/component"
)

func TestBufferInputEdges(t *testing.T) {
	tests := []struct {
		name string
		prev component.Input
		cur  component.Input
		want component.Input
	}{
		{
			name: "press",
			cur:  component.Input{Jump: true, Dash: true},
			want: component.Input{Jump: true, Dash: true, JumpBuffered: true, DashBuffered: true},
		},
		{
			name: "hold",
			prev: component.Input{Jump: true, GroundPound: true},
			cur:  component.Input{Jump: true, GroundPound: true},
			want: component.Input{Jump: true, GroundPound: true},
		},
		{
			name: "release",
			prev: component.Input{Dash: true},
			cur:  component.Input{},
			want: component.Input{},
		},
		{
			name: "ground_pound_press_while_moving",
			prev: component.Input{Left: true},
			cur:  component.Input{Left: true, GroundPound: true},
			want: component.Input{Left: true, GroundPound: true, GroundPoundBuffered: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BufferInput(tc.prev, tc.cur); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPanelPointerCapture(t *testing.T) {
	steps := []struct {
		name    string
		x       int
		pressed bool
		want    bool
	}{
		{"hover_off_panel", 600, false, false},
		{"hover_on_panel", 100, false, true},
		{"shift_click_on_panel", 100, true, true},
		{"drag_off_while_held", 700, true, true},
		{"release_off_panel", 700, false, false},
		{"press_off_panel", 700, true, false},
		{"left_of_panel", -1, false, false},
		{"panel_edge", 470, false, false},
	}

	p := PanelPointer{Width: 470}
	for _, st := range steps {
		if got := p.Capture(st.x, st.pressed); got != st.want {
			t.Fatalf("%s: Capture(%d, %v) = %v, want %v", st.name, st.x, st.pressed, got, st.want)
		}
	}
}
