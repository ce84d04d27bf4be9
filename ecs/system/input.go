package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
)

const stickDeadzone = 0.1

// InputSystem samples keyboard and the first gamepad once per tick. Input
// is ignored while Paused reports true, for instance while a text field
// has focus or the mouse is on the tuning panel.
type InputSystem struct {
	Paused func() bool

	prev component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var cur component.Input
	if i.Paused == nil || !i.Paused() {
		cur = sampleInput()
	}
	buffered := BufferInput(i.prev, cur)
	i.prev = cur

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = buffered
	})
}

func sampleInput() component.Input {
	in := component.Input{
		Left:        ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:        ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Dash:        ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		GroundPound: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			in.Left = in.Left || leftX < 0
			in.Right = in.Right || leftX > 0
		}
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Dash = in.Dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.GroundPound = in.GroundPound || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}
	return in
}

// PanelPointer tracks whether the mouse belongs to an overlay panel that
// covers x in [0, Width). A press that starts on the panel keeps it until
// the button is released, even if the cursor drags off.
type PanelPointer struct {
	Width int

	held bool
}

// Capture reports whether the pointer is on the panel this tick.
func (p *PanelPointer) Capture(x int, pressed bool) bool {
	over := x >= 0 && x < p.Width
	switch {
	case !pressed:
		p.held = false
	case over:
		p.held = true
	}
	return over || p.held
}

// BufferInput fills the Buffered edges of cur: true only on the frame a
// button goes from released to pressed.
func BufferInput(prev, cur component.Input) component.Input {
	cur.JumpBuffered = cur.Jump && !prev.Jump
	cur.DashBuffered = cur.Dash && !prev.Dash
	cur.GroundPoundBuffered = cur.GroundPound && !prev.GroundPound
	return cur
}
