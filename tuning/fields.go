package tuning

import (
	"math"
	"strconv"

	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/ecs/component"
)

// Section groups panel rows.
type Section string

const (
	SectionPlayer    Section = "Player"
	SectionMovement  Section = "Movement"
	SectionAbilities Section = "Abilities"
	SectionCamera    Section = "Camera"
	SectionMaterials Section = "Materials"
)

// Sections lists panel sections in display order.
var Sections = []Section{SectionPlayer, SectionMovement, SectionAbilities, SectionCamera, SectionMaterials}

// Field is one numeric tuning row. Get and Set return or write through the
// live structs and do nothing when the target is nil.
type Field struct {
	Key     string
	Section Section
	Label   string
	Step    float64
	Min     float64
	Max     float64
	// Decimals is the number of digits Format prints.
	Decimals int
	Get      func(Live) (float64, bool)
	Set      func(Live, float64)
}

// Nudge moves the field by steps increments, clamped to [Min, Max] and
// snapped to the step grid. It returns the new value.
func (f Field) Nudge(live Live, steps int) float64 {
	v, ok := f.Get(live)
	if !ok {
		return 0
	}
	next := v + float64(steps)*f.Step
	if f.Step > 0 {
		next = math.Round(next/f.Step) * f.Step
	}
	next = common.Clamp(next, f.Min, f.Max)
	f.Set(live, next)
	return next
}

// Format renders the current value, or "-" when the target is missing.
func (f Field) Format(live Live) string {
	v, ok := f.Get(live)
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', f.Decimals, 64)
}

// Toggle is one boolean tuning row.
type Toggle struct {
	Key     string
	Section Section
	Label   string
	Get     func(Live) (bool, bool)
	Set     func(Live, bool)
}

// Flip inverts the toggle and returns the new value.
func (t Toggle) Flip(live Live) bool {
	v, ok := t.Get(live)
	if !ok {
		return false
	}
	t.Set(live, !v)
	return !v
}

func player(key, label string, section Section, step, lo, hi float64, decimals int, ref func(*component.PlayerParams) *float64) Field {
	return Field{
		Key: key, Section: section, Label: label, Step: step, Min: lo, Max: hi, Decimals: decimals,
		Get: func(l Live) (float64, bool) {
			if l.Player == nil {
				return 0, false
			}
			return *ref(l.Player), true
		},
		Set: func(l Live, v float64) {
			if l.Player != nil {
				*ref(l.Player) = v
			}
		},
	}
}

func camera(key, label string, step, lo, hi float64, decimals int, ref func(*component.CameraParams) *float64) Field {
	return Field{
		Key: key, Section: SectionCamera, Label: label, Step: step, Min: lo, Max: hi, Decimals: decimals,
		Get: func(l Live) (float64, bool) {
			if l.Camera == nil {
				return 0, false
			}
			return *ref(l.Camera), true
		},
		Set: func(l Live, v float64) {
			if l.Camera != nil {
				*ref(l.Camera) = v
			}
		},
	}
}

func material(key, label string, step, lo, hi float64, ref func(*component.MaterialLibrary) *float64) Field {
	return Field{
		Key: key, Section: SectionMaterials, Label: label, Step: step, Min: lo, Max: hi, Decimals: 2,
		Get: func(l Live) (float64, bool) {
			if l.Materials == nil {
				return 0, false
			}
			return *ref(l.Materials), true
		},
		Set: func(l Live, v float64) {
			if l.Materials != nil {
				*ref(l.Materials) = v
			}
		},
	}
}

func ability(key, label string, ref func(*component.Abilities) *bool) Toggle {
	return Toggle{
		Key: key, Section: SectionAbilities, Label: label,
		Get: func(l Live) (bool, bool) {
			if l.Abilities == nil {
				return false, false
			}
			return *ref(l.Abilities), true
		},
		Set: func(l Live, v bool) {
			if l.Abilities != nil {
				*ref(l.Abilities) = v
			}
		},
	}
}

// Fields is every numeric parameter the panel exposes.
var Fields = []Field{
	player("gravity", "Gravity", SectionPlayer, 50, 0, 4000, 0, func(p *component.PlayerParams) *float64 { return &p.Gravity }),
	player("jumpStrength", "Jump Strength", SectionPlayer, 10, -1500, 0, 0, func(p *component.PlayerParams) *float64 { return &p.JumpStrength }),
	player("jumpGravityMultiplier", "Jump Gravity Mult", SectionPlayer, 0.05, 0, 2, 2, func(p *component.PlayerParams) *float64 { return &p.JumpGravityMultiplier }),
	player("coyoteTimeMs", "Coyote Time (ms)", SectionPlayer, 10, 0, 500, 0, func(p *component.PlayerParams) *float64 { return &p.CoyoteTimeMs }),
	player("jumpBufferTimeMs", "Jump Buffer (ms)", SectionPlayer, 10, 0, 500, 0, func(p *component.PlayerParams) *float64 { return &p.JumpBufferTimeMs }),
	player("scale", "Scale (%)", SectionPlayer, 5, 25, 400, 0, func(p *component.PlayerParams) *float64 { return &p.Scale }),

	player("moveSpeed", "Move Speed", SectionMovement, 10, 0, 1000, 0, func(p *component.PlayerParams) *float64 { return &p.MoveSpeed }),
	player("maxSpeed", "Max Speed", SectionMovement, 10, 0, 2000, 0, func(p *component.PlayerParams) *float64 { return &p.MaxSpeed }),
	player("terminalVelocity", "Terminal Velocity", SectionMovement, 10, 0, 3000, 0, func(p *component.PlayerParams) *float64 { return &p.TerminalVelocity }),

	player("wallSlideSpeed", "Wall Slide Speed", SectionAbilities, 10, 0, 1000, 0, func(p *component.PlayerParams) *float64 { return &p.WallSlideSpeed }),
	player("wallJumpStrength", "Wall Jump Strength", SectionAbilities, 10, -1500, 0, 0, func(p *component.PlayerParams) *float64 { return &p.WallJumpStrength }),
	player("wallJumpPushStrength", "Wall Jump Push", SectionAbilities, 10, 0, 1500, 0, func(p *component.PlayerParams) *float64 { return &p.WallJumpPushStrength }),
	player("wallJumpTimeMs", "Wall Jump Time (ms)", SectionAbilities, 10, 0, 1000, 0, func(p *component.PlayerParams) *float64 { return &p.WallJumpTimeMs }),
	player("doubleJumpStrength", "Double Jump Strength", SectionAbilities, 10, -1500, 0, 0, func(p *component.PlayerParams) *float64 { return &p.DoubleJumpStrength }),
	player("dashSpeed", "Dash Speed", SectionAbilities, 20, 0, 2000, 0, func(p *component.PlayerParams) *float64 { return &p.DashSpeed }),
	player("dashDurationMs", "Dash Duration (ms)", SectionAbilities, 10, 0, 1000, 0, func(p *component.PlayerParams) *float64 { return &p.DashDurationMs }),
	player("dashCooldownMs", "Dash Cooldown (ms)", SectionAbilities, 50, 0, 3000, 0, func(p *component.PlayerParams) *float64 { return &p.DashCooldownMs }),
	player("groundPoundSpeed", "Ground Pound Speed", SectionAbilities, 20, 0, 3000, 0, func(p *component.PlayerParams) *float64 { return &p.GroundPoundSpeed }),
	player("groundPoundBounceStrength", "Ground Pound Bounce", SectionAbilities, 10, -1500, 0, 0, func(p *component.PlayerParams) *float64 { return &p.GroundPoundBounceStrength }),
	player("groundPoundCooldownMs", "Ground Pound Cooldown (ms)", SectionAbilities, 50, 0, 3000, 0, func(p *component.PlayerParams) *float64 { return &p.GroundPoundCooldownMs }),

	camera("lerpX", "Lerp X", 0.01, 0, 1, 2, func(p *component.CameraParams) *float64 { return &p.LerpX }),
	camera("lerpY", "Lerp Y", 0.01, 0, 1, 2, func(p *component.CameraParams) *float64 { return &p.LerpY }),
	camera("deadzoneWidth", "Deadzone Width", 10, 0, 800, 0, func(p *component.CameraParams) *float64 { return &p.DeadzoneWidth }),
	camera("deadzoneHeight", "Deadzone Height", 10, 0, 600, 0, func(p *component.CameraParams) *float64 { return &p.DeadzoneHeight }),
	camera("lookaheadX", "Lookahead X", 5, 0, 400, 0, func(p *component.CameraParams) *float64 { return &p.LookaheadX }),
	camera("lookaheadY", "Lookahead Y", 5, 0, 400, 0, func(p *component.CameraParams) *float64 { return &p.LookaheadY }),
	camera("lookaheadSmoothingX", "Lookahead Smoothing X", 0.01, 0, 1, 2, func(p *component.CameraParams) *float64 { return &p.LookaheadSmoothingX }),
	camera("lookaheadSmoothingY", "Lookahead Smoothing Y", 0.01, 0, 1, 2, func(p *component.CameraParams) *float64 { return &p.LookaheadSmoothingY }),
	camera("lookaheadThresholdX", "Lookahead Threshold X", 5, 0, 1000, 0, func(p *component.CameraParams) *float64 { return &p.LookaheadThresholdX }),
	camera("lookaheadThresholdY", "Lookahead Threshold Y", 5, 0, 1000, 0, func(p *component.CameraParams) *float64 { return &p.LookaheadThresholdY }),

	material("default.acceleration", "Default Accel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Default.Acceleration }),
	material("default.deceleration", "Default Decel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Default.Deceleration }),
	material("default.friction", "Default Friction", 0.05, 0, 1, func(m *component.MaterialLibrary) *float64 { return &m.Default.Friction }),
	material("ice.acceleration", "Ice Accel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Ice.Acceleration }),
	material("ice.deceleration", "Ice Decel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Ice.Deceleration }),
	material("ice.friction", "Ice Friction", 0.05, 0, 1, func(m *component.MaterialLibrary) *float64 { return &m.Ice.Friction }),
	material("air.acceleration", "Air Accel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Air.Acceleration }),
	material("air.deceleration", "Air Decel", 0.05, 0, 5, func(m *component.MaterialLibrary) *float64 { return &m.Air.Deceleration }),
	material("air.friction", "Air Friction", 0.05, 0, 1, func(m *component.MaterialLibrary) *float64 { return &m.Air.Friction }),
}

// Toggles is every boolean parameter the panel exposes.
var Toggles = []Toggle{
	ability("wallSlide", "Wall Slide", func(a *component.Abilities) *bool { return &a.WallSlide }),
	ability("doubleJump", "Double Jump", func(a *component.Abilities) *bool { return &a.DoubleJump }),
	ability("dash", "Dash", func(a *component.Abilities) *bool { return &a.Dash }),
	ability("groundPound", "Ground Pound", func(a *component.Abilities) *bool { return &a.GroundPound }),
	{
		Key: "showDeadzoneDebug", Section: SectionCamera, Label: "Show Deadzone",
		Get: func(l Live) (bool, bool) {
			if l.Camera == nil {
				return false, false
			}
			return l.Camera.ShowDeadzoneDebug, true
		},
		Set: func(l Live, v bool) {
			if l.Camera != nil {
				l.Camera.ShowDeadzoneDebug = v
			}
		},
	},
}

// FieldsIn returns the numeric rows of one section in table order.
func FieldsIn(section Section) []Field {
	var out []Field
	for _, f := range Fields {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// TogglesIn returns the boolean rows of one section in table order.
func TogglesIn(section Section) []Toggle {
	var out []Toggle
	for _, t := range Toggles {
		if t.Section == section {
			out = append(out, t)
		}
	}
	return out
}

// FieldByKey finds a numeric row.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
