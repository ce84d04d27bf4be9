package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Pointer fields below are optional: a nil value keeps the built-in default.

type PlayerParamsComponentSpec struct {
	Gravity               *float64 `yaml:"gravity"`
	JumpStrength          *float64 `yaml:"jump_strength"`
	MoveSpeed             *float64 `yaml:"move_speed"`
	CoyoteTimeMs          *float64 `yaml:"coyote_time_ms"`
	JumpBufferTimeMs      *float64 `yaml:"jump_buffer_time_ms"`
	JumpGravityMultiplier *float64 `yaml:"jump_gravity_multiplier"`
	Scale                 *float64 `yaml:"scale"`
	MaxSpeed              *float64 `yaml:"max_speed"`
	TerminalVelocity      *float64 `yaml:"terminal_velocity"`

	Acceleration    *float64 `yaml:"acceleration"`
	Deceleration    *float64 `yaml:"deceleration"`
	AirAcceleration *float64 `yaml:"air_acceleration"`
	AirDeceleration *float64 `yaml:"air_deceleration"`

	WallSlideSpeed       *float64 `yaml:"wall_slide_speed"`
	WallJumpStrength     *float64 `yaml:"wall_jump_strength"`
	WallJumpTimeMs       *float64 `yaml:"wall_jump_time_ms"`
	WallJumpPushStrength *float64 `yaml:"wall_jump_push_strength"`
	DoubleJumpStrength   *float64 `yaml:"double_jump_strength"`

	DashSpeed      *float64 `yaml:"dash_speed"`
	DashDurationMs *float64 `yaml:"dash_duration_ms"`
	DashCooldownMs *float64 `yaml:"dash_cooldown_ms"`

	GroundPoundSpeed          *float64 `yaml:"ground_pound_speed"`
	GroundPoundBounceStrength *float64 `yaml:"ground_pound_bounce_strength"`
	GroundPoundCooldownMs     *float64 `yaml:"ground_pound_cooldown_ms"`
}

type AbilitiesComponentSpec struct {
	WallSlide   *bool `yaml:"wall_slide"`
	DoubleJump  *bool `yaml:"double_jump"`
	Dash        *bool `yaml:"dash"`
	GroundPound *bool `yaml:"ground_pound"`
}

type CameraParamsComponentSpec struct {
	LerpX               *float64 `yaml:"lerp_x"`
	LerpY               *float64 `yaml:"lerp_y"`
	DeadzoneWidth       *float64 `yaml:"deadzone_width"`
	DeadzoneHeight      *float64 `yaml:"deadzone_height"`
	LookaheadX          *float64 `yaml:"lookahead_x"`
	LookaheadY          *float64 `yaml:"lookahead_y"`
	LookaheadSmoothingX *float64 `yaml:"lookahead_smoothing_x"`
	LookaheadSmoothingY *float64 `yaml:"lookahead_smoothing_y"`
	LookaheadThresholdX *float64 `yaml:"lookahead_threshold_x"`
	LookaheadThresholdY *float64 `yaml:"lookahead_threshold_y"`
	ShowDeadzoneDebug   *bool    `yaml:"show_deadzone_debug"`
}

type MaterialComponentSpec struct {
	Acceleration *float64   `yaml:"acceleration"`
	Deceleration *float64   `yaml:"deceleration"`
	Friction     *float64   `yaml:"friction"`
	Color        *YAMLColor `yaml:"color"`
}

type MaterialLibraryComponentSpec struct {
	Default MaterialComponentSpec `yaml:"default"`
	Ice     MaterialComponentSpec `yaml:"ice"`
	Air     MaterialComponentSpec `yaml:"air"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	UseSource          bool    `yaml:"use_source"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

// AnimationComponentSpec falls back to the built-in player table when Defs
// is empty.
type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	FrameW  int                                  `yaml:"frame_w"`
	FrameH  int                                  `yaml:"frame_h"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing bool                                 `yaml:"playing"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	AlignTopLeft  bool    `yaml:"align_top_left"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
	Material      string  `yaml:"material"`
	CustomGravity bool    `yaml:"custom_gravity"`
}
