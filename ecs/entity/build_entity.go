package entity

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gamefeel/assets"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
	"github.com/milk9111/gamefeel/prefabs"
)

// LoadImage resolves sprite and animation sheet names. Tests swap it out to
// build prefabs without a graphics context.
var LoadImage = assets.LoadImage

type buildContext struct {
	PrefabPath string
	// centerOrigin defers sprite centring until the animation frame size
	// is known.
	centerOrigin bool
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"camera_tag":       addCameraTag,
	"input":            addInput,
	"player_collision": addPlayerCollision,
	"player_motion":    addPlayerMotion,
	"debug_readout":    addDebugReadout,
	"player_params":    addPlayerParams,
	"abilities":        addAbilities,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"camera":           addCamera,
	"camera_params":    addCameraParams,
	"camera_state":     addCameraState,
	"material_library": addMaterialLibrary,
	"animation":        addAnimation,
	"physics_body":     addPhysicsBody,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"player_collision",
	"player_motion",
	"debug_readout",
	"player_params",
	"abilities",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"camera_params",
	"camera_state",
	"material_library",
	"animation",
	"physics_body",
}

// tunableComponents are re-applied to live entities on prefab reload.
var tunableComponents = []string{
	"player_params",
	"abilities",
	"camera_params",
	"material_library",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range buildOrder(spec.Components) {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// buildOrder lists the fixed-order names first, then any others sorted.
func buildOrder(components map[string]any) []string {
	names := make([]string, 0, len(components))
	seen := make(map[string]bool, len(components))
	for _, name := range componentBuildOrder {
		if _, ok := components[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range components {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// ReloadTunables re-reads prefabPath and rebuilds only the tuning
// components on e, leaving runtime state such as bodies and timers intact.
func ReloadTunables(w *ecs.World, e ecs.Entity, prefabPath string) error {
	if !ecs.IsAlive(w, e) {
		return fmt.Errorf("reload %q: %w", prefabPath, component.ErrEntityNotAlive)
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("reload %q: %w", prefabPath, err)
	}
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range tunableComponents {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fmt.Errorf("reload %q: %q: %w", prefabPath, name, err)
		}
	}
	return nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

func addPlayerMotion(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	m := component.NewPlayerMotion()
	return ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &m)
}

func addDebugReadout(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DebugReadoutComponent.Kind(), &component.DebugReadout{})
}

func addCameraState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraStateComponent.Kind(), &component.CameraState{})
}

// put copies v into an existing component so pointers held by the panel
// and the controller stay valid across reloads.
func put[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v T) error {
	if cur, ok := ecs.Get(w, e, kind); ok {
		*cur = v
		return nil
	}
	return ecs.Add(w, e, kind, &v)
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type playerParamsSpec = prefabs.PlayerParamsComponentSpec

func addPlayerParams(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerParamsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player params spec: %w", err)
	}

	p := component.DefaultPlayerParams()
	override(&p.Gravity, spec.Gravity)
	override(&p.JumpStrength, spec.JumpStrength)
	override(&p.MoveSpeed, spec.MoveSpeed)
	override(&p.CoyoteTimeMs, spec.CoyoteTimeMs)
	override(&p.JumpBufferTimeMs, spec.JumpBufferTimeMs)
	override(&p.JumpGravityMultiplier, spec.JumpGravityMultiplier)
	override(&p.Scale, spec.Scale)
	override(&p.MaxSpeed, spec.MaxSpeed)
	override(&p.TerminalVelocity, spec.TerminalVelocity)
	override(&p.Acceleration, spec.Acceleration)
	override(&p.Deceleration, spec.Deceleration)
	override(&p.AirAcceleration, spec.AirAcceleration)
	override(&p.AirDeceleration, spec.AirDeceleration)
	override(&p.WallSlideSpeed, spec.WallSlideSpeed)
	override(&p.WallJumpStrength, spec.WallJumpStrength)
	override(&p.WallJumpTimeMs, spec.WallJumpTimeMs)
	override(&p.WallJumpPushStrength, spec.WallJumpPushStrength)
	override(&p.DoubleJumpStrength, spec.DoubleJumpStrength)
	override(&p.DashSpeed, spec.DashSpeed)
	override(&p.DashDurationMs, spec.DashDurationMs)
	override(&p.DashCooldownMs, spec.DashCooldownMs)
	override(&p.GroundPoundSpeed, spec.GroundPoundSpeed)
	override(&p.GroundPoundBounceStrength, spec.GroundPoundBounceStrength)
	override(&p.GroundPoundCooldownMs, spec.GroundPoundCooldownMs)

	return put(w, e, component.PlayerParamsComponent.Kind(), p)
}

type abilitiesSpec = prefabs.AbilitiesComponentSpec

func addAbilities(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[abilitiesSpec](raw)
	if err != nil {
		return fmt.Errorf("decode abilities spec: %w", err)
	}
	a := component.AllAbilities()
	override(&a.WallSlide, spec.WallSlide)
	override(&a.DoubleJump, spec.DoubleJump)
	override(&a.Dash, spec.Dash)
	override(&a.GroundPound, spec.GroundPound)
	return put(w, e, component.AbilitiesComponent.Kind(), a)
}

type cameraParamsSpec = prefabs.CameraParamsComponentSpec

func addCameraParams(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraParamsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera params spec: %w", err)
	}
	p := component.DefaultCameraParams()
	override(&p.LerpX, spec.LerpX)
	override(&p.LerpY, spec.LerpY)
	override(&p.DeadzoneWidth, spec.DeadzoneWidth)
	override(&p.DeadzoneHeight, spec.DeadzoneHeight)
	override(&p.LookaheadX, spec.LookaheadX)
	override(&p.LookaheadY, spec.LookaheadY)
	override(&p.LookaheadSmoothingX, spec.LookaheadSmoothingX)
	override(&p.LookaheadSmoothingY, spec.LookaheadSmoothingY)
	override(&p.LookaheadThresholdX, spec.LookaheadThresholdX)
	override(&p.LookaheadThresholdY, spec.LookaheadThresholdY)
	override(&p.ShowDeadzoneDebug, spec.ShowDeadzoneDebug)
	return put(w, e, component.CameraParamsComponent.Kind(), p)
}

type materialLibrarySpec = prefabs.MaterialLibraryComponentSpec

func addMaterialLibrary(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[materialLibrarySpec](raw)
	if err != nil {
		return fmt.Errorf("decode material library spec: %w", err)
	}
	lib := component.DefaultMaterials()
	applyMaterialSpec(&lib.Default, spec.Default)
	applyMaterialSpec(&lib.Ice, spec.Ice)
	applyMaterialSpec(&lib.Air, spec.Air)
	return put(w, e, component.MaterialLibraryComponent.Kind(), lib)
}

func applyMaterialSpec(m *component.Material, spec prefabs.MaterialComponentSpec) {
	override(&m.Acceleration, spec.Acceleration)
	override(&m.Deceleration, spec.Deceleration)
	override(&m.Friction, spec.Friction)
	if spec.Color != nil {
		m.Color = spec.Color.RGB()
	}
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero {
		ctx.centerOrigin = true
		if sprite.Image != nil {
			iw, ih := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
			sprite.OriginX = float64(iw) / 2
			sprite.OriginY = float64(ih) / 2
		}
	}
	sprite.FacingLeft = spec.FacingLeft

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		ViewWidth:  spec.ViewWidth,
		ViewHeight: spec.ViewHeight,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	var sheet *ebiten.Image
	if spec.Sheet != "" {
		sheet, err = LoadImage(spec.Sheet)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
		}
	}
	if spec.FrameW <= 0 {
		spec.FrameW = assets.PlayerFrameSize
	}
	if spec.FrameH <= 0 {
		spec.FrameH = assets.PlayerFrameSize
	}

	var defs map[string]component.AnimationDef
	if len(spec.Defs) == 0 {
		defs = component.PlayerAnimationDefs(spec.FrameW, spec.FrameH)
	} else {
		defs = make(map[string]component.AnimationDef, len(spec.Defs))
		for name, def := range spec.Defs {
			if def.FrameW <= 0 {
				def.FrameW = spec.FrameW
			}
			if def.FrameH <= 0 {
				def.FrameH = spec.FrameH
			}
			defs[name] = component.AnimationDef{
				Name:       name,
				Row:        def.Row,
				ColStart:   def.ColStart,
				FrameCount: def.FrameCount,
				FrameW:     def.FrameW,
				FrameH:     def.FrameH,
				FPS:        def.FPS,
				Loop:       def.Loop,
			}
		}
	}

	current := spec.Current
	if current == "" {
		current = string(component.AnimIdle)
	}
	if _, ok := defs[current]; !ok {
		return fmt.Errorf("unknown initial animation %q", current)
	}

	playing := spec.Playing
	if m, ok := raw.(map[string]any); ok {
		if _, has := m["playing"]; !has {
			playing = true
		}
	}

	if ctx.centerOrigin {
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.OriginX = float64(spec.FrameW) / 2
			sprite.OriginY = float64(spec.FrameH) / 2
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   sheet,
		Defs:    defs,
		Current: current,
		Playing: playing,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 32
	}
	if spec.Height <= 0 {
		spec.Height = 32
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		AlignTopLeft:  spec.AlignTopLeft,
		OffsetX:       spec.OffsetX,
		OffsetY:       spec.OffsetY,
		Material:      spec.Material,
		CustomGravity: spec.CustomGravity,
	})
}
