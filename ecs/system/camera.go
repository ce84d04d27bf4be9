package system

import (
	"math"

	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
)

// CameraTarget is the follow input for one tick.
type CameraTarget struct {
	X, Y      float64
	VX, VY    float64
	MoveSpeed float64
}

// UpdateLookahead eases the follow offset toward a velocity-scaled lead.
// The offset is subtracted from the target, so a negative offset leads in
// the direction of travel.
func UpdateLookahead(st *component.CameraState, p *component.CameraParams, tgt CameraTarget) {
	targetX, targetY := 0.0, 0.0
	if tgt.MoveSpeed != 0 {
		if math.Abs(tgt.VX) > p.LookaheadThresholdX {
			targetX = -(tgt.VX / tgt.MoveSpeed) * p.LookaheadX
		}
		if math.Abs(tgt.VY) > p.LookaheadThresholdY {
			targetY = -(tgt.VY / tgt.MoveSpeed) * p.LookaheadY
		}
	}
	st.LookaheadOffsetX += (targetX - st.LookaheadOffsetX) * p.LookaheadSmoothingX
	st.LookaheadOffsetY += (targetY - st.LookaheadOffsetY) * p.LookaheadSmoothingY
}

// FollowTarget moves the scroll toward the target. With a deadzone the view
// only moves by how far the follow point sits outside the zone centred on
// the view. The first call snaps to the target.
func FollowTarget(st *component.CameraState, p *component.CameraParams, tgt CameraTarget, viewW, viewH float64, bounds *component.LevelBounds) {
	fx := tgt.X - st.LookaheadOffsetX
	fy := tgt.Y - st.LookaheadOffsetY

	if !st.Started {
		st.ScrollX = fx - viewW/2
		st.ScrollY = fy - viewH/2
		st.Started = true
	} else if p.DeadzoneWidth > 0 && p.DeadzoneHeight > 0 {
		midX := st.ScrollX + viewW/2
		midY := st.ScrollY + viewH/2
		left := midX - p.DeadzoneWidth/2
		top := midY - p.DeadzoneHeight/2
		right := left + p.DeadzoneWidth
		bottom := top + p.DeadzoneHeight

		if fx < left {
			st.ScrollX = common.Lerp(st.ScrollX, st.ScrollX-(left-fx), p.LerpX)
		} else if fx > right {
			st.ScrollX = common.Lerp(st.ScrollX, st.ScrollX+(fx-right), p.LerpX)
		}
		if fy < top {
			st.ScrollY = common.Lerp(st.ScrollY, st.ScrollY-(top-fy), p.LerpY)
		} else if fy > bottom {
			st.ScrollY = common.Lerp(st.ScrollY, st.ScrollY+(fy-bottom), p.LerpY)
		}
	} else {
		st.ScrollX = common.Lerp(st.ScrollX, fx-viewW/2, p.LerpX)
		st.ScrollY = common.Lerp(st.ScrollY, fy-viewH/2, p.LerpY)
	}

	if bounds != nil && bounds.Width > 0 && bounds.Height > 0 {
		st.ScrollX = common.Clamp(st.ScrollX, 0, math.Max(0, bounds.Width-viewW))
		st.ScrollY = common.Clamp(st.ScrollY, 0, math.Max(0, bounds.Height-viewH))
	}

	st.DeadzoneX = st.ScrollX + (viewW-p.DeadzoneWidth)/2
	st.DeadzoneY = st.ScrollY + (viewH-p.DeadzoneHeight)/2
}

// ViewOrigin is the pixel-rounded scroll used for drawing.
func ViewOrigin(st *component.CameraState) (float64, float64) {
	return common.Round(st.ScrollX), common.Round(st.ScrollY)
}

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	params, ok := ecs.Get(w, cs.camEntity, component.CameraParamsComponent.Kind())
	if !ok {
		return
	}
	state, ok := ecs.Get(w, cs.camEntity, component.CameraStateComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
		state.Started = false
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	tgt := CameraTarget{X: targetTransform.X, Y: targetTransform.Y}
	if body, ok := ecs.Get(w, cs.targetEntity, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		tgt.VX, tgt.VY = v.X, v.Y
	}
	if pp, ok := ecs.Get(w, cs.targetEntity, component.PlayerParamsComponent.Kind()); ok {
		tgt.MoveSpeed = pp.MoveSpeed
	}

	var bounds *component.LevelBounds
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds, _ = ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	}

	viewW, viewH := viewSize(cam)
	UpdateLookahead(state, params, tgt)
	FollowTarget(state, params, tgt, viewW, viewH, bounds)

	if camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		camTransform.X, camTransform.Y = ViewOrigin(state)
	}
}

func viewSize(cam *component.Camera) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	vw, vh := cam.ViewWidth, cam.ViewHeight
	if vw <= 0 || vh <= 0 {
		vw, vh = common.BaseWidth, common.BaseHeight
	}
	return vw / zoom, vh / zoom
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
