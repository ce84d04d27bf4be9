package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
)

var playerFallbackColor = color.RGBA{R: 0x40, G: 0x80, B: 0xff, A: 0xff}

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// cameraTransform returns the pixel-rounded view origin and zoom.
func cameraTransform(w *ecs.World, cached *ecs.Entity) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	if !ecs.IsAlive(w, *cached) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			*cached = camEntity
		}
	}
	if camTransform, ok := ecs.Get(w, *cached, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, *cached, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := cameraTransform(w, &r.camEntity)

	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Platform, t *component.Transform) {
		vector.FillRect(screen,
			float32((t.X-camX)*zoom), float32((t.Y-camY)*zoom),
			float32(p.Width*zoom), float32(p.Height*zoom),
			p.Color, false)
	})

	var entities []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, _ *component.Transform, _ *component.Sprite) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}

		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil {
			r.drawFallback(w, e, t, screen, camX, camY, zoom)
			continue
		}

		img := s.Image
		if s.UseSource {
			sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image)
			if ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}

		if s.FacingLeft {
			sx = -sx
		}

		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)

		screen.DrawImage(img, op)
	}
}

// drawFallback draws the collider box for entities whose sprite has no
// frame yet.
func (r *RenderSystem) drawFallback(w *ecs.World, e ecs.Entity, t *component.Transform, screen *ebiten.Image, camX, camY, zoom float64) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	x := t.X - body.Width/2
	y := t.Y - body.Height/2
	vector.FillRect(screen,
		float32((x-camX)*zoom), float32((y-camY)*zoom),
		float32(body.Width*zoom), float32(body.Height*zoom),
		playerFallbackColor, false)
}
