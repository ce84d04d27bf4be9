package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
	"github.com/milk9111/gamefeel/levels"
)

// LevelEntities are the handles LoadLevel creates that the game keeps.
type LevelEntities struct {
	Player    ecs.Entity
	Camera    ecs.Entity
	Materials ecs.Entity
}

// LoadLevel builds bounds, platforms, the material library (when the world
// has none), the player at the spawn point and the camera.
func LoadLevel(w *ecs.World, lvl *levels.Level) (LevelEntities, error) {
	var out LevelEntities
	if w == nil || lvl == nil {
		return out, fmt.Errorf("load level: world and level are required")
	}
	if err := lvl.Validate(); err != nil {
		return out, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	if e, ok := ecs.First(w, component.MaterialLibraryComponent.Kind()); ok {
		out.Materials = e
	} else {
		e, err := NewMaterials(w)
		if err != nil {
			return out, fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
		out.Materials = e
	}
	lib := MaterialLibrary(w)

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return out, fmt.Errorf("load level %q: bounds: %w", lvl.Name, err)
	}

	for i, p := range lvl.Platforms {
		if _, err := addPlatform(w, p, lib); err != nil {
			return out, fmt.Errorf("load level %q: platform %d: %w", lvl.Name, i, err)
		}
	}

	player, err := NewPlayerAt(w, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return out, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}
	out.Player = player

	camera, err := NewCamera(w)
	if err != nil {
		return out, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}
	out.Camera = camera

	return out, nil
}

func addPlatform(w *ecs.World, p levels.Platform, lib *component.MaterialLibrary) (ecs.Entity, error) {
	material := p.Material
	if material == "" {
		material = string(component.MaterialDefault)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      p.X,
		Y:      p.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
		Width:    p.W,
		Height:   p.H,
		Material: material,
		Wall:     p.Wall,
		Color:    platformColor(material, p.Wall, lib),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        p.W,
		Height:       p.H,
		Static:       true,
		AlignTopLeft: true,
		Material:     material,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

var wallTint = color.RGBA{R: 0x50, G: 0x50, B: 0x60, A: 0xff}

func platformColor(material string, wall bool, lib *component.MaterialLibrary) color.RGBA {
	if wall && material == string(component.MaterialDefault) {
		return wallTint
	}
	if m, ok := lib.Lookup(material); ok {
		return m.RGBA()
	}
	return component.DefaultMaterials().Default.RGBA()
}

// RecolorPlatforms refreshes platform colors after the library changes.
func RecolorPlatforms(w *ecs.World) {
	lib := MaterialLibrary(w)
	ecs.ForEach(w, component.PlatformComponent.Kind(), func(_ ecs.Entity, p *component.Platform) {
		p.Color = platformColor(p.Material, p.Wall, lib)
	})
}
