package entity

import (
	"github.com/milk9111/gamefeel/ecs"
	"github.com/milk9111/gamefeel/ecs/component"
)

const MaterialsPrefab = "materials.yaml"

// NewMaterials builds the world's material library entity.
func NewMaterials(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, MaterialsPrefab)
}

// MaterialLibrary returns the world's library, or nil before one is built.
func MaterialLibrary(w *ecs.World) *component.MaterialLibrary {
	e, ok := ecs.First(w, component.MaterialLibraryComponent.Kind())
	if !ok {
		return nil
	}
	lib, _ := ecs.Get(w, e, component.MaterialLibraryComponent.Kind())
	return lib
}
