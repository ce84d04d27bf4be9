package system

import "github.com/milk9111/gamefeel/ecs/component"

// ResolveMaterial returns the surface material under the player, or nil
// while airborne. A ground contact without a material name (the level
// bounds) keeps prev. Unknown names resolve to the library default.
func ResolveMaterial(touchingDown bool, groundMaterial string, prev *component.Material, lib *component.MaterialLibrary) *component.Material {
	if !touchingDown || lib == nil {
		return nil
	}
	if groundMaterial == "" {
		return prev
	}
	if m, ok := lib.Lookup(groundMaterial); ok && m.Type != component.MaterialAir {
		return m
	}
	return &lib.Default
}

// CurrentAcceleration is px/s gained per millisecond of held input.
func CurrentAcceleration(onGround bool, mat *component.Material, lib *component.MaterialLibrary) float64 {
	lib = orDefaultLibrary(lib)
	if !onGround {
		return lib.Air.Acceleration
	}
	if mat != nil {
		return mat.Acceleration
	}
	return lib.Default.Acceleration
}

// CurrentDeceleration is px/s lost per millisecond without input.
func CurrentDeceleration(onGround bool, mat *component.Material, lib *component.MaterialLibrary) float64 {
	lib = orDefaultLibrary(lib)
	if !onGround {
		return lib.Air.Deceleration
	}
	if mat != nil {
		return mat.Deceleration
	}
	return lib.Default.Deceleration
}

// ApplyFriction scales vx by the surface friction. Airborne, or grounded
// without a resolved material, air friction applies.
func ApplyFriction(vx float64, onGround bool, mat *component.Material, lib *component.MaterialLibrary) float64 {
	lib = orDefaultLibrary(lib)
	if onGround && mat != nil {
		return vx * mat.Friction
	}
	return vx * lib.Air.Friction
}

var defaultLibrary = component.DefaultMaterials()

func orDefaultLibrary(lib *component.MaterialLibrary) *component.MaterialLibrary {
	if lib == nil {
		return &defaultLibrary
	}
	return lib
}
