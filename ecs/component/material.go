package component

import "image/color"

type MaterialType string

const (
	MaterialDefault MaterialType = "default"
	MaterialIce     MaterialType = "ice"
	MaterialAir     MaterialType = "air"
)

// Material describes how a surface responds to horizontal input. Friction
// is a per-tick velocity multiplier; acceleration and deceleration are
// px/s gained or lost per elapsed millisecond.
type Material struct {
	Type         MaterialType `json:"type"`
	Acceleration float64      `json:"acceleration"`
	Deceleration float64      `json:"deceleration"`
	Friction     float64      `json:"friction"`
	Color        uint32       `json:"color"`
}

// RGBA converts the 0xRRGGBB color to an opaque color.RGBA.
func (m Material) RGBA() color.RGBA {
	return color.RGBA{R: uint8(m.Color >> 16), G: uint8(m.Color >> 8), B: uint8(m.Color), A: 0xff}
}

// MaterialLibrary is the set of materials a level can reference.
type MaterialLibrary struct {
	Default Material `json:"default"`
	Ice     Material `json:"ice"`
	Air     Material `json:"air"`
}

func DefaultMaterials() MaterialLibrary {
	return MaterialLibrary{
		Default: Material{Type: MaterialDefault, Acceleration: 0.5, Deceleration: 0.7, Friction: 0.8, Color: 0x888888},
		Ice:     Material{Type: MaterialIce, Acceleration: 0.2, Deceleration: 0.1, Friction: 0.1, Color: 0x88ffff},
		// No friction in air; color unused.
		Air: Material{Type: MaterialAir, Acceleration: 0.2, Deceleration: 0.3, Friction: 1.0, Color: 0x000000},
	}
}

// Lookup returns the surface material with the given type name.
func (l *MaterialLibrary) Lookup(name string) (*Material, bool) {
	if l == nil {
		return nil, false
	}
	switch MaterialType(name) {
	case MaterialDefault:
		return &l.Default, true
	case MaterialIce:
		return &l.Ice, true
	case MaterialAir:
		return &l.Air, true
	}
	return nil, false
}

var MaterialLibraryComponent = NewComponent[MaterialLibrary]()
