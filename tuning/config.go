// Package tuning captures, applies and persists named sets of game-feel
// parameters.
package tuning

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/gamefeel/ecs/component"
)

// GameConfig is one saved tuning. Abilities is absent from configs written
// before toggles were saved and is left untouched on Apply when nil.
type GameConfig struct {
	Name      string                    `json:"name"`
	Player    component.PlayerParams    `json:"player"`
	Camera    component.CameraParams    `json:"camera"`
	Materials component.MaterialLibrary `json:"materials"`
	Abilities *component.Abilities      `json:"abilities,omitempty"`
}

// Live points at the running parameter structs. Nil fields are skipped.
type Live struct {
	Player    *component.PlayerParams
	Camera    *component.CameraParams
	Materials *component.MaterialLibrary
	Abilities *component.Abilities
}

// Capture copies the live values into a config named name.
func Capture(name string, live Live) GameConfig {
	cfg := GameConfig{
		Name:      name,
		Player:    component.DefaultPlayerParams(),
		Camera:    component.DefaultCameraParams(),
		Materials: component.DefaultMaterials(),
	}
	if live.Player != nil {
		cfg.Player = *live.Player
	}
	if live.Camera != nil {
		cfg.Camera = *live.Camera
	}
	if live.Materials != nil {
		cfg.Materials = *live.Materials
	}
	if live.Abilities != nil {
		a := *live.Abilities
		cfg.Abilities = &a
	}
	return cfg
}

// Apply writes cfg into the live structs in place. Material slots keep
// their type so library lookups by name stay stable.
func Apply(cfg GameConfig, live Live) {
	if live.Player != nil {
		*live.Player = cfg.Player
	}
	if live.Camera != nil {
		*live.Camera = cfg.Camera
	}
	if live.Materials != nil {
		applyMaterial(&live.Materials.Default, cfg.Materials.Default)
		applyMaterial(&live.Materials.Ice, cfg.Materials.Ice)
		applyMaterial(&live.Materials.Air, cfg.Materials.Air)
	}
	if live.Abilities != nil && cfg.Abilities != nil {
		*live.Abilities = *cfg.Abilities
	}
}

func applyMaterial(dst *component.Material, src component.Material) {
	typ := dst.Type
	*dst = src
	dst.Type = typ
}

// Marshal encodes cfg as indented JSON.
func Marshal(cfg GameConfig) ([]byte, error) {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tuning: marshal %q: %w", cfg.Name, err)
	}
	return b, nil
}

// Unmarshal decodes a config. Missing sections fall back to defaults.
func Unmarshal(data []byte) (GameConfig, error) {
	cfg := GameConfig{
		Player:    component.DefaultPlayerParams(),
		Camera:    component.DefaultCameraParams(),
		Materials: component.DefaultMaterials(),
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("tuning: unmarshal config: %w", err)
	}
	return cfg, nil
}
