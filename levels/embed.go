package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is the sandbox shipped with the binary.
const DefaultLevel = "sandbox.json"

// Level is a rectangle-only test level in world pixels.
type Level struct {
	Name      string     `json:"name"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Spawn     Point      `json:"spawn"`
	Platforms []Platform `json:"platforms"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Platform is a static block with its top-left corner at X/Y. Material names
// an entry in the material library; empty means default. Wall marks
// geometry meant for wall slides, which only changes how it is drawn.
type Platform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Material string  `json:"material,omitempty"`
	Wall     bool    `json:"wall,omitempty"`
}

var (
	ErrEmptyLevel      = errors.New("levels: level has no size")
	ErrInvalidPlatform = errors.New("levels: platform has no size")
	ErrSpawnOutside    = errors.New("levels: spawn outside level bounds")
)

// Validate checks the level can be built.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return ErrEmptyLevel
	}
	if l.Spawn.X < 0 || l.Spawn.Y < 0 || l.Spawn.X > l.Width || l.Spawn.Y > l.Height {
		return ErrSpawnOutside
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("platform %d: %w", i, ErrInvalidPlatform)
		}
	}
	return nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

// Load reads a level from disk when name is an existing path and from the
// embedded set otherwise. The .json extension is optional.
func Load(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if data, err := os.ReadFile(name); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(name)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}
