package tuning

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/gamefeel/storage"
)

const (
	ConfigsKey       = "gamefeel_configs"
	CurrentConfigKey = "current_gamefeel_config"
)

var (
	ErrUnnamedConfig  = errors.New("tuning: config must have a name to be saved")
	ErrConfigNotFound = errors.New("tuning: config not found")
)

// Store keeps the current config and the list of named configs in a KV.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// SaveCurrent records cfg as current and, when it has a name, upserts it
// into the named list.
func (s *Store) SaveCurrent(cfg GameConfig) error {
	if err := s.setJSON(CurrentConfigKey, cfg); err != nil {
		return err
	}
	if cfg.Name == "" {
		return nil
	}
	return s.upsert(cfg)
}

// Current returns the current config, or nil when none was saved.
func (s *Store) Current() (*GameConfig, error) {
	raw, err := s.kv.Get(CurrentConfigKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tuning: read current: %w", err)
	}
	cfg, err := Unmarshal([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// All returns every named config in save order. It never returns nil.
func (s *Store) All() ([]GameConfig, error) {
	raw, err := s.kv.Get(ConfigsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []GameConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tuning: read configs: %w", err)
	}
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("tuning: decode configs: %w", err)
	}
	out := make([]GameConfig, 0, len(list))
	for _, item := range list {
		cfg, err := Unmarshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Names lists the named configs in save order.
func (s *Store) Names() ([]string, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.Name)
	}
	return names, nil
}

// SaveNamed upserts cfg by name without touching the current config.
func (s *Store) SaveNamed(cfg GameConfig) error {
	if cfg.Name == "" {
		return ErrUnnamedConfig
	}
	return s.upsert(cfg)
}

// LoadNamed returns the named config and makes it current.
func (s *Store) LoadNamed(name string) (GameConfig, error) {
	all, err := s.All()
	if err != nil {
		return GameConfig{}, err
	}
	for _, c := range all {
		if c.Name == name {
			if err := s.setJSON(CurrentConfigKey, c); err != nil {
				return GameConfig{}, err
			}
			return c, nil
		}
	}
	return GameConfig{}, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// DeleteNamed removes every config called name. Missing names are not an
// error.
func (s *Store) DeleteNamed(name string) error {
	all, err := s.All()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, c := range all {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	return s.setJSON(ConfigsKey, kept)
}

func (s *Store) upsert(cfg GameConfig) error {
	all, err := s.All()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].Name == cfg.Name {
			all[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, cfg)
	}
	return s.setJSON(ConfigsKey, all)
}

func (s *Store) setJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("tuning: encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("tuning: write %s: %w", key, err)
	}
	return nil
}
