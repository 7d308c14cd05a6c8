package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	mu     sync.RWMutex
	preset DifficultyPreset
	paths  = make(map[string]string)
)

// SetConfigPath makes every subsequent Load of game id without an
// explicit path read path instead. An empty path removes the override.
func SetConfigPath(id, path string) {
	mu.Lock()
	defer mu.Unlock()
	if path == "" {
		delete(paths, id)
		return
	}
	paths[id] = path
}

func overridePath(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	return paths[id]
}

// SetPreset makes every subsequent Load apply p. An empty preset leaves
// the difficulty exactly as configured.
func SetPreset(p DifficultyPreset) {
	mu.Lock()
	defer mu.Unlock()
	preset = p
}

func activePreset() DifficultyPreset {
	mu.RLock()
	defer mu.RUnlock()
	return preset
}

// LoadFlappy loads the flappy config. See load for the search order.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, err := load("flappy", customPath, DefaultFlappyConfig)
	activePreset().Apply(&cfg.Difficulty)
	return cfg, err
}

// LoadRunner loads the runner config.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg, err := load("runner", customPath, DefaultRunnerConfig)
	activePreset().Apply(&cfg.Difficulty)
	return cfg, err
}

// LoadPong loads the pong config.
func LoadPong(customPath string) (PongConfig, error) {
	cfg, err := load("pong", customPath, DefaultPongConfig)
	activePreset().Apply(&cfg.Difficulty)
	return cfg, err
}

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// load resolves the config for id. Search order:
//
//	customPath -> SetConfigPath override -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default -> hardcoded default
//
// Files are decoded over the hardcoded default, so a file only needs the
// keys it changes. A decoded file that fails Validate is never used. Only
// a broken customPath is reported as an error; the defaults are still
// returned alongside it. Broken files further down the search order are
// skipped.
func load[T validator](id, customPath string, fallback func() T) (T, error) {
	if customPath == "" {
		customPath = overridePath(id)
	}
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(data, fallback)
		if err != nil {
			return fallback(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	name := id + ".yaml"
	for _, path := range searchPaths(name) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}

	if data, err := defaultFiles.ReadFile("defaults/" + name); err == nil {
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}
	return fallback(), nil
}

func decode[T validator](data []byte, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

func searchPaths(name string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arcade", "configs", name))
	}
	return append(paths, filepath.Join("configs", name))
}
