package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/noise"
)

const (
	DefaultFPS     = 60
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultFrames  = 60
	DefaultDataDir = "runs"
	DefaultLevel   = "info"
	MaxOctaves     = 16
)

// Environment variables read by Env.
const (
	EnvConfig   = "AMBIENT_CONFIG"
	EnvData     = "AMBIENT_DATA"
	EnvTheme    = "AMBIENT_THEME"
	EnvSeed     = "AMBIENT_SEED"
	EnvLogLevel = "AMBIENT_LOG_LEVEL"
)

var envKeys = []string{EnvConfig, EnvData, EnvTheme, EnvSeed, EnvLogLevel}

type Config struct {
	Theme        string                   `yaml:"theme"`
	Seed         int64                    `yaml:"seed"`
	FPS          int                      `yaml:"fps"`
	Width        int                      `yaml:"width"`
	Height       int                      `yaml:"height"`
	Frames       int                      `yaml:"frames"`
	DataDir      string                   `yaml:"data_dir"`
	LogLevel     string                   `yaml:"log_level"`
	NoiseOctaves int                      `yaml:"noise_octaves"`
	Themes       map[string]ambient.Theme `yaml:"themes,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:        ambient.SunsetTheme.Name,
		FPS:          DefaultFPS,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Frames:       DefaultFrames,
		DataDir:      DefaultDataDir,
		LogLevel:     DefaultLevel,
		NoiseOctaves: noise.DefaultOctaves,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := c.ResolveTheme(); err != nil {
		errs = append(errs, err)
	}
	if c.FPS < 0 {
		errs = append(errs, fmt.Errorf("fps must be >= 0, got %d", c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must be >= 0, got %d", c.Frames))
	}
	if c.NoiseOctaves < 1 || c.NoiseOctaves > MaxOctaves {
		errs = append(errs, fmt.Errorf("noise_octaves must be in [1, %d], got %d", MaxOctaves, c.NoiseOctaves))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ResolveTheme looks the configured theme up in the file's own themes first,
// then in the presets.
func (c *Config) ResolveTheme() (ambient.Theme, error) {
	if th, ok := c.Themes[c.Theme]; ok {
		th.Name = c.Theme
		return th, nil
	}
	if th, ok := GetTheme(c.Theme); ok {
		return th, nil
	}
	return ambient.Theme{}, fmt.Errorf("unknown theme %q", c.Theme)
}

// Env collects AMBIENT_* settings. Values from dotenv files are read first
// and the process environment wins. Missing files are skipped.
func Env(files ...string) (map[string]string, error) {
	env := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for _, k := range envKeys {
			if v, ok := vals[k]; ok {
				env[k] = v
			}
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides fields named by env. AMBIENT_CONFIG is not applied
// here; callers load that file first.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvData]; ok && v != "" {
		c.DataDir = v
	}
	if v, ok := env[EnvTheme]; ok && v != "" {
		c.Theme = v
	}
	if v, ok := env[EnvLogLevel]; ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := env[EnvSeed]; ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}
