package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/sofia-scene/internal/logging"
	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"github.com/oxygene76/sofia-scene/pkg/scene"
	"github.com/oxygene76/sofia-scene/pkg/sofialeg"
	"github.com/oxygene76/sofia-scene/pkg/transform"
)

// DefaultFile is the config file name looked up when none is given
const DefaultFile = "sofia-scene.yaml"

// EnvPrefix prefixes environment overrides, e.g. SOFIASCENE_LOG_LEVEL
const EnvPrefix = "SOFIASCENE"

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config represents the scene configuration
type Config struct {
	Header  HeaderConfig `yaml:"header" mapstructure:"header"`
	MeshDir string       `yaml:"mesh_dir" mapstructure:"mesh_dir"`
	Legs    []LegConfig  `yaml:"legs" mapstructure:"legs"`
	Output  OutputConfig `yaml:"output" mapstructure:"output"`
	Log     LogConfig    `yaml:"log" mapstructure:"log"`
}

// HeaderConfig contains the root node settings
type HeaderConfig struct {
	Plugins []string  `yaml:"plugins" mapstructure:"plugins"`
	DT      float64   `yaml:"dt" mapstructure:"dt"`
	Gravity []float64 `yaml:"gravity,flow" mapstructure:"gravity"`
}

// LegConfig describes one leg
type LegConfig struct {
	Name         string           `yaml:"name" mapstructure:"name"`
	VolumeMesh   string           `yaml:"volume_mesh" mapstructure:"volume_mesh"`
	SurfaceMesh  string           `yaml:"surface_mesh" mapstructure:"surface_mesh"`
	Color        []float64        `yaml:"color,flow" mapstructure:"color"`
	Rotation     []float64        `yaml:"rotation,flow" mapstructure:"rotation"`
	Translation  []float64        `yaml:"translation,flow" mapstructure:"translation"`
	Scale        []float64        `yaml:"scale,flow" mapstructure:"scale"`
	PoissonRatio float64          `yaml:"poisson_ratio" mapstructure:"poisson_ratio"`
	YoungModulus float64          `yaml:"young_modulus" mapstructure:"young_modulus"`
	TotalMass    float64          `yaml:"total_mass" mapstructure:"total_mass"`
	Controller   ControllerConfig `yaml:"controller" mapstructure:"controller"`
}

// ControllerConfig enables the leg controller. Params are passed to the
// controller next to the offset.
type ControllerConfig struct {
	Enabled bool           `yaml:"enabled" mapstructure:"enabled"`
	Offset  float64        `yaml:"offset" mapstructure:"offset"`
	Params  map[string]any `yaml:"params,omitempty" mapstructure:"params"`
}

// OutputConfig selects where build writes the scene
type OutputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the two leg demo scene
func DefaultConfig() *Config {
	return &Config{
		Header: HeaderConfig{
			Plugins: []string{"SofaPython", "SoftRobots", "ModelOrderReduction"},
			DT:      0.01,
			Gravity: []float64{0, -9810, 0},
		},
		MeshDir: "mesh",
		Legs: []LegConfig{
			{
				Name:         "SofiaLeg_blue_1",
				VolumeMesh:   "sofia_leg.vtu",
				SurfaceMesh:  "sofia_leg.stl",
				Color:        []float64{0, 0, 1, 0.5},
				Rotation:     []float64{0, 0, 0},
				Translation:  []float64{0, 0, 0},
				Scale:        []float64{1, 1, 1},
				PoissonRatio: 0.45,
				YoungModulus: 300,
				TotalMass:    0.01,
				Controller:   ControllerConfig{Enabled: true, Offset: 40},
			},
			{
				Name:         "SofiaLeg_blue_2",
				VolumeMesh:   "sofia_leg.vtu",
				SurfaceMesh:  "sofia_leg.stl",
				Color:        []float64{0, 1, 0, 0.5},
				Rotation:     []float64{0, 0, 0},
				Translation:  []float64{0, 0, -40},
				Scale:        []float64{1, 1, 1},
				PoissonRatio: 0.45,
				YoungModulus: 300,
				TotalMass:    0.01,
				Controller:   ControllerConfig{Enabled: true},
			},
		},
		Output: OutputConfig{
			Path:   "scene.yaml",
			Format: scene.FormatYAML,
		},
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// LoadConfig reads the config from path, or from DefaultFile in the working
// directory or ./configs when path is empty. With no path and no file the
// default config is returned.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sofia-scene")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration to path as YAML
func SaveConfig(config *Config, path string) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Header.DT <= 0 {
		return fmt.Errorf("header dt must be positive")
	}
	if _, err := geometry.FromSlice(config.Header.Gravity); err != nil {
		return fmt.Errorf("header gravity: %w", err)
	}

	if len(config.Legs) == 0 {
		return fmt.Errorf("at least one leg must be specified")
	}

	seen := map[string]bool{}
	for i, leg := range config.Legs {
		if leg.Name == "" {
			return fmt.Errorf("leg %d has no name", i)
		}
		if seen[leg.Name] {
			return fmt.Errorf("duplicate leg name: %s", leg.Name)
		}
		seen[leg.Name] = true

		for field, vec := range map[string][]float64{
			"rotation":    leg.Rotation,
			"translation": leg.Translation,
			"scale":       leg.Scale,
		} {
			if len(vec) == 0 {
				continue
			}
			if _, err := geometry.FromSlice(vec); err != nil {
				return fmt.Errorf("leg %s %s: %w", leg.Name, field, err)
			}
		}
	}

	switch config.Output.Format {
	case "", scene.FormatYAML, scene.FormatJSONL:
	default:
		return fmt.Errorf("invalid output format: %s", config.Output.Format)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return err
	}

	return nil
}

// SceneOptions converts the configuration into builder options. Fields left
// at zero take the leg defaults.
func (c *Config) SceneOptions() (sofialeg.SceneOptions, error) {
	gravity, err := geometry.FromSlice(c.Header.Gravity)
	if err != nil {
		return sofialeg.SceneOptions{}, fmt.Errorf("header gravity: %w", err)
	}
	so := sofialeg.SceneOptions{
		Header: scene.Header{
			Plugins: c.Header.Plugins,
			DT:      c.Header.DT,
			Gravity: gravity,
		},
	}

	for _, lc := range c.Legs {
		opts, err := lc.options(c.MeshDir)
		if err != nil {
			return sofialeg.SceneOptions{}, err
		}
		so.Legs = append(so.Legs, opts)
	}
	return so, nil
}

func (lc LegConfig) options(meshDir string) (sofialeg.Options, error) {
	opts := sofialeg.DefaultOptions()
	opts.Name = lc.Name
	if meshDir != "" {
		opts.MeshDir = meshDir
	}
	if lc.VolumeMesh != "" {
		opts.VolumeMesh = lc.VolumeMesh
	}
	opts.SurfaceMesh = lc.SurfaceMesh
	if len(lc.Color) > 0 {
		opts.Color = lc.Color
	}
	if lc.PoissonRatio != 0 {
		opts.PoissonRatio = lc.PoissonRatio
	}
	if lc.YoungModulus != 0 {
		opts.YoungModulus = lc.YoungModulus
	}
	if lc.TotalMass != 0 {
		opts.TotalMass = lc.TotalMass
	}

	t := transform.Identity()
	for _, f := range []struct {
		src []float64
		dst *geometry.Vector3
	}{
		{lc.Rotation, &t.Rotation},
		{lc.Translation, &t.Translation},
		{lc.Scale, &t.Scale},
	} {
		if len(f.src) == 0 {
			continue
		}
		vec, err := geometry.FromSlice(f.src)
		if err != nil {
			return sofialeg.Options{}, fmt.Errorf("leg %s: %w", lc.Name, err)
		}
		*f.dst = vec
	}
	opts.Transform = t

	if lc.Controller.Enabled {
		params := map[string]any{}
		if lc.Controller.Offset != 0 {
			params["offset"] = lc.Controller.Offset
		}
		for k, val := range lc.Controller.Params {
			params[k] = val
		}
		opts.Controller = params
	}
	return opts, nil
}
