package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"galaxy-classifier/internal/algorithms"
	"galaxy-classifier/internal/core"
)

// Default classification constants. HSV bounds use the OpenCV 8-bit scale
// (H 0-179, S 0-255, V 0-255); channels index the decoded BGR image.
var (
	DefaultRedRange = algorithms.ColorRange{
		Low:  algorithms.HSV{0, 70, 50},
		High: algorithms.HSV{10, 255, 255},
	}
	DefaultBlueRange = algorithms.ColorRange{
		Low:  algorithms.HSV{100, 70, 50},
		High: algorithms.HSV{130, 255, 255},
	}
)

const (
	DefaultRedChannel    = core.ChannelRed
	DefaultBlueChannel   = core.ChannelBlue
	DefaultSplit         = 3
	DefaultMinBrightness = 50
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	RedRange      algorithms.ColorRange `yaml:"red_range"`
	BlueRange     algorithms.ColorRange `yaml:"blue_range"`
	RedChannel    int                   `yaml:"red_channel"`
	BlueChannel   int                   `yaml:"blue_channel"`
	Split         int                   `yaml:"split"`
	MinBrightness int                   `yaml:"min_brightness"`
}

func Default() Config {
	return Config{
		RedRange:      DefaultRedRange,
		BlueRange:     DefaultBlueRange,
		RedChannel:    DefaultRedChannel,
		BlueChannel:   DefaultBlueChannel,
		Split:         DefaultSplit,
		MinBrightness: DefaultMinBrightness,
	}
}

// Load reads a YAML file on top of the defaults: keys missing from the file
// keep their default value. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field against the scales the classifier works in.
// Overlap between the red and blue hue ranges is not checked.
func (c Config) Validate() error {
	if err := c.RedRange.Validate(); err != nil {
		return fmt.Errorf("%w: red_range: %v", ErrInvalidConfig, err)
	}
	if err := c.BlueRange.Validate(); err != nil {
		return fmt.Errorf("%w: blue_range: %v", ErrInvalidConfig, err)
	}
	if c.RedChannel < 0 || c.RedChannel > 2 {
		return fmt.Errorf("%w: red_channel %d outside [0,2]", ErrInvalidConfig, c.RedChannel)
	}
	if c.BlueChannel < 0 || c.BlueChannel > 2 {
		return fmt.Errorf("%w: blue_channel %d outside [0,2]", ErrInvalidConfig, c.BlueChannel)
	}
	if c.Split < 1 {
		return fmt.Errorf("%w: split %d must be at least 1", ErrInvalidConfig, c.Split)
	}
	if c.MinBrightness < 0 || c.MinBrightness > 255 {
		return fmt.Errorf("%w: min_brightness %d outside [0,255]", ErrInvalidConfig, c.MinBrightness)
	}
	return nil
}
