package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/blockjumper/entity"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTuning reads tuning.yaml over the built-in defaults, so a file that
// omits a field keeps the default for it.
func LoadTuning() (entity.Tuning, error) {
	tuning := entity.DefaultTuning()
	data, err := Load("tuning.yaml")
	if err != nil {
		return tuning, fmt.Errorf("prefabs: load tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return entity.DefaultTuning(), fmt.Errorf("prefabs: unmarshal tuning.yaml: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return entity.DefaultTuning(), fmt.Errorf("prefabs: tuning.yaml: %w", err)
	}
	return tuning, nil
}

type AnimationsSpec struct {
	Clips map[string]ClipSpec `yaml:"clips"`
}

// ClipSpec locates a clip's frames either as numbered images in Dir or as
// a row-major Sheet cut into FrameSize cells.
type ClipSpec struct {
	Dir         string          `yaml:"dir"`
	Sheet       string          `yaml:"sheet"`
	FrameSize   [2]int          `yaml:"frame_size"`
	FrameCount  int             `yaml:"frame_count"`
	Duration    int             `yaml:"duration"`
	Loop        bool            `yaml:"loop"`
	Placeholder PlaceholderSpec `yaml:"placeholder"`
}

// PlaceholderSpec describes the flat frames generated when a clip's
// images are not on disk.
type PlaceholderSpec struct {
	Frames int        `yaml:"frames"`
	Size   [2]int     `yaml:"size"`
	Color  *YAMLColor `yaml:"color"`
}

func LoadAnimationsSpec() (*AnimationsSpec, error) {
	spec, err := LoadSpec[AnimationsSpec]("animations.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type SoundsSpec struct {
	Sounds []AudioSpec `yaml:"sounds"`
	Loops  []AudioSpec `yaml:"loops"`
}

func LoadSoundsSpec() (*SoundsSpec, error) {
	spec, err := LoadSpec[SoundsSpec]("audio.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type HUDSpec struct {
	FontSize        float64    `yaml:"font_size"`
	TextColor       *YAMLColor `yaml:"text_color"`
	ShadowColor     *YAMLColor `yaml:"shadow_color"`
	HeartSize       int        `yaml:"heart_size"`
	HeartColor      *YAMLColor `yaml:"heart_color"`
	SilhouetteColor *YAMLColor `yaml:"silhouette_color"`
	BackgroundColor *YAMLColor `yaml:"background_color"`
}

func LoadHUDSpec() (*HUDSpec, error) {
	spec, err := LoadSpec[HUDSpec]("hud.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

// UnmarshalYAML reads "#rrggbb" or "#rrggbbaa"; alpha defaults to opaque.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: color must be a string, line %d", value.Line)
	}
	hex := strings.TrimPrefix(value.Value, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fmt.Errorf("prefabs: color %q: want #rrggbb or #rrggbbaa", value.Value)
	}

	channels := [4]uint8{3: 0xff}
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("prefabs: color %q: %w", value.Value, err)
		}
		channels[i] = uint8(v)
	}
	c.Color = color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	return nil
}
