package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"termwire/internal/render"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// Variant selects which scene is animated.
type Variant string

const (
	VariantPyramid Variant = "pyramid"
	VariantPolygon Variant = "polygon"
)

type Pyramid struct {
	Scale     float64 `yaml:"scale"`
	ScaleStep float64 `yaml:"scaleStep"`
	AngleStep float64 `yaml:"angleStep"`
}

type Vertex struct {
	Radius float64 `yaml:"radius"`
	Angle  float64 `yaml:"angle"`
}

type Polygon struct {
	Velocity     float64  `yaml:"velocity"`
	Acceleration float64  `yaml:"acceleration"`
	Grow         float64  `yaml:"grow"`
	Shrink       float64  `yaml:"shrink"`
	SpeedUp      float64  `yaml:"speedUp"`
	SlowDown     float64  `yaml:"slowDown"`
	Vertices     []Vertex `yaml:"vertices"`
}

// Bindings maps an action name to the keys that trigger it.
type Bindings map[string][]string

type Keys struct {
	Pyramid Bindings `yaml:"pyramid"`
	Polygon Bindings `yaml:"polygon"`
}

type Config struct {
	Interval time.Duration `yaml:"interval"`
	Marker   string        `yaml:"marker"`
	Pyramid  Pyramid       `yaml:"pyramid"`
	Polygon  Polygon       `yaml:"polygon"`
	Keys     Keys          `yaml:"keys"`
}

func decode(cfg *Config, data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Process layers the given YAML documents over the embedded defaults, in
// order, and validates the result.
func Process(documents ...[]byte) (*Config, error) {
	config := Config{}
	if err := decode(&config, DEFAULT); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}

	for i, data := range documents {
		if err := decode(&config, data); err != nil {
			return nil, fmt.Errorf("could not merge config %d: %w", i, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads the configuration files in order and layers them over the
// defaults. With no paths the default configuration is returned.
func Load(paths ...string) (*Config, error) {
	documents := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}

		// Decode on its own first so errors name the file.
		scratch := Config{}
		if err := decode(&scratch, data); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
		documents = append(documents, data)
	}
	return Process(documents...)
}

// MaxScale bounds the configured pyramid scale in cells per model unit.
const MaxScale = 1e4

func (c *Config) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}
	if utf8.RuneCountInString(c.Marker) != 1 {
		return fmt.Errorf("marker must be a single character, got %q", c.Marker)
	}
	if c.Marker == string(render.Blank) {
		return fmt.Errorf("marker must not be blank")
	}
	// A negative scale mirrors the shape, as scale-down does at runtime.
	if !(math.Abs(c.Pyramid.Scale) <= MaxScale) {
		return fmt.Errorf("pyramid scale must be within ±%g, got %g", MaxScale, c.Pyramid.Scale)
	}
	if len(c.Polygon.Vertices) < 2 {
		return fmt.Errorf("polygon needs at least 2 vertices, got %d", len(c.Polygon.Vertices))
	}
	for _, variant := range []Variant{VariantPyramid, VariantPolygon} {
		if _, err := c.Keymap(variant); err != nil {
			return err
		}
	}
	return nil
}

// MarkerRune returns the marker as a rune.
func (c *Config) MarkerRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Marker)
	return r
}

func (c *Config) bindings(variant Variant) (Bindings, error) {
	switch variant {
	case VariantPyramid:
		return c.Keys.Pyramid, nil
	case VariantPolygon:
		return c.Keys.Polygon, nil
	}
	return nil, fmt.Errorf("unknown variant %q", variant)
}

// Keymap resolves the variant's bindings into a render.Keymap. Unknown
// action names and keys bound to two actions are errors.
func (c *Config) Keymap(variant Variant) (render.Keymap, error) {
	bindings, err := c.bindings(variant)
	if err != nil {
		return nil, err
	}

	// Sorted so duplicate errors are reported deterministically.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	keymap := render.Keymap{}
	for _, name := range names {
		action, err := render.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("%s keys: %w", variant, err)
		}
		for _, key := range bindings[name] {
			if key == "" {
				return nil, fmt.Errorf("%s keys: empty key for %s", variant, name)
			}
			if err := keymap.Bind(render.Key(key), action); err != nil {
				return nil, fmt.Errorf("%s keys: %w", variant, err)
			}
		}
	}
	return keymap, nil
}

// Scene builds the variant's scene for a width x height grid.
func (c *Config) Scene(variant Variant, width, height int) (render.Scene, error) {
	switch variant {
	case VariantPyramid:
		state := render.NewRenderState(width, height, c.Pyramid.Scale, c.Pyramid.ScaleStep, c.Pyramid.AngleStep)
		scene, err := render.NewWireframeScene(render.Pyramid(), state)
		if err != nil {
			return nil, err
		}
		return scene, nil
	case VariantPolygon:
		return render.NewPolygonScene(c.polarPolygon(width, height), render.PolygonFactors{
			Grow:     c.Polygon.Grow,
			Shrink:   c.Polygon.Shrink,
			SpeedUp:  c.Polygon.SpeedUp,
			SlowDown: c.Polygon.SlowDown,
		}), nil
	}
	return nil, fmt.Errorf("unknown variant %q", variant)
}

func (c *Config) polarPolygon(width, height int) render.PolarPolygon {
	vertices := make([]render.PolarVertex, len(c.Polygon.Vertices))
	for i, v := range c.Polygon.Vertices {
		vertices[i] = render.PolarVertex{Radius: v.Radius, Angle: v.Angle}
	}
	return render.PolarPolygon{
		Center: render.Point{
			X: float64(width / 2),
			Y: float64(height / 2),
		},
		Velocity:     c.Polygon.Velocity,
		Acceleration: c.Polygon.Acceleration,
		Vertices:     vertices,
	}
}

// Loop assembles a render.Loop for the variant on surface.
func (c *Config) Loop(variant Variant, surface render.Surface, input render.Input) (*render.Loop, error) {
	width, height := surface.Size()
	scene, err := c.Scene(variant, width, height)
	if err != nil {
		return nil, err
	}
	keys, err := c.Keymap(variant)
	if err != nil {
		return nil, err
	}
	return &render.Loop{
		Scene:    scene,
		Surface:  surface,
		Input:    input,
		Keys:     keys,
		Marker:   c.MarkerRune(),
		Interval: c.Interval,
	}, nil
}
