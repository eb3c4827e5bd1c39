package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

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

type ColliderSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type SpriteSpec struct {
	Color *YAMLColor `yaml:"color"`
	Layer int        `yaml:"layer"`
}

// RGBA returns the sprite color, or fallback when none is authored.
func (s SpriteSpec) RGBA(fallback color.RGBA) color.RGBA {
	if s.Color == nil || s.Color.Color == nil {
		return fallback
	}
	r, g, b, a := s.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// GateSpec tunes gates. Travel and speed are in tiles so they scale with the
// grid.
type GateSpec struct {
	Name                string       `yaml:"name"`
	TravelTiles         float64      `yaml:"travel_tiles"`
	SpeedTilesPerSecond float64      `yaml:"speed_tiles_per_second"`
	Collider            ColliderSpec `yaml:"collider"`
	Sprite              SpriteSpec   `yaml:"sprite"`
}

func LoadGateSpec() (*GateSpec, error) {
	spec, err := LoadSpec[GateSpec]("gate.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CrystalSpec struct {
	Name         string       `yaml:"name"`
	SensorMargin float64      `yaml:"sensor_margin"`
	Collider     ColliderSpec `yaml:"collider"`
	Sprite       SpriteSpec   `yaml:"sprite"`
}

func LoadCrystalSpec() (*CrystalSpec, error) {
	spec, err := LoadSpec[CrystalSpec]("crystal.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type DoorSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Sprite   SpriteSpec   `yaml:"sprite"`
}

func LoadDoorSpec() (*DoorSpec, error) {
	spec, err := LoadSpec[DoorSpec]("door.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name      string       `yaml:"name"`
	MoveSpeed float64      `yaml:"move_speed"`
	JumpSpeed float64      `yaml:"jump_speed"`
	Collider  ColliderSpec `yaml:"collider"`
	Sprite    SpriteSpec   `yaml:"sprite"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CrateSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Sprite   SpriteSpec   `yaml:"sprite"`
}

func LoadCrateSpec() (*CrateSpec, error) {
	spec, err := LoadSpec[CrateSpec]("crate.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WallSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Sprite   SpriteSpec   `yaml:"sprite"`
}

func LoadWallSpec() (*WallSpec, error) {
	spec, err := LoadSpec[WallSpec]("wall.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// WorldSpec configures the physics space.
type WorldSpec struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
