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

// PossessionSpec binds the possession controller to named scene entities.
type PossessionSpec struct {
	FadeDuration         float64  `yaml:"fade_duration"`
	PossessedCullingMask []string `yaml:"possessed_culling_mask"`
	TeleportCue          string   `yaml:"teleport_cue"`

	Rig            string   `yaml:"rig"`
	Camera         string   `yaml:"camera"`
	ControlScripts []string `yaml:"control_scripts"`
	HideObjects    []string `yaml:"hide_objects"`
	Pursuer        string   `yaml:"pursuer"`
	Viewpoint      string   `yaml:"viewpoint"`
	StandInPrefab  string   `yaml:"stand_in_prefab"`
}

func LoadPossessionSpec() (*PossessionSpec, error) {
	spec, err := LoadSpec[PossessionSpec]("possession.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// SceneSpec lists the prefabs that make up the playable scene.
type SceneSpec struct {
	Name     string           `yaml:"name"`
	Listener float64          `yaml:"listener_level"`
	Entries  []SceneEntrySpec `yaml:"entities"`
}

type SceneEntrySpec struct {
	Prefab   string    `yaml:"prefab"`
	Position *Vec3Spec `yaml:"position"`
	Yaw      float64   `yaml:"yaw"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
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
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor accepts #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
