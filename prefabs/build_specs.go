package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is one prefab entity. Children are built after it and
// parented to it.
type EntityBuildSpec struct {
	Name       string            `yaml:"name"`
	Components map[string]any    `yaml:"components"`
	Children   []EntityBuildSpec `yaml:"children"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec angles are in degrees.
type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

type CameraComponentSpec struct {
	CullingMask []string `yaml:"culling_mask"`
	Main        bool     `yaml:"main"`
}

type ControlScriptComponentSpec struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
}

type LocomotionComponentSpec struct {
	Rig       string  `yaml:"rig"`
	MoveSpeed float64 `yaml:"move_speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
}

type VisualComponentSpec struct {
	Layer  string  `yaml:"layer"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Hidden bool    `yaml:"hidden"`
}

type PhysicsBodyComponentSpec struct {
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`
	Friction  float64 `yaml:"friction"`
	Kinematic bool    `yaml:"kinematic"`
	Ghost     bool    `yaml:"ghost"`
}

type PursuerComponentSpec struct {
	Target       string  `yaml:"target"`
	Speed        float64 `yaml:"speed"`
	StopDistance float64 `yaml:"stop_distance"`
	Script       string  `yaml:"script"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type AudioListenerComponentSpec struct {
	Level *float64 `yaml:"level"`
}
