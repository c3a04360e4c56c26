// Package scenefile loads YAML scene descriptions: meshes with anchors, turtle
// animations, procedural generators and links.
package scenefile

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Scene is the on-disk description of a set of meshes and their animations.
type Scene struct {
	// FPS is used by animations that do not set their own.
	FPS        float64    `yaml:"fps"`
	Camera     *PoseSpec  `yaml:"camera"`
	Meshes     []MeshSpec `yaml:"meshes"`
	Animations []AnimSpec `yaml:"animations"`
	Links      []LinkSpec `yaml:"links"`
	Play       []string   `yaml:"play"`
}

// Vec3 is written as a three element sequence.
type Vec3 [3]float64

// Math converts to the engine vector type.
func (v Vec3) Math() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// PoseSpec is a pose; a missing heading or up falls back to DefaultPose's.
type PoseSpec struct {
	Position Vec3  `yaml:"position"`
	Heading  *Vec3 `yaml:"heading"`
	Up       *Vec3 `yaml:"up"`
}

// Pose returns the orthonormalized pose.
func (p *PoseSpec) Pose() math.Pose {
	pose := math.DefaultPose()
	if p == nil {
		return pose
	}
	pose.Position = p.Position.Math()
	if p.Heading != nil {
		pose.Heading = p.Heading.Math()
	}
	if p.Up != nil {
		pose.Up = p.Up.Math()
	}
	pose.Heading, pose.Up = math.Orthonormalize(pose.Heading, pose.Up)
	return pose
}

// MeshSpec describes a box mesh.
type MeshSpec struct {
	Name    string              `yaml:"name"`
	Size    Vec3                `yaml:"size"`
	Pose    *PoseSpec           `yaml:"pose"`
	Anchors map[string]PoseSpec `yaml:"anchors"`
}

// AnimSpec describes one animation. Exactly one of Spans and Procedural is set.
type AnimSpec struct {
	Name       string     `yaml:"name"`
	Target     string     `yaml:"target"`
	Duration   float64    `yaml:"duration"`
	FPS        float64    `yaml:"fps"`
	Loop       string     `yaml:"loop"`
	Easing     string     `yaml:"easing"`
	Orbit      *Vec3      `yaml:"orbit"`
	Spans      []SpanSpec `yaml:"spans"`
	Procedural string     `yaml:"procedural"`
}

// SpanSpec describes a span. Enter and Exit are messages printed when playback
// crosses the span boundary.
type SpanSpec struct {
	Weight   float64       `yaml:"weight"`
	Easing   string        `yaml:"easing"`
	Enter    string        `yaml:"enter"`
	Exit     string        `yaml:"exit"`
	Commands []CommandSpec `yaml:"commands"`
}

// LinkSpec describes a parent/child link.
type LinkSpec struct {
	Child           string `yaml:"child"`
	Parent          string `yaml:"parent"`
	At              string `yaml:"at"`
	From            string `yaml:"from"`
	InheritRotation bool   `yaml:"inherit_rotation"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scene")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to parse scene")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	seen := make(map[string]bool)
	for i, m := range s.Meshes {
		if m.Name == "" {
			return errors.Errorf("mesh #%d has no name", i)
		}
		if seen[m.Name] {
			return errors.Errorf("mesh %q declared twice", m.Name)
		}
		seen[m.Name] = true
	}
	for i, a := range s.Animations {
		if a.Target == "" {
			return errors.Errorf("animation #%d (%q) has no target", i, a.Name)
		}
		if a.Procedural != "" && len(a.Spans) > 0 {
			return errors.Errorf("animation #%d (%q) has both spans and a generator", i, a.Name)
		}
	}
	return nil
}
