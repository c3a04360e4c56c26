package scenefile

import (
	"bytes"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

const armScene = `
fps: 10
meshes:
  - name: arm
    size: [0.5, 0.5, 4]
    anchors:
      tip: {position: [0, 0, 2]}
  - name: hand
    pose: {position: [0, 0, 3]}
  - name: tower
    size: [1, 2, 1]
    pose: {position: [5, 1, 0]}
animations:
  - name: swing
    target: arm
    duration: 2
    loop: bounce
    spans:
      - weight: 2
        enter: swinging
        commands: ["th 90", {f: 1}]
      - easing: ease-in-out
        exit: done
        commands:
          - parallel: ["u 1", "tr 45"]
          - "jump 3"
  - target: tower
    procedural: grow
    duration: 1
links:
  - child: hand
    parent: arm
    at: tip
    inherit_rotation: true
play: [swing]
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(armScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Meshes) != 3 || len(s.Animations) != 2 || len(s.Links) != 1 {
		t.Fatalf("parsed %d meshes, %d animations, %d links", len(s.Meshes), len(s.Animations), len(s.Links))
	}

	swing := s.Animations[0]
	if swing.Spans[0].Weight != 2 || len(swing.Spans[0].Commands) != 2 {
		t.Errorf("first span = %+v", swing.Spans[0])
	}
	if c := swing.Spans[0].Commands[1].Command; c.Kind != turtle.KindForward || c.Value != 1 {
		t.Errorf("mapping form decoded to %v", c)
	}

	par := swing.Spans[1].Commands[0].Command
	if par.Kind != turtle.KindParallel || len(par.Children) != 2 || par.Children[1].Kind != turtle.KindTurnR {
		t.Errorf("parallel decoded to %v", par)
	}

	bad := swing.Spans[1].Commands[1]
	if bad.Kind != turtle.KindNone || len(bad.Unknown()) != 1 || bad.Unknown()[0] != "jump" {
		t.Errorf("unknown command decoded to %v (unknown %v)", bad.Command, bad.Unknown())
	}

	arm := s.Meshes[0].Mesh()
	if tip, ok := arm.Anchor("tip"); !ok || !tip.Position.ApproxEqual(math.Vec3{Z: 2}, 1e-12) {
		t.Errorf("arm tip = %v, %v", tip, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "meshes: [unterminated"},
		{"bad command", "animations:\n  - target: a\n    spans:\n      - commands: [\"f ten\"]\n"},
		{"command arity", "animations:\n  - target: a\n    spans:\n      - commands: [\"f\"]\n"},
		{"unnamed mesh", "meshes:\n  - size: [1, 1, 1]\n"},
		{"duplicate mesh", "meshes:\n  - name: a\n  - name: a\n"},
		{"no target", "animations:\n  - name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(armScene))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	e := animation.New(animation.WithOutput(&out))

	b, err := s.Build(e, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Animations) != 2 || b.Animations[0] != "swing" {
		t.Fatalf("animations = %v", b.Animations)
	}
	if !strings.HasPrefix(b.Animations[1], "tower-") {
		t.Errorf("generated name %q should carry the target", b.Animations[1])
	}
	if len(b.Autoplay) != 1 || b.Autoplay[0] != "swing" {
		t.Errorf("autoplay = %v", b.Autoplay)
	}

	d, _ := e.Animation("swing")
	if d.TotalFrames != 20 || d.Loop != turtle.LoopBounce {
		t.Errorf("swing: %d frames, loop %v", d.TotalFrames, d.Loop)
	}
	if _, ok := e.LinkOf("hand"); !ok {
		t.Error("hand not linked")
	}

	_ = e.Play("swing")
	e.Tick(0.1)
	if !strings.Contains(out.String(), "[swing] swinging") {
		t.Errorf("enter message not flushed: %q", out.String())
	}
}

func TestGrowGenerator(t *testing.T) {
	spec := MeshSpec{Name: "t", Size: Vec3{2, 4, 2}, Pose: &PoseSpec{Position: Vec3{0, 2, 0}}}
	gen, err := NewGenerator("grow", spec)
	if err != nil {
		t.Fatal(err)
	}

	half := gen(0.5).Bounds()
	if gomath.Abs(half.Min.Y) > 1e-12 || gomath.Abs(half.Max.Y-2) > 1e-12 {
		t.Errorf("half grown box spans y %v..%v, want 0..2", half.Min.Y, half.Max.Y)
	}
	full := gen(1).Bounds()
	if gomath.Abs(full.Max.Y-4) > 1e-12 {
		t.Errorf("full box top = %v, want 4", full.Max.Y)
	}

	if _, err := NewGenerator("melt", spec); err == nil {
		t.Error("unknown generator accepted")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(armScene), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCameraScene(t *testing.T) {
	src := `
camera: {position: [0, 0, -10]}
animations:
  - name: orbit
    target: camera
    duration: 1
    fps: 4
    orbit: [0, 0, 0]
    spans:
      - commands: ["lt 90"]
`
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := s.CameraPose(); !ok || !p.Position.ApproxEqual(math.Vec3{Z: -10}, 1e-12) {
		t.Errorf("camera pose = %v, %v", p, ok)
	}

	e := animation.New()
	if _, err := s.Build(e, 30); err != nil {
		t.Fatal(err)
	}
	d, ok := e.Animation("orbit")
	if !ok || d.Target != animation.CameraTarget {
		t.Fatalf("camera animation = %+v", d)
	}
	// A quarter orbit counterclockwise from -Z lands on -X.
	last := d.Frames[len(d.Frames)-1]
	if !last.Position.ApproxEqual(math.Vec3{X: -10}, 1e-9) {
		t.Errorf("orbit ends at %v, want (-10,0,0)", last.Position)
	}
}
