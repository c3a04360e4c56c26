// Package shader compiles GLSL programs and looks up their uniforms.
package shader

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Program is a linked vertex+fragment program with a uniform location cache.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// Stage is one shader source of a program.
type Stage struct {
	Kind   uint32 // gl.VERTEX_SHADER, gl.FRAGMENT_SHADER
	Source string
}

// Compile builds a program from a vertex and a fragment source, then resolves
// the required uniforms. A required uniform that the driver optimized out is an
// error.
func Compile(vertexSrc, fragmentSrc string, required ...string) (*Program, error) {
	id, err := link(Stage{gl.VERTEX_SHADER, vertexSrc}, Stage{gl.FRAGMENT_SHADER, fragmentSrc})
	if err != nil {
		return nil, err
	}
	p := &Program{ID: id, uniforms: make(map[string]int32)}
	for _, name := range required {
		if p.Uniform(name) < 0 {
			p.Delete()
			return nil, errors.Errorf("uniform %q not active", name)
		}
	}
	return p, nil
}

func link(stages ...Stage) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range stages {
		sh, err := compile(s)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		// Flagged for deletion; freed with the program.
		defer gl.DeleteShader(sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &buf[0])
		gl.DeleteProgram(program)
		return 0, errors.Errorf("link: %s", trimLog(buf))
	}
	return program, nil
}

func compile(s Stage) (uint32, error) {
	sh := gl.CreateShader(s.Kind)
	src, free := gl.Strs(s.Source + "\x00")
	gl.ShaderSource(sh, 1, src, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, n, nil, &buf[0])
		gl.DeleteShader(sh)
		return 0, errors.Errorf("%s shader: %s", stageName(s.Kind), trimLog(buf))
	}
	return sh, nil
}

// Uniform returns the location of name, or -1 if it is missing or inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// SetMat4 sets a mat4 uniform on the current program. Inactive names are ignored.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetVec3 sets a vec3 uniform on the current program. Inactive names are ignored.
func (p *Program) SetVec3(name string, v [3]float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// Delete frees the program. p must not be used afterwards.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func stageName(kind uint32) string {
	switch kind {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

// trimLog cuts a driver info log at its NUL terminator and trailing whitespace.
func trimLog(log []byte) string {
	if i := strings.IndexByte(string(log), 0); i >= 0 {
		log = log[:i]
	}
	return strings.TrimRight(string(log), " \r\n")
}
