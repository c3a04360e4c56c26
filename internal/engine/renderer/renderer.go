// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/engine/shader"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32
}

// DefaultConfig returns the projection used by the viewer.
func DefaultConfig(width, height int) Config {
	return Config{Width: width, Height: height, FOV: 45, Near: 0.1, Far: 1000}
}

// gpuMesh is the GPU side of one named mesh.
type gpuMesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	vertexCount int
	faceCount   int
	color       [3]float32
}

// Renderer keeps one vertex/index buffer pair per mesh and draws them with flat
// shading. It implements animation.Renderer.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	meshes map[string]*gpuMesh
	names  []string
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[string]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL")
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.Compile(meshVertexShader, meshFragmentShader, "uMVP")
	if err != nil {
		return nil, errors.Wrap(err, "mesh shader")
	}
	r.program = program

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every mesh buffer and the shader program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for name := range r.meshes {
		r.Remove(name)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() mgl32.Mat4 {
	return projection(r.config)
}

func projection(cfg Config) mgl32.Mat4 {
	aspect := float32(1)
	if cfg.Height > 0 {
		aspect = float32(cfg.Width) / float32(cfg.Height)
	}
	return mgl32.Perspective(mgl32.DegToRad(cfg.FOV), aspect, cfg.Near, cfg.Far)
}

// UpdateGeometry uploads new vertex positions for mesh. While the vertex and face
// counts are unchanged the existing buffers are rewritten in place; otherwise
// they are recreated.
func (r *Renderer) UpdateGeometry(mesh string, vertices []math.Vec3, faces []model.Face) {
	if len(vertices) == 0 || len(faces) == 0 {
		r.Remove(mesh)
		return
	}

	pos, idx := model.Flatten(vertices, faces)
	m, ok := r.meshes[mesh]
	if ok && !needsRebuild(m, len(vertices), len(faces)) {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(pos)*4, unsafe.Pointer(&pos[0]))
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(idx)*4, unsafe.Pointer(&idx[0]))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		return
	}

	if ok {
		r.log.Debug("recreating mesh buffers",
			zap.String("mesh", mesh),
			zap.Int("faces", m.faceCount),
			zap.Int("newFaces", len(faces)))
		r.release(m)
	} else {
		m = &gpuMesh{color: colorFor(len(r.names))}
		r.meshes[mesh] = m
		r.names = insertSorted(r.names, mesh)
	}
	upload(m, pos, idx)
	m.vertexCount = len(vertices)
	m.faceCount = len(faces)
}

// Remove deletes the buffers of mesh, if any.
func (r *Renderer) Remove(mesh string) {
	m, ok := r.meshes[mesh]
	if !ok {
		return
	}
	r.release(m)
	delete(r.meshes, mesh)
	for i, n := range r.names {
		if n == mesh {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

func (r *Renderer) release(m *gpuMesh) {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}

func upload(m *gpuMesh, pos []float32, idx []uint32) {
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(pos)*4, unsafe.Pointer(&pos[0]), gl.DYNAMIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, unsafe.Pointer(&idx[0]), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every mesh as seen through view.
func (r *Renderer) Draw(view mgl32.Mat4) {
	if len(r.names) == 0 {
		return
	}
	mvp := r.Projection().Mul4(view)

	r.program.Use()
	r.program.SetMat4("uMVP", mvp)
	r.program.SetMat4("uView", view)

	for _, name := range r.names {
		m := r.meshes[name]
		r.program.SetVec3("uColor", m.color)
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(m.faceCount*3), gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Stats returns the number of meshes and triangles currently on the GPU.
func (r *Renderer) Stats() (meshes, triangles int) {
	for _, m := range r.meshes {
		triangles += m.faceCount
	}
	return len(r.meshes), triangles
}

// needsRebuild reports whether the buffers of m cannot hold the new geometry.
func needsRebuild(m *gpuMesh, vertexCount, faceCount int) bool {
	return m.vao == 0 || m.vertexCount != vertexCount || m.faceCount != faceCount
}

var palette = [][3]float32{
	{0.90, 0.55, 0.25},
	{0.35, 0.65, 0.90},
	{0.55, 0.85, 0.40},
	{0.85, 0.40, 0.60},
	{0.85, 0.80, 0.35},
	{0.60, 0.50, 0.90},
}

// colorFor picks a palette color by registration order.
func colorFor(i int) [3]float32 {
	return palette[i%len(palette)]
}

func insertSorted(names []string, name string) []string {
	i := sort.SearchStrings(names, name)
	names = append(names, "")
	copy(names[i+1:], names[i:])
	names[i] = name
	return names
}
