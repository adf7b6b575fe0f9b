package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/achlubek/shader-playground/inputs"
	"github.com/achlubek/shader-playground/shader"
)

// Material pairs a linked shader program with the uniform locations refreshed
// every frame. Locations are -1 for uniforms the program does not declare;
// those are skipped during upload.
type Material struct {
	program       uint32
	timeLoc       int32
	resolutionLoc int32
	mouseLoc      int32
	dragLoc       int32
	zoomLoc       int32
	backbufferLoc int32
}

// NewMaterial builds a material from a user fragment program wrapped with the
// fixed pipeline preamble.
func NewMaterial(fragmentSrc string) (*Material, error) {
	program, err := newProgram(shader.VertexSource(), shader.WrapFragment(fragmentSrc))
	if err != nil {
		return nil, err
	}

	m := &Material{program: program}
	gl.UseProgram(program)
	m.timeLoc = uniformLocation(program, shader.UniformTime)
	m.resolutionLoc = uniformLocation(program, shader.UniformResolution)
	m.mouseLoc = uniformLocation(program, shader.UniformMouse)
	m.dragLoc = uniformLocation(program, shader.UniformDrag)
	m.zoomLoc = uniformLocation(program, shader.UniformZoom)
	m.backbufferLoc = uniformLocation(program, shader.UniformBackbuffer)
	return m, nil
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Apply binds the program and uploads the uniform snapshot.
func (m *Material) Apply(u *inputs.Uniforms) {
	gl.UseProgram(m.program)
	if m.timeLoc != -1 {
		gl.Uniform1f(m.timeLoc, u.Time)
	}
	if m.resolutionLoc != -1 {
		gl.Uniform2f(m.resolutionLoc, u.Resolution[0], u.Resolution[1])
	}
	if m.mouseLoc != -1 {
		gl.Uniform2f(m.mouseLoc, u.Mouse[0], u.Mouse[1])
	}
	if m.dragLoc != -1 {
		gl.Uniform2f(m.dragLoc, u.Drag[0], u.Drag[1])
	}
	if m.zoomLoc != -1 {
		gl.Uniform1f(m.zoomLoc, u.Zoom)
	}
}

// Release deletes the GPU program. Safe on an already-released material and
// before the GL bindings are loaded.
func (m *Material) Release() {
	if m == nil || m.program == 0 {
		return
	}
	if glReady {
		gl.DeleteProgram(m.program)
	}
	m.program = 0
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Quad is the full-viewport drawable: unit-quad geometry paired with the
// material built from the committed fragment source.
type Quad struct {
	vao      uint32
	vbo      uint32
	material *Material
}

// NewQuad builds the geometry and a material for the given fragment source.
func NewQuad(fragmentSrc string) (*Quad, error) {
	material, err := NewMaterial(fragmentSrc)
	if err != nil {
		return nil, err
	}

	q := &Quad{material: material}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return q, nil
}

// Draw renders the quad with the given uniforms. When the material samples a
// backbuffer, backbufferTex is bound on unit 0.
func (q *Quad) Draw(u *inputs.Uniforms, backbufferTex uint32) {
	q.material.Apply(u)
	bound := q.material.backbufferLoc != -1 && backbufferTex != 0
	if bound {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, backbufferTex)
		gl.Uniform1i(q.material.backbufferLoc, 0)
	}
	q.drawGeometry()
	if bound {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

func (q *Quad) drawGeometry() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Material exposes the current material for replacement bookkeeping.
func (q *Quad) Material() *Material {
	return q.material
}

// Destroy releases the geometry and the material.
func (q *Quad) Destroy() {
	if q == nil {
		return
	}
	q.material.Release()
	if glReady {
		if q.vao != 0 {
			gl.DeleteVertexArrays(1, &q.vao)
		}
		if q.vbo != 0 {
			gl.DeleteBuffers(1, &q.vbo)
		}
	}
	q.vao, q.vbo = 0, 0
}
