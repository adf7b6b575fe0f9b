package renderer

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/achlubek/shader-playground/graphics"
	"github.com/achlubek/shader-playground/inputs"
	"github.com/achlubek/shader-playground/shader"
)

// gl.Init must run exactly once per process.
var glInitOnce sync.Once

// glReady reports whether the GL bindings are loaded. Resource deletion is
// skipped while false; bookkeeping still runs so ownership stays correct.
var glReady bool

// camera holds the viewport state rebuilt whenever the drawing surface resizes.
type camera struct {
	width  int
	height int
}

func (c *camera) rebuild(width, height int) {
	c.width, c.height = width, height
}

// Host owns the drawing surface, the active scene and the frame loop, and
// mediates scene lifecycle and shader validation. It is constructed explicitly
// and handed to the UI layer; there is no module-level render state.
type Host struct {
	context        graphics.Context
	scene          *Scene
	camera         camera
	feedback       bool // feedback-buffer capability flag
	blitProgram    uint32
	blitTextureLoc int32
	enabled        bool
	epoch          float64
}

// New creates a Host over an initialized graphics context. With feedback set,
// installed materials can sample the previous frame through the backbuffer
// uniform.
func New(context graphics.Context, feedback bool) *Host {
	h := &Host{
		context:  context,
		feedback: feedback,
		epoch:    context.Time(),
	}
	width, height := context.GetFramebufferSize()
	h.camera.rebuild(width, height)
	h.scene = newScene("main")
	return h
}

// InitGL makes the context current and loads the OpenGL bindings. Must be
// called on the render thread before any other GL work.
func (h *Host) InitGL() error {
	h.context.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	glReady = true
	return nil
}

// Time returns seconds elapsed since the host was constructed.
func (h *Host) Time() float64 {
	return h.context.Time() - h.epoch
}

// ViewportSize returns the current drawing surface size in pixels.
func (h *Host) ViewportSize() (int, int) {
	return h.context.GetFramebufferSize()
}

// ActiveScene returns the scene currently being rendered.
func (h *Host) ActiveScene() *Scene {
	return h.scene
}

// SetDrawHook registers the active scene's per-frame callback, invoked once
// per frame after drawing with the frame timestamp. A new hook replaces the
// prior one.
func (h *Host) SetDrawHook(fn func(t float64)) {
	h.scene.SetDrawHook(fn)
}

// SwitchScene makes the named scene active. A no-op when it already is;
// otherwise every GPU resource of the current scene is destroyed, a fresh
// empty scene takes its place and the camera is reset. Synchronous, no
// failure path.
func (h *Host) SwitchScene(name string) {
	if h.scene != nil && h.scene.Name == name {
		return
	}
	h.scene.Destroy()
	h.scene = newScene(name)
	width, height := h.context.GetFramebufferSize()
	h.camera.rebuild(width, height)
}

// VerifyShaderProgram wraps the fragment source with the fixed pipeline
// preamble, compiles both stages against the live driver and links them.
// Every intermediate object is deleted regardless of outcome; the first
// failing step aborts with the raw driver log. This is a pure validation
// pass — drawing uses a separately constructed material with equivalent
// source.
func (h *Host) VerifyShaderProgram(vertexSrc, fragmentSrc string) error {
	program, err := newProgram(vertexSrc, shader.WrapFragment(fragmentSrc))
	if err != nil {
		return err
	}
	gl.DeleteProgram(program)
	return nil
}

// InstallQuad builds a drawable from the committed fragment source and swaps
// it into the active scene slot, disposing the previous quad's material
// before attaching the new one. The fresh material is warmed with one uniform
// upload seeded from the current time and viewport so the driver finishes
// pipeline construction before the next frame.
func (h *Host) InstallQuad(fragmentSrc string) error {
	quad, err := NewQuad(fragmentSrc)
	if err != nil {
		return err
	}
	if h.feedback {
		if err := h.ensureFeedback(); err != nil {
			quad.Destroy()
			return err
		}
	}
	h.scene.SetQuad(quad)
	quad.Material().Apply(h.seedUniforms())
	return nil
}

// seedUniforms builds the initial uniform set for a freshly installed
// material: current elapsed time and viewport size, zero pointer state.
func (h *Host) seedUniforms() *inputs.Uniforms {
	width, height := h.context.GetFramebufferSize()
	return &inputs.Uniforms{
		Time:       float32(h.Time()),
		Resolution: [2]float32{float32(width), float32(height)},
		Zoom:       1.0,
	}
}

// ensureFeedback creates the scene's double-buffered feedback pair and the
// blit program on first use.
func (h *Host) ensureFeedback() error {
	if h.scene.feedback == nil {
		width, height := h.context.GetFramebufferSize()
		fb, err := inputs.NewFeedback(width, height)
		if err != nil {
			return fmt.Errorf("failed to create feedback buffer: %w", err)
		}
		h.scene.feedback = fb
	}
	if h.blitProgram == 0 {
		program, err := newProgram(shader.VertexSource(), shader.BlitFragmentSource())
		if err != nil {
			return fmt.Errorf("failed to create blit program: %w", err)
		}
		h.blitProgram = program
		gl.UseProgram(program)
		h.blitTextureLoc = gl.GetUniformLocation(program, gl.Str("u_texture\x00"))
	}
	return nil
}

// Enable starts frame production; Disable pauses it without tearing down any
// GPU resources. The loop keeps polling events while disabled so a key
// binding can re-enable it.
func (h *Host) Enable()  { h.enabled = true }
func (h *Host) Disable() { h.enabled = false }

// Enabled reports whether the frame loop is producing frames.
func (h *Host) Enabled() bool { return h.enabled }

// Run drives the frame loop until the window closes.
func (h *Host) Run() {
	h.Enable()
	for !h.context.ShouldClose() {
		if h.enabled {
			h.RenderFrame()
		}
		h.context.EndFrame()
	}
}

// syncViewport resizes the drawing surface and rebuilds the camera when the
// framebuffer changed since the last frame — at most once per dimension
// change.
func (h *Host) syncViewport() (width, height int, resized bool) {
	width, height = h.context.GetFramebufferSize()
	if width != h.camera.width || height != h.camera.height {
		if h.scene.feedback != nil {
			h.scene.feedback.Resize(width, height)
		}
		h.camera.rebuild(width, height)
		resized = true
	}
	return width, height, resized
}

// RenderFrame draws the active scene once: resize check, uniform snapshot,
// quad pass (through the feedback pair when enabled), then the scene draw
// hook with the frame timestamp.
func (h *Host) RenderFrame() {
	width, height, _ := h.syncViewport()

	t := h.Time()
	pointer := h.context.GetPointerInput()
	uniforms := &inputs.Uniforms{
		Time:       float32(t),
		Resolution: [2]float32{float32(width), float32(height)},
		Mouse:      pointer.Mouse,
		Drag:       pointer.Drag,
		Zoom:       pointer.Zoom,
	}

	if quad := h.scene.Quad(); quad != nil {
		if fb := h.scene.feedback; fb != nil {
			fb.BindForWriting()
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			quad.Draw(uniforms, fb.ReadTextureID())
			fb.UnbindForWriting()
			fb.Swap()

			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			h.drawBlit(fb.ReadTextureID())
		} else {
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			quad.Draw(uniforms, 0)
		}
	} else {
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	if h.scene.drawHook != nil {
		h.scene.drawHook(t)
	}
}

// drawBlit copies a texture to the currently bound framebuffer using the
// active quad's geometry.
func (h *Host) drawBlit(texture uint32) {
	gl.UseProgram(h.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(h.blitTextureLoc, 0)
	h.scene.quad.drawGeometry()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Shutdown releases the scene's GPU resources, the blit program and the
// window.
func (h *Host) Shutdown() {
	h.scene.Destroy()
	if h.blitProgram != 0 {
		gl.DeleteProgram(h.blitProgram)
		h.blitProgram = 0
	}
	h.context.Shutdown()
}
