package renderer

import (
	"log"

	"github.com/achlubek/shader-playground/inputs"
)

// Scene is a named container holding at most one quad drawable in an explicit
// slot, the feedback buffer when that capability is enabled, and an optional
// per-frame draw hook.
type Scene struct {
	Name     string
	quad     *Quad
	feedback *inputs.Feedback
	drawHook func(t float64)
}

func newScene(name string) *Scene {
	return &Scene{Name: name}
}

// Quad returns the drawable occupying the scene slot, nil when empty.
func (s *Scene) Quad() *Quad {
	return s.quad
}

// SetQuad replaces the slot occupant. The previous drawable's geometry and
// material are destroyed before the new one is attached; the slot never holds
// more than one quad.
func (s *Scene) SetQuad(q *Quad) {
	if s.quad != nil {
		s.quad.Destroy()
	}
	s.quad = q
}

// SetDrawHook registers the scene's per-frame callback; a new hook replaces
// the prior one.
func (s *Scene) SetDrawHook(fn func(t float64)) {
	s.drawHook = fn
}

// Destroy releases every GPU resource owned by the scene. This is crucial for
// preventing GPU memory leaks when switching scenes.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	log.Printf("Destroying scene: %s", s.Name)
	if s.quad != nil {
		s.quad.Destroy()
		s.quad = nil
	}
	if s.feedback != nil {
		s.feedback.Destroy()
		s.feedback = nil
	}
	s.drawHook = nil
}
