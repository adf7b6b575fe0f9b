package glfwcontext

import "github.com/achlubek/shader-playground/graphics"

// zoomSensitivity is the zoom change per wheel unit; wheel-up zooms in.
const zoomSensitivity = 0.001

// pointerState implements the pointer-to-uniform rules without touching GLFW
// so the normalization and accumulation math stays testable headless.
//
// The position is normalized against the window size with the y axis flipped,
// placing (0,0) at the bottom-left like the quad's UV space. The drag vector
// accumulates normalized deltas only while the primary button is held.
type pointerState struct {
	width, height  int
	mouseX, mouseY float32
	dragX, dragY   float32
	zoom           float32
	lastX, lastY   float64
	primaryDown    bool
	hasLast        bool
}

func newPointerState(width, height int) *pointerState {
	return &pointerState{width: width, height: height, zoom: 1.0}
}

func (p *pointerState) resize(width, height int) {
	p.width, p.height = width, height
}

func (p *pointerState) cursorMoved(x, y float64) {
	if p.width > 0 && p.height > 0 {
		p.mouseX = float32(x / float64(p.width))
		p.mouseY = 1.0 - float32(y/float64(p.height))
		if p.primaryDown && p.hasLast {
			p.dragX += float32((x - p.lastX) / float64(p.width))
			p.dragY += float32((y - p.lastY) / float64(p.height))
		}
	}
	p.lastX, p.lastY = x, y
	p.hasLast = true
}

func (p *pointerState) primaryButton(down bool) {
	p.primaryDown = down
}

func (p *pointerState) scrolled(deltaY float64) {
	p.zoom -= float32(deltaY) * zoomSensitivity
}

func (p *pointerState) snapshot() graphics.PointerInput {
	return graphics.PointerInput{
		Mouse: [2]float32{p.mouseX, p.mouseY},
		Drag:  [2]float32{p.dragX, p.dragY},
		Zoom:  p.zoom,
	}
}
