package graphics

// Context defines the interface for a windowed OpenGL context. The render host
// receives one at construction instead of reaching for module-level state.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// GetPointerInput returns the pointer state sampled for the current frame.
	GetPointerInput() PointerInput
}

// PointerInput is a per-frame snapshot of pointer state: normalized position,
// the drag vector accumulated while the primary button is held, and the wheel
// zoom factor. Values are idempotent snapshots; the loop republishes them into
// the active uniform set every frame.
type PointerInput struct {
	Mouse [2]float32
	Drag  [2]float32
	Zoom  float32
}
