package inputs

// Uniforms holds the per-frame shader input values. The UI layer writes the
// pointer fields as events arrive; the render loop reads and republishes the
// whole set every frame.
type Uniforms struct {
	Time       float32
	Resolution [2]float32
	Mouse      [2]float32
	Drag       [2]float32
	Zoom       float32
}
