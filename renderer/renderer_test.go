package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achlubek/shader-playground/graphics"
)

type fakeContext struct {
	width, height int
	now           float64
	pointer       graphics.PointerInput
}

func (f *fakeContext) MakeCurrent()                           {}
func (f *fakeContext) Shutdown()                              {}
func (f *fakeContext) ShouldClose() bool                      { return true }
func (f *fakeContext) EndFrame()                              {}
func (f *fakeContext) GetFramebufferSize() (int, int)         { return f.width, f.height }
func (f *fakeContext) Time() float64                          { return f.now }
func (f *fakeContext) GetPointerInput() graphics.PointerInput { return f.pointer }

func TestElapsedTimeStartsAtZero(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480, now: 100}
	h := New(ctx, false)

	assert.Equal(t, 0.0, h.Time())
	ctx.now = 102.5
	assert.InDelta(t, 2.5, h.Time(), 1e-9)
}

func TestSwitchSceneSameNameIsNoOp(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480}
	h := New(ctx, false)

	scene := h.ActiveScene()
	h.SwitchScene("main")
	assert.Same(t, scene, h.ActiveScene())
}

func TestSwitchSceneCreatesFreshEmptyScene(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480}
	h := New(ctx, false)
	old := h.ActiveScene()
	old.SetDrawHook(func(float64) {})
	occupant := &Quad{material: &Material{program: 5}}
	old.SetQuad(occupant)

	h.SwitchScene("second")

	fresh := h.ActiveScene()
	assert.NotSame(t, old, fresh)
	assert.Equal(t, "second", fresh.Name)
	assert.Nil(t, fresh.Quad())
	assert.Nil(t, fresh.drawHook)
	// The outgoing scene's drawable was destroyed, not carried over.
	assert.Zero(t, occupant.material.program)
	assert.Nil(t, old.Quad())
}

func TestSetQuadDisposesPriorOccupant(t *testing.T) {
	s := newScene("main")
	first := &Quad{material: &Material{program: 7}}
	s.SetQuad(first)
	require.Same(t, first, s.Quad())

	second := &Quad{material: &Material{program: 8}}
	s.SetQuad(second)

	// The slot holds exactly one quad; the replaced occupant's material was
	// released before the new one was attached.
	assert.Same(t, second, s.Quad())
	assert.Zero(t, first.material.program)
	assert.EqualValues(t, 8, second.material.program)
}

func TestMaterialReleaseIsIdempotent(t *testing.T) {
	m := &Material{program: 3}
	m.Release()
	assert.Zero(t, m.program)
	m.Release()

	var nilMaterial *Material
	nilMaterial.Release()
}

func TestSetDrawHookReplacesPrior(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480}
	h := New(ctx, false)

	var calls []int
	h.SetDrawHook(func(float64) { calls = append(calls, 1) })
	h.SetDrawHook(func(float64) { calls = append(calls, 2) })

	h.ActiveScene().drawHook(0)
	assert.Equal(t, []int{2}, calls)
}

func TestSyncViewportResizesOncePerChange(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480}
	h := New(ctx, false)

	_, _, resized := h.syncViewport()
	assert.False(t, resized)

	ctx.width, ctx.height = 800, 600
	width, height, resized := h.syncViewport()
	assert.True(t, resized)
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)

	_, _, resized = h.syncViewport()
	assert.False(t, resized)
}

func TestEnableDisable(t *testing.T) {
	ctx := &fakeContext{width: 640, height: 480}
	h := New(ctx, false)

	assert.False(t, h.Enabled())
	h.Enable()
	assert.True(t, h.Enabled())
	h.Disable()
	assert.False(t, h.Enabled())
}
