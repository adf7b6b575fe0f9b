package inputs

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Feedback manages two FBO/texture pairs for double-buffering, letting the
// quad's fragment program read the output of the previous frame while writing
// the current one.
type Feedback struct {
	fbo        [2]uint32
	textureID  [2]uint32
	readIndex  int // texture holding the previous frame's result
	writeIndex int // FBO receiving the current frame
	width      int
	height     int
}

// NewFeedback creates the framebuffers and textures for both halves of the
// double buffer.
func NewFeedback(width, height int) (*Feedback, error) {
	f := &Feedback{
		readIndex:  0,
		writeIndex: 1,
		width:      width,
		height:     height,
	}

	for i := 0; i < 2; i++ {
		var fbo, texture uint32
		gl.GenTextures(1, &texture)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		// Floating-point format so accumulation effects keep high dynamic range.
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)

		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

		gl.GenFramebuffers(1, &fbo)
		gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

		if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
			return nil, fmt.Errorf("feedback framebuffer %d is not complete", i)
		}

		f.fbo[i] = fbo
		f.textureID[i] = texture
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f, nil
}

// BindForWriting binds the current write-target FBO.
func (f *Feedback) BindForWriting() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo[f.writeIndex])
}

// UnbindForWriting rebinds the default framebuffer.
func (f *Feedback) UnbindForWriting() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Swap toggles the read/write halves. Called after the pass has rendered.
func (f *Feedback) Swap() {
	f.readIndex, f.writeIndex = f.writeIndex, f.readIndex
}

// ReadTextureID returns the texture holding the previous frame's result.
func (f *Feedback) ReadTextureID() uint32 {
	return f.textureID[f.readIndex]
}

// Resize reallocates both textures at the new surface size.
func (f *Feedback) Resize(width, height int) {
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height
	for i := 0; i < 2; i++ {
		gl.BindTexture(gl.TEXTURE_2D, f.textureID[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases both framebuffers and textures.
func (f *Feedback) Destroy() {
	gl.DeleteFramebuffers(2, &f.fbo[0])
	gl.DeleteTextures(2, &f.textureID[0])
}
