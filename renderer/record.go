package renderer

import (
	"fmt"
	"io"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/achlubek/shader-playground/inputs"
	"github.com/achlubek/shader-playground/options"
)

// encoderInputArgs describes the raw RGBA frame stream piped into ffmpeg.
func encoderInputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
}

// encoderOutputArgs picks the encode settings. vflip compensates for OpenGL's
// bottom-left pixel origin.
func encoderOutputArgs(codec string) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}
	if codec == "hevc" {
		args["c:v"] = "libx265"
	} else {
		args["c:v"] = "libx264"
	}
	return args
}

// RunOffscreen renders a fixed duration at a fixed frame rate with
// deterministic timestamps into an offscreen framebuffer and pipes the raw
// RGBA frames to ffmpeg. The producer renders on the current thread while a
// consumer goroutine runs the encoder.
func (h *Host) RunOffscreen(opts *options.PlaygroundOptions) error {
	quad := h.scene.Quad()
	if quad == nil {
		return fmt.Errorf("no drawable installed in scene %q", h.scene.Name)
	}

	width, height := *opts.Width, *opts.Height

	var fbo, texture uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("record framebuffer is not complete")
	}
	defer func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteTextures(1, &texture)
	}()

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", encoderInputArgs(width, height, *opts.FPS)).
		Output(*opts.OutputFile, encoderOutputArgs(*opts.Codec)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	timeStep := 1.0 / float64(*opts.FPS)
	pixels := make([]byte, width*height*4)

	// The feedback pair was sized to the window; recording may use another size.
	if fb := h.scene.feedback; fb != nil {
		fb.Resize(width, height)
	}

	log.Printf("Recording %d frames at %d fps to %s", totalFrames, *opts.FPS, *opts.OutputFile)

	for i := 0; i < totalFrames; i++ {
		uniforms := &inputs.Uniforms{
			Time:       float32(float64(i) * timeStep),
			Resolution: [2]float32{float32(width), float32(height)},
			Zoom:       1.0,
		}

		if fb := h.scene.feedback; fb != nil {
			fb.BindForWriting()
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			quad.Draw(uniforms, fb.ReadTextureID())
			fb.Swap()

			gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			h.drawBlit(fb.ReadTextureID())
		} else {
			gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
			gl.Viewport(0, 0, int32(width), int32(height))
			gl.Clear(gl.COLOR_BUFFER_BIT)
			quad.Draw(uniforms, 0)
		}

		gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

		if _, err := pipeWriter.Write(pixels); err != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", i, err)
			break
		}
	}

	pipeWriter.Close()
	return <-errc
}
