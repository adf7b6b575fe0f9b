package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoderInputArgs(t *testing.T) {
	args := encoderInputArgs(1280, 720, 60)
	assert.Equal(t, "rawvideo", args["f"])
	assert.Equal(t, "rgba", args["pix_fmt"])
	assert.Equal(t, "1280x720", args["s"])
	assert.Equal(t, 60, args["framerate"])
}

func TestEncoderOutputArgsCodecSelection(t *testing.T) {
	h264 := encoderOutputArgs("h264")
	assert.Equal(t, "libx264", h264["c:v"])
	assert.Equal(t, "vflip", h264["vf"])
	assert.Equal(t, "yuv420p", h264["pix_fmt"])

	assert.Equal(t, "libx265", encoderOutputArgs("hevc")["c:v"])
	// Unknown codecs fall back to h264.
	assert.Equal(t, "libx264", encoderOutputArgs("")["c:v"])
}
