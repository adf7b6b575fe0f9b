package shader

// Uniform names the playground refreshes every frame. Programs declare the
// ones they use; absent uniforms resolve to location -1 and are skipped.
const (
	UniformTime       = "time"
	UniformResolution = "resolution"
	UniformMouse      = "mouse"
	UniformDrag       = "drag"
	UniformZoom       = "zoom"
	UniformBackbuffer = "backbuffer"
)

// Fixed vertex program: a full-viewport quad with a UV varying. User fragment
// programs declare the matching `in vec2 vUv`.
const vertexShaderSource = `#version 410 core
layout (location = 0) in vec2 position;
out vec2 vUv;
void main() {
    vUv = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

// fragmentPreamble carries everything the pipeline requires ahead of the user
// program: precision qualifiers, the fragment output declaration and the
// color-space conversion helpers. Uniforms are declared by the user program
// itself, per the source contract.
const fragmentPreamble = `#version 410 core
precision highp float;
precision highp int;

out vec4 fragColor;

// Linear -> sRGB (BT.709) transfer
vec3 linearToSRGB(vec3 l) {
    bvec3 cutoff = lessThanEqual(l, vec3(0.0031308));
    vec3  low    = l * 12.92;
    vec3  high   = 1.055 * pow(l, vec3(1.0 / 2.4)) - 0.055;
    return mix(high, low, cutoff);
}

// sRGB -> linear (BT.709) transfer
vec3 sRGBToLinear(vec3 s) {
    bvec3 cutoff = lessThanEqual(s, vec3(0.04045));
    vec3  low    = s / 12.92;
    vec3  high   = pow((s + 0.055) / 1.055, vec3(2.4));
    return mix(high, low, cutoff);
}
`

const blitFragmentShaderSource = `#version 410 core
in vec2 vUv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vUv); }
`

const defaultFragmentSource = `uniform float time;
uniform vec2 resolution;
uniform vec2 mouse;
uniform vec2 drag;
uniform float zoom;
in vec2 vUv;

void main() {
    vec2 uv = (vUv - 0.5 - drag) / zoom + 0.5;
    vec2 p = (uv - 0.5) * vec2(resolution.x / resolution.y, 1.0);
    vec3 col = 0.5 + 0.5 * cos(time + uv.xyx * 6.28318 + vec3(0.0, 2.0, 4.0));
    float d = length(p) - 0.25 - 0.05 * sin(time * 2.0);
    col *= smoothstep(0.0, 0.01, abs(d)) * 0.85 + 0.15;
    col *= 1.0 - 0.5 * smoothstep(0.3, 0.0, distance(uv, mouse));
    fragColor = vec4(linearToSRGB(col), 1.0);
}
`

const defaultFeedbackFragmentSource = `uniform float time;
uniform vec2 resolution;
uniform vec2 mouse;
uniform sampler2D backbuffer;
in vec2 vUv;

void main() {
    vec2 aspect = vec2(resolution.x / resolution.y, 1.0);
    vec3 prev = texture(backbuffer, vUv).rgb;
    float d = distance(vUv * aspect, mouse * aspect);
    vec3 ink = (0.5 + 0.5 * cos(time + vec3(0.0, 2.0, 4.0))) * smoothstep(0.04, 0.0, d);
    fragColor = vec4(max(prev * 0.985, ink), 1.0);
}
`

// VertexSource returns the fixed vertex program shared by every material.
func VertexSource() string {
	return vertexShaderSource
}

// WrapFragment prepends the fixed pipeline preamble to a user fragment program.
func WrapFragment(user string) string {
	return fragmentPreamble + user
}

func BlitFragmentSource() string {
	return blitFragmentShaderSource
}

// DefaultFragmentSource returns the program loaded at startup when no shader
// file is given. The feedback variant samples the previous frame.
func DefaultFragmentSource(feedback bool) string {
	if feedback {
		return defaultFeedbackFragmentSource
	}
	return defaultFragmentSource
}
