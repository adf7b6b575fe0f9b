package editor

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/achlubek/shader-playground/shader"
)

// RenderHost is the slice of the render host the panel drives. The concrete
// implementation is renderer.Host; tests substitute a fake.
type RenderHost interface {
	// VerifyShaderProgram validates a vertex/fragment pair against the live
	// driver without retaining the linked program.
	VerifyShaderProgram(vertexSrc, fragmentSrc string) error
	// InstallQuad replaces the active scene's drawable with one built from
	// the committed fragment source.
	InstallQuad(fragmentSrc string) error
	// Time returns the elapsed host time in seconds.
	Time() float64
	// ViewportSize returns the drawing surface size in pixels.
	ViewportSize() (int, int)
}

// Panel holds the committed shader source, the pending draft and the latest
// validation outcome, and drives the render host on user actions.
type Panel struct {
	host       RenderHost
	draft      string
	committed  string
	diagnostic string
	visible    bool
	exportDir  string
	out        io.Writer
	now        func() time.Time
}

// NewPanel creates a panel over the host with the given initial source.
// Exports land in exportDir.
func NewPanel(host RenderHost, initialSource, exportDir string) *Panel {
	return &Panel{
		host:      host,
		draft:     initialSource,
		committed: initialSource,
		visible:   true,
		exportDir: exportDir,
		out:       os.Stdout,
		now:       time.Now,
	}
}

// SetOutput redirects the panel display away from stdout.
func (p *Panel) SetOutput(w io.Writer) {
	p.out = w
}

// SetDraft replaces the pending draft text. The committed source is untouched
// until the next compile action.
func (p *Panel) SetDraft(src string) {
	p.draft = src
}

func (p *Panel) Draft() string      { return p.draft }
func (p *Panel) Committed() string  { return p.committed }
func (p *Panel) Diagnostic() string { return p.diagnostic }
func (p *Panel) Visible() bool      { return p.visible }

// Compile promotes the draft to committed and revalidates it. On success the
// quad drawable is rebuilt with a fresh material and uniform set; on failure
// the committed text still changes, the previous drawable keeps rendering and
// the raw driver diagnostic is recorded instead.
func (p *Panel) Compile() error {
	p.committed = p.draft
	if err := p.host.VerifyShaderProgram(shader.VertexSource(), p.committed); err != nil {
		p.fail(err)
		return err
	}
	if err := p.host.InstallQuad(p.committed); err != nil {
		p.fail(err)
		return err
	}
	p.diagnostic = ""
	log.Printf("Shader compiled at t=%.2fs", p.host.Time())
	p.render()
	return nil
}

func (p *Panel) fail(err error) {
	p.diagnostic = err.Error()
	log.Printf("Shader validation failed: %v", err)
	p.render()
}

// Export writes the committed fragment source verbatim to a timestamped file
// and returns its path. No panel state changes.
func (p *Panel) Export() (string, error) {
	name := fmt.Sprintf("fragment-%s.glsl", p.now().UTC().Format(time.RFC3339))
	path := filepath.Join(p.exportDir, name)
	if err := os.WriteFile(path, []byte(p.committed), 0o644); err != nil {
		return "", fmt.Errorf("export shader: %w", err)
	}
	log.Printf("Exported committed source to %s", path)
	return path, nil
}

// ToggleEditors flips the panel display; the render loop is unaffected.
func (p *Panel) ToggleEditors() {
	p.visible = !p.visible
	p.render()
}

// render prints the committed source and the latest diagnostic when the panel
// is visible.
func (p *Panel) render() {
	if !p.visible {
		return
	}
	width, height := p.host.ViewportSize()
	fmt.Fprintf(p.out, "── committed source (%dx%d viewport) ──\n", width, height)
	highlightGLSL(p.out, p.committed)
	if p.diagnostic != "" {
		fmt.Fprintf(p.out, "\n%s\n", p.diagnostic)
	}
}
