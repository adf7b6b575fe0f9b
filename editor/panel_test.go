package editor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	verifyErr  error
	installErr error
	verified   []string
	installed  []string
}

func (f *fakeHost) VerifyShaderProgram(vertexSrc, fragmentSrc string) error {
	f.verified = append(f.verified, fragmentSrc)
	return f.verifyErr
}

func (f *fakeHost) InstallQuad(fragmentSrc string) error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = append(f.installed, fragmentSrc)
	return nil
}

func (f *fakeHost) Time() float64            { return 1.5 }
func (f *fakeHost) ViewportSize() (int, int) { return 640, 480 }

func newTestPanel(host RenderHost, source string) *Panel {
	p := NewPanel(host, source, "")
	p.SetOutput(io.Discard)
	return p
}

func TestCompilePromotesDraftAndInstalls(t *testing.T) {
	host := &fakeHost{}
	p := newTestPanel(host, "void main() {}")

	p.SetDraft("new source")
	require.NoError(t, p.Compile())

	assert.Equal(t, "new source", p.Committed())
	assert.Equal(t, []string{"new source"}, host.verified)
	assert.Equal(t, []string{"new source"}, host.installed)
	assert.Empty(t, p.Diagnostic())
}

func TestCompileFailureKeepsPriorDrawable(t *testing.T) {
	host := &fakeHost{}
	p := newTestPanel(host, "void main() {}")
	require.NoError(t, p.Compile())
	require.Len(t, host.installed, 1)

	host.verifyErr = errors.New("0:12: 'foo' : undeclared identifier")
	p.SetDraft("broken")
	err := p.Compile()
	require.Error(t, err)

	// The committed text changes even when validation fails; only the
	// drawable swap is gated on success.
	assert.Equal(t, "broken", p.Committed())
	assert.Len(t, host.installed, 1)
	assert.Equal(t, "0:12: 'foo' : undeclared identifier", p.Diagnostic())
}

func TestCompileClearsDiagnosticOnSuccess(t *testing.T) {
	host := &fakeHost{verifyErr: errors.New("syntax error")}
	p := newTestPanel(host, "void main() {}")
	require.Error(t, p.Compile())
	require.NotEmpty(t, p.Diagnostic())

	host.verifyErr = nil
	p.SetDraft("void main() { fragColor = vec4(1.0); }")
	require.NoError(t, p.Compile())
	assert.Empty(t, p.Diagnostic())
	assert.Len(t, host.installed, 1)
}

func TestCompileInstallFailureRecordsDiagnostic(t *testing.T) {
	host := &fakeHost{installErr: errors.New("failed to link program: version mismatch")}
	p := newTestPanel(host, "void main() {}")

	err := p.Compile()
	require.Error(t, err)
	assert.Empty(t, host.installed)
	assert.Equal(t, "failed to link program: version mismatch", p.Diagnostic())
}

func TestDraftEditsLeaveCommittedUntouched(t *testing.T) {
	host := &fakeHost{}
	p := newTestPanel(host, "initial")

	p.SetDraft("edited once")
	p.SetDraft("edited twice")
	assert.Equal(t, "edited twice", p.Draft())
	assert.Equal(t, "initial", p.Committed())
	assert.Empty(t, host.verified)
}

func TestExportRoundTrip(t *testing.T) {
	host := &fakeHost{}
	dir := t.TempDir()
	source := "precision highp float;\nvoid main() {}\n"
	p := NewPanel(host, source, dir)
	p.SetOutput(io.Discard)
	p.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 15, 0, time.UTC)
	}

	path, err := p.Export()
	require.NoError(t, err)
	assert.Equal(t, "fragment-2024-05-01T12:30:15Z.glsl", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, source, string(data))
}

func TestExportFilenamePattern(t *testing.T) {
	host := &fakeHost{}
	p := NewPanel(host, "void main() {}", t.TempDir())
	p.SetOutput(io.Discard)

	path, err := p.Export()
	require.NoError(t, err)
	assert.Regexp(t,
		regexp.MustCompile(`^fragment-\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\.glsl$`),
		filepath.Base(path))
}

func TestExportWritesCommittedNotDraft(t *testing.T) {
	host := &fakeHost{}
	p := NewPanel(host, "committed body", t.TempDir())
	p.SetOutput(io.Discard)
	p.SetDraft("unsaved draft")

	path, err := p.Export()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "committed body", string(data))
}

func TestToggleEditors(t *testing.T) {
	host := &fakeHost{}
	p := newTestPanel(host, "void main() {}")

	assert.True(t, p.Visible())
	p.ToggleEditors()
	assert.False(t, p.Visible())
	p.ToggleEditors()
	assert.True(t, p.Visible())
	assert.Equal(t, "void main() {}", p.Committed())
}
