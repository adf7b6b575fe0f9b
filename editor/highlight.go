package editor

import (
	"io"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightGLSL writes src with terminal syntax highlighting, falling back to
// plain text when tokenizing or formatting fails.
func highlightGLSL(w io.Writer, src string) {
	lexer := lexers.Get("glsl")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		io.WriteString(w, src)
		return
	}
	if err := formatter.Format(w, style, iterator); err != nil {
		io.WriteString(w, src)
	}
}
