// Package highlight wraps chroma to produce per-line ANSI-styled text for
// the preview pane. It is best-effort by contract: any lexer or formatter
// failure degrades to the plain input lines, never an error.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// DefaultStyle is the chroma style used when the configured one is
// unknown.
const DefaultStyle = "gruvbox"

// Lines returns content split into lines with terminal ANSI styling
// applied per token. The lexer is picked by file name and falls back to
// plain text; the returned slice always has exactly one element per
// input line.
func Lines(fileName, content, styleName string) []string {
	plain := strings.Split(content, "\n")

	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Get(DefaultStyle)
	}
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return plain
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return plain
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plain
	}

	styled := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(styled) == len(plain)+1 && ansi.Strip(styled[len(styled)-1]) == "" {
		// Some lexers append a final newline the input did not have.
		styled = styled[:len(plain)]
	}
	if len(styled) != len(plain) {
		// The formatter reflowed the content somehow; styling is not worth
		// desynchronized line numbers.
		return plain
	}
	return styled
}
