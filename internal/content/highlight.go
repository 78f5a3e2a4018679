package content

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/andyrewlee/scrollster/internal/perf"
)

const defaultStyleName = "monokai"

// Language returns the detected language of a file, or "" if unknown.
func Language(filename string, src []byte) string {
	return enry.GetLanguage(filepath.Base(filename), src)
}

// lexerFor picks a lexer from the detected language, then the file name,
// then the content itself.
func lexerFor(filename, src string) chroma.Lexer {
	if lang := Language(filename, []byte(src)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Match(filepath.Base(filename)); l != nil {
		return l
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight renders src with 256-color escapes. Each output line is
// formatted on its own so styling never spans a line break. Line structure,
// including a trailing newline, is preserved.
func Highlight(filename, src, styleName string) (string, error) {
	defer perf.Time("content_highlight")()
	if styleName == "" {
		styleName = defaultStyleName
	}
	style := styles.Get(styleName)
	formatter := formatters.Get("terminal256")
	lexer := chroma.Coalesce(lexerFor(filename, src))

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", err
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	// A trailing newline leaves an empty last line behind.
	if n := len(lines); n > 0 && blankTokens(lines[n-1]) && strings.HasSuffix(src, "\n") {
		lines = lines[:n-1]
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		tokens := make([]chroma.Token, 0, len(line))
		for _, tok := range line {
			tok.Value = strings.TrimSuffix(tok.Value, "\n")
			if tok.Value == "" {
				continue
			}
			tokens = append(tokens, tok)
		}
		if err := formatter.Format(&b, style, chroma.Literator(tokens...)); err != nil {
			return "", err
		}
	}
	if strings.HasSuffix(src, "\n") {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func blankTokens(tokens []chroma.Token) bool {
	for _, tok := range tokens {
		if tok.Value != "" {
			return false
		}
	}
	return true
}
