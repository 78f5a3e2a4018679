package content

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/andyrewlee/scrollster/internal/logging"
)

// LoadOptions control how raw bytes become a Document.
type LoadOptions struct {
	Highlight bool
	Style     string
	TabWidth  int
}

// LoadFile reads path into a Document titled with the file name.
func LoadFile(path string, opts LoadOptions) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(filepath.Base(path), path, data, opts), nil
}

// Read reads r to the end into a Document. Input is never highlighted since
// there is no file name to detect a language from.
func Read(r io.Reader, title string, opts LoadOptions) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", title, err)
	}
	opts.Highlight = false
	return FromBytes(title, "", data, opts), nil
}

// FromBytes builds a Document from data. filename is used for language
// detection only.
func FromBytes(title, filename string, data []byte, opts LoadOptions) Document {
	if enry.IsBinary(data) {
		return NewDocument(title, fmt.Sprintf("(binary content, %d bytes)", len(data)), opts.TabWidth)
	}

	text := string(data)
	if opts.Highlight && filename != "" {
		expanded := expandAllTabs(text, opts.TabWidth)
		hl, err := Highlight(filename, expanded, opts.Style)
		if err != nil {
			logging.Warn("highlight %s: %v", filename, err)
		} else {
			text = hl
		}
	}
	return NewDocument(title, text, opts.TabWidth)
}

func expandAllTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ExpandTabs(line, tabWidth)
	}
	return strings.Join(lines, "\n")
}
