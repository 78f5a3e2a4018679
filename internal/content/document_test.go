package content

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocumentSplitsAndMeasures(t *testing.T) {
	doc := NewDocument("notes", "one\r\ntwo\tx\nlonger line\n", 4)

	want := []string{"one", "two x", "longer line"}
	if diff := cmp.Diff(want, doc.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if doc.Width != len("longer line") {
		t.Fatalf("width = %d, want %d", doc.Width, len("longer line"))
	}
	if doc.Height() != 3 {
		t.Fatalf("height = %d, want 3", doc.Height())
	}
	if doc.Title != "notes" {
		t.Fatalf("title = %q", doc.Title)
	}
}

func TestNewDocumentEmpty(t *testing.T) {
	doc := NewDocument("empty", "", 8)
	if doc.Height() != 0 || doc.Width != 0 {
		t.Fatalf("empty document = %+v", doc)
	}
}

func TestNewDocumentCarriageReturnOverwrites(t *testing.T) {
	doc := NewDocument("progress", "10%\r50%\r100%\ndone", 8)
	if doc.Lines[0] != "100%" {
		t.Fatalf("line 0 = %q, want 100%%", doc.Lines[0])
	}
}

func TestNewDocumentIgnoresStylingInWidth(t *testing.T) {
	doc := NewDocument("styled", "\x1b[31mred\x1b[0m", 8)
	if doc.Width != 3 {
		t.Fatalf("width = %d, want 3", doc.Width)
	}
}

func TestNewDocumentHyperlinkWidth(t *testing.T) {
	doc := NewDocument("link", "\x1b]8;;http://x.io\x07ab\x1b]8;;\x07\tc", 4)
	if doc.Width != 5 {
		t.Fatalf("width = %d, want 5", doc.Width)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tab  int
		want string
	}{
		{"no tabs", "plain", 4, "plain"},
		{"leading", "\tx", 4, "    x"},
		{"mid stop", "ab\tc", 4, "ab  c"},
		{"default width", "\tx", 0, "        x"},
		{"escape takes no columns", "\x1b[1mab\x1b[0m\tc", 4, "\x1b[1mab\x1b[0m  c"},
		{"wide rune", "世\tx", 4, "世  x"},
		{"hyperlink takes no columns", "\x1b]8;;http://x.io\x07ab\x1b]8;;\x07\tc", 4, "\x1b]8;;http://x.io\x07ab\x1b]8;;\x07  c"},
		{"osc with st terminator", "\x1b]0;title\x1b\\a\tb", 4, "\x1b]0;title\x1b\\a   b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTabs(tt.in, tt.tab); got != tt.want {
				t.Fatalf("ExpandTabs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWindowCutsRowsAndColumns(t *testing.T) {
	doc := NewDocument("grid", "abcdef\nghijkl\nmnopqr", 8)

	got := doc.Window(1, 2, 3, 5)
	want := []string{"ijk", "opq"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Window(0, 0, 0, 2); got != nil {
		t.Fatalf("zero width window = %v, want nil", got)
	}
}

func TestPlainWindowStripsStyling(t *testing.T) {
	doc := NewDocument("styled", "\x1b[32mgreen  \x1b[0m\nplain", 8)
	got := doc.PlainWindow(0, 0, 10, 2)
	if got != "green\nplain" {
		t.Fatalf("plain window = %q", got)
	}
	if strings.Contains(got, "\x1b") {
		t.Fatalf("plain window kept escapes: %q", got)
	}
}
