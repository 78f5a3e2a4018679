package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/andyrewlee/scrollster/internal/config"
	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/messages"
	"github.com/andyrewlee/scrollster/internal/scroll"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Paths:    config.PathsAt(t.TempDir()),
		Viewport: config.DefaultViewportSettings(),
		UI:       config.UISettings{ShowStatus: true, Theme: "dark"},
	}
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	a := New(testConfig(t), opts)
	t.Cleanup(a.Shutdown)
	return a
}

// runCmd executes cmd and returns every message it produced, flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// sizeAndInit delivers a window size and the deferred init it schedules.
func sizeAndInit(t *testing.T, a *App, width, height int) {
	t.Helper()
	_, cmd := a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	if cmd == nil {
		t.Fatal("expected deferred init command")
	}
	a.Update(cmd())
}

func TestScrollOptionsFromConfig(t *testing.T) {
	v := config.DefaultViewportSettings()
	v.DragAnchor = "center"
	v.BarOptions = map[string]string{"background": "#424242"}

	got := scrollOptions(v)
	want := scroll.Options{
		WheelStep:     3,
		PollInterval:  v.PollInterval,
		Anchor:        scroll.AnchorCenter,
		MinParentSize: 3,
		FallbackSize:  12,
		BarStyle:      map[string]string{"background": "#424242"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestInitReadsStdin(t *testing.T) {
	a := newTestApp(t, Options{Stdin: strings.NewReader("alpha\nbeta\n"), Highlight: true})
	msgs := runCmd(a.Init())
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	loaded, ok := msgs[0].(messages.ContentLoaded)
	if !ok {
		t.Fatalf("expected ContentLoaded, got %T", msgs[0])
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, loaded.Doc.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if loaded.Doc.Title != "stdin" {
		t.Fatalf("title = %q", loaded.Doc.Title)
	}
}

func TestInitLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := newTestApp(t, Options{Path: path})
	msgs := runCmd(a.Init())
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(messages.ContentLoaded); !ok {
		t.Fatalf("expected ContentLoaded, got %T", msgs[0])
	}
}

func TestInitMissingFileReportsError(t *testing.T) {
	a := newTestApp(t, Options{Path: filepath.Join(t.TempDir(), "missing.txt")})
	msgs := runCmd(a.Init())
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	errMsg, ok := msgs[0].(messages.Error)
	if !ok || !errors.Is(errMsg.Err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %#v", msgs[0])
	}

	sizeAndInit(t, a, 60, 5)
	a.Update(errMsg)
	if out := ansi.Strip(a.view.View()); !strings.Contains(out, "load: ") {
		t.Fatalf("status line should show the load error:\n%s", out)
	}
}

func TestContentIsRenderedAfterInit(t *testing.T) {
	a := newTestApp(t, Options{})
	a.Update(messages.ContentLoaded{Doc: content.NewDocument("doc", "hello\nworld\n", 8)})
	sizeAndInit(t, a, 40, 10)

	if !a.view.Controller().Ready() {
		t.Fatal("viewport should be initialized after the first window size")
	}
	out := ansi.Strip(a.view.View())
	if !strings.HasPrefix(out, "hello") || !strings.Contains(out, "world") {
		t.Fatalf("unexpected view:\n%s", out)
	}

	v := a.View()
	if !v.AltScreen || v.MouseMode != tea.MouseModeCellMotion {
		t.Fatal("view should use the alt screen with cell motion mouse")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyPressMsg{
		{Code: 'q', Text: "q"},
		{Code: 'c', Mod: tea.ModCtrl},
	} {
		a := newTestApp(t, Options{})
		_, cmd := a.Update(msg)
		if cmd == nil || !a.quitting {
			t.Fatalf("%s should quit", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s should return tea.Quit", msg.String())
		}
	}
}

func TestStatusToggleIsPersisted(t *testing.T) {
	a := newTestApp(t, Options{})
	_, cmd := a.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	runCmd(cmd)

	if a.view.ShowStatus() || a.cfg.UI.ShowStatus {
		t.Fatal("status line should be hidden after toggle")
	}
	data, err := os.ReadFile(a.cfg.Paths.ConfigPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `"show_status": false`) {
		t.Fatalf("config not persisted:\n%s", data)
	}
}

func TestCommandOutputReplacesDocument(t *testing.T) {
	a := newTestApp(t, Options{Exec: "echo hi"})
	a.Update(messages.CommandOutput{Text: "first\r\nsecond\r\n"})

	doc := a.view.Document()
	if doc.Title != "echo hi" {
		t.Fatalf("title = %q", doc.Title)
	}
	if diff := cmp.Diff([]string{"first", "second"}, doc.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusMessages(t *testing.T) {
	a := newTestApp(t, Options{})
	a.Update(messages.ContentLoaded{Doc: content.NewDocument("doc", "x\n", 8)})
	sizeAndInit(t, a, 60, 5)

	a.Update(messages.ClipboardCopied{Lines: 4})
	if out := ansi.Strip(a.view.View()); !strings.Contains(out, "copied 4 lines") {
		t.Fatalf("missing copy message:\n%s", out)
	}
	a.Update(messages.Error{Err: errors.New("disk gone"), Context: "reload"})
	if out := ansi.Strip(a.view.View()); !strings.Contains(out, "reload: disk gone") {
		t.Fatalf("missing error:\n%s", out)
	}
	a.Update(messages.CommandExited{})
	if out := ansi.Strip(a.view.View()); !strings.Contains(out, "command finished") {
		t.Fatalf("missing exit message:\n%s", out)
	}
}

func TestExternalMessagesAreForwarded(t *testing.T) {
	a := newTestApp(t, Options{})
	got := make(chan tea.Msg, 1)
	a.SetMsgSender(func(msg tea.Msg) { got <- msg })

	a.enqueueExternalMsg(messages.ContentChanged{Path: "/tmp/x"})
	msg := <-got
	if diff := cmp.Diff(messages.ContentChanged{Path: "/tmp/x"}, msg); diff != "" {
		t.Fatalf("forwarded message mismatch (-want +got):\n%s", diff)
	}
}

func TestFollowReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("first\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := newTestApp(t, Options{Path: path, Follow: true})
	got := make(chan tea.Msg, 16)
	a.SetMsgSender(func(msg tea.Msg) {
		select {
		case got <- msg:
		default:
		}
	})
	runCmd(a.Init())
	if a.workers == nil {
		t.Fatal("expected follow worker to start")
	}

	if err := os.WriteFile(path, []byte("first\nsecond\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case msg := <-got:
		changed, ok := msg.(messages.ContentChanged)
		if !ok {
			t.Fatalf("expected ContentChanged, got %T", msg)
		}
		if filepath.Base(changed.Path) != "log.txt" {
			t.Fatalf("changed path = %q", changed.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
	a.Shutdown()
}

func TestFollowLogsPathAndStopsCleanly(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf, logging.LevelInfo)
	t.Cleanup(func() { logging.SetOutput(io.Discard, logging.LevelInfo) })

	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := newTestApp(t, Options{Path: path, Follow: true})
	if err := a.startFollow(); err != nil {
		t.Fatalf("startFollow: %v", err)
	}
	// Stopping right away ends the worker while startFollow's caller moves on.
	a.Shutdown()

	abs, _ := filepath.Abs(path)
	if !strings.Contains(buf.String(), "following "+abs) {
		t.Fatalf("log does not name the followed file:\n%s", buf.String())
	}
}
