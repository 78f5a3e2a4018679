package app

import (
	"io"
	"sync"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/scrollster/internal/config"
	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/scroll"
	"github.com/andyrewlee/scrollster/internal/supervisor"
	"github.com/andyrewlee/scrollster/internal/ui/common"
	"github.com/andyrewlee/scrollster/internal/ui/scrollview"
)

// Options select what the viewer shows. Exactly one of Path, Exec and
// Stdin is expected to be set.
type Options struct {
	Path      string
	Exec      string
	Stdin     io.Reader
	Follow    bool
	Highlight bool
}

// App is the root Bubble Tea model.
type App struct {
	cfg     *config.Config
	opts    Options
	view    *scrollview.Model
	zone    *zone.Manager
	keys    keyMap
	palette common.Palette

	quitting bool

	workers *supervisor.Supervisor
	command *content.Command

	externalMsgs        chan tea.Msg
	externalSender      func(tea.Msg)
	externalOnce        sync.Once
	externalDropLastLog atomic.Int64
	shutdownOnce        sync.Once
}

// New creates the application model.
func New(cfg *config.Config, opts Options) *App {
	if cfg == nil {
		cfg = &config.Config{Viewport: config.DefaultViewportSettings()}
	}
	a := &App{
		cfg:     cfg,
		opts:    opts,
		view:    scrollview.New(scrollOptions(cfg.Viewport)),
		zone:    zone.New(),
		keys:    defaultKeyMap(),
		palette: common.PaletteFor(cfg.UI.Theme),
	}
	a.view.SetZone(a.zone)
	a.view.SetPalette(a.palette)
	a.view.SetShowStatus(cfg.UI.ShowStatus)
	return a
}

// scrollOptions maps configuration onto controller options.
func scrollOptions(v config.ViewportSettings) scroll.Options {
	return scroll.Options{
		WheelStep:     v.WheelStep,
		PollInterval:  v.PollInterval,
		Anchor:        scroll.ParseDragAnchor(v.DragAnchor),
		MinParentSize: v.MinParentSize,
		FallbackSize:  v.FallbackSize,
		BarStyle:      v.BarOptions,
	}
}

func (a *App) loadOptions() content.LoadOptions {
	return content.LoadOptions{
		Highlight: a.opts.Highlight && a.cfg.Viewport.Highlight,
		Style:     a.cfg.Viewport.HighlightStyle,
		TabWidth:  a.cfg.Viewport.TabWidth,
	}
}

// Init loads the content and starts followers.
func (a *App) Init() tea.Cmd {
	return common.SafeBatch(a.view.Init(), a.startSource())
}

// View renders the viewer.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = a.palette.Background
	view.ForegroundColor = a.palette.Foreground
	if a.quitting {
		return view
	}
	rendered := a.view.View()
	if a.zone != nil {
		rendered = a.zone.Scan(rendered)
	}
	view.SetContent(rendered)
	return view
}
