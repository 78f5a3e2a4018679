package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/messages"
	"github.com/andyrewlee/scrollster/internal/ui/common"
)

type keyMap struct {
	Quit   key.Binding
	Copy   key.Binding
	Status key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Copy:   key.NewBinding(key.WithKeys("y")),
		Status: key.NewBinding(key.WithKeys("s")),
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg, messages.ViewportInit, messages.PollTick,
		tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		var cmd tea.Cmd
		a.view, cmd = a.view.Update(msg)
		return a, cmd

	case messages.ContentLoaded:
		return a, a.view.SetDocument(msg.Doc)

	case messages.ContentChanged:
		logging.Debug("followed file changed: %s", msg.Path)
		return a, a.loadFile()

	case messages.CommandOutput:
		doc := content.NewDocument(a.opts.Exec, msg.Text, a.cfg.Viewport.TabWidth)
		return a, a.view.SetDocument(doc)

	case messages.CommandExited:
		if msg.Err != nil {
			a.view.SetError(fmt.Errorf("command exited: %w", msg.Err))
		} else {
			a.view.SetMessage("command finished")
		}
		return a, nil

	case messages.SizeChanged:
		a.resizeCommand()
		return a, nil

	case messages.ClipboardCopied:
		a.view.SetMessage(fmt.Sprintf("copied %d lines", msg.Lines))
		return a, nil

	case messages.Error:
		if !msg.Logged {
			logging.Error("Error in %s: %v", msg.Context, msg.Err)
		}
		a.view.SetError(msg)
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.Copy):
		return a.copyVisible()
	case key.Matches(msg, a.keys.Status):
		return a.toggleStatus()
	}
	return nil
}

func (a *App) copyVisible() tea.Cmd {
	text := a.view.VisibleText()
	if text == "" {
		return nil
	}
	lines := strings.Count(text, "\n") + 1
	return common.SafeCmd(func() tea.Msg {
		if err := common.CopyToClipboard(text); err != nil {
			logging.Warn("copy to clipboard: %v", err)
			return messages.Error{Err: err, Context: "clipboard", Logged: true}
		}
		return messages.ClipboardCopied{Lines: lines}
	})
}

func (a *App) toggleStatus() tea.Cmd {
	show := !a.view.ShowStatus()
	cmd := a.view.SetShowStatus(show)
	a.cfg.UI.ShowStatus = show
	cfg := a.cfg
	save := func() tea.Msg {
		if err := cfg.SaveUISettings(); err != nil {
			return messages.Error{Err: err, Context: "save settings"}
		}
		return nil
	}
	return common.SafeBatch(cmd, save)
}
