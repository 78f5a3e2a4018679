package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/messages"
	"github.com/andyrewlee/scrollster/internal/supervisor"
)

// Command size used until the viewport reports its own.
const (
	defaultCommandCols = 80
	defaultCommandRows = 24

	followMaxRestarts = 5
)

func (a *App) startSource() tea.Cmd {
	switch {
	case a.opts.Exec != "":
		return a.startCommand()
	case a.opts.Stdin != nil:
		return a.readStdin()
	case a.opts.Path != "":
		if a.opts.Follow {
			if err := a.startFollow(); err != nil {
				logging.Warn("follow %s: %v", a.opts.Path, err)
				a.view.SetError(fmt.Errorf("follow: %w", err))
			}
		}
		return a.loadFile()
	}
	return nil
}

func (a *App) loadFile() tea.Cmd {
	path := a.opts.Path
	opts := a.loadOptions()
	return func() tea.Msg {
		doc, err := content.LoadFile(path, opts)
		if err != nil {
			logging.Error("load %s: %v", path, err)
			return messages.Error{Err: err, Context: "load", Logged: true}
		}
		return messages.ContentLoaded{Doc: doc}
	}
}

func (a *App) readStdin() tea.Cmd {
	r := a.opts.Stdin
	opts := a.loadOptions()
	return func() tea.Msg {
		doc, err := content.Read(r, "stdin", opts)
		if err != nil {
			return messages.Error{Err: err, Context: "stdin"}
		}
		return messages.ContentLoaded{Doc: doc}
	}
}

// startFollow watches the file for changes. The watcher is rebuilt when it
// fails, for example after the parent directory is replaced.
func (a *App) startFollow() error {
	w, err := a.newFileWatcher()
	if err != nil {
		return err
	}
	path := w.Path()
	a.workers = supervisor.New(context.Background())
	a.workers.Start("app.follow", func(ctx context.Context) error {
		if w == nil {
			var err error
			if w, err = a.newFileWatcher(); err != nil {
				return err
			}
		}
		defer func() {
			_ = w.Close()
			w = nil
		}()
		return w.Run(ctx)
	}, supervisor.WithMaxRestarts(followMaxRestarts))
	logging.Info("following %s", path)
	return nil
}

func (a *App) newFileWatcher() (*content.FileWatcher, error) {
	return content.NewFileWatcher(a.opts.Path, content.DefaultDebounce, func(path string) {
		a.enqueueExternalMsg(messages.ContentChanged{Path: path})
	})
}

func (a *App) startCommand() tea.Cmd {
	cmd, err := content.StartCommand(a.opts.Exec, defaultCommandCols, defaultCommandRows,
		func(text string) { a.enqueueExternalMsg(messages.CommandOutput{Text: text}) },
		func(err error) { a.enqueueExternalMsg(messages.CommandExited{Err: err}) },
	)
	if err != nil {
		return func() tea.Msg {
			return messages.Error{Err: fmt.Errorf("start %q: %w", a.opts.Exec, err), Context: "exec"}
		}
	}
	a.command = cmd
	logging.Info("running %q", a.opts.Exec)
	return nil
}

// resizeCommand gives the command the viewport size so it can reflow.
func (a *App) resizeCommand() {
	if a.command == nil {
		return
	}
	cols, rows := a.view.ViewportSize()
	if cols <= 0 || rows <= 0 {
		return
	}
	if err := a.command.SetSize(cols, rows); err != nil {
		logging.Debug("resize command pty: %v", err)
	}
}
