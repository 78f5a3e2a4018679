package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"

	"github.com/andyrewlee/scrollster/internal/app"
	"github.com/andyrewlee/scrollster/internal/config"
	"github.com/andyrewlee/scrollster/internal/logging"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI is the command line.
type CLI struct {
	File string `arg:"" optional:"" type:"path" help:"File to view. Piped stdin is paged when omitted."`

	Exec        string           `short:"e" placeholder:"CMD" help:"Run a shell command and page its output."`
	Config      string           `type:"path" env:"SCROLLSTER_CONFIG" help:"Path to the configuration file."`
	NoHighlight bool             `help:"Disable syntax highlighting."`
	Follow      bool             `short:"f" help:"Reload FILE when it changes on disk."`
	Debug       bool             `env:"SCROLLSTER_DEBUG" help:"Enable debug logging."`
	LogLevel    string           `default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	Version     kong.VersionFlag `short:"v" help:"Show version."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("scrollster"),
		kong.Description("Page text in the terminal with mouse-driven scrollbars."),
		kong.Vars{"version": fmt.Sprintf("scrollster %s (commit: %s, built: %s)", version, commit, date)},
	)
	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logging.Initialize(cfg.Paths.LogsDir, logLevel(cli)); err != nil {
		fmt.Fprintf(os.Stderr, "%s could not initialize logging: %v\n", color.YellowString("warning:"), err)
	}
	defer logging.Close()

	opts, err := appOptions(cli, term.IsTerminal(os.Stdin.Fd()), os.Stdin)
	if err != nil {
		return err
	}

	// Output is not a terminal: behave like cat.
	if !term.IsTerminal(os.Stdout.Fd()) {
		return passthrough(opts, os.Stdout)
	}
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return err
		}
	}
	return runTUI(cfg, opts)
}

func runTUI(cfg *config.Config, opts app.Options) error {
	logging.Info("Starting scrollster %s", version)

	programOpts := []tea.ProgramOption{tea.WithFilter(app.NewMouseFilter().Filter)}
	if opts.Stdin != nil {
		// stdin carries the content, so input comes from the controlling terminal.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer tty.Close()
		programOpts = append(programOpts, tea.WithInput(tty))
	}

	a := app.New(cfg, opts)
	defer a.Shutdown()
	p := tea.NewProgram(a, programOpts...)
	a.SetMsgSender(p.Send)

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		return fmt.Errorf("run: %w", err)
	}
	logging.Info("scrollster shutdown complete")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func logLevel(cli CLI) logging.Level {
	if cli.Debug {
		return logging.LevelDebug
	}
	return logging.ParseLevel(cli.LogLevel)
}

// appOptions validates flag combinations and picks the content source.
func appOptions(cli CLI, stdinIsTTY bool, stdin io.Reader) (app.Options, error) {
	opts := app.Options{
		Path:      cli.File,
		Exec:      cli.Exec,
		Follow:    cli.Follow,
		Highlight: !cli.NoHighlight,
	}
	switch {
	case cli.File != "" && cli.Exec != "":
		return opts, errors.New("FILE and --exec cannot be combined")
	case cli.Follow && cli.File == "":
		return opts, errors.New("--follow requires FILE")
	case cli.File == "" && cli.Exec == "":
		if stdinIsTTY {
			return opts, errors.New("nothing to show: pass FILE, use --exec or pipe input")
		}
		opts.Stdin = stdin
	}
	return opts, nil
}

// passthrough copies the content unchanged to w.
func passthrough(opts app.Options, w io.Writer) error {
	switch {
	case opts.Exec != "":
		return errors.New("--exec needs a terminal")
	case opts.Stdin != nil:
		_, err := io.Copy(w, opts.Stdin)
		return err
	}
	f, err := os.Open(opts.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
