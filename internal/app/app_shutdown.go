package app

import "github.com/andyrewlee/scrollster/internal/perf"

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.workers.Stop()
		if a.command != nil {
			_ = a.command.Close()
		}
		if a.zone != nil {
			a.zone.Close()
		}
		perf.Flush("shutdown")
	})
}
