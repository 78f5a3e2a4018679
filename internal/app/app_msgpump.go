package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollster/internal/logging"
)

const externalQueueSize = 256

// SetMsgSender connects background producers (file watcher, command output)
// to the running program.
func (a *App) SetMsgSender(send func(tea.Msg)) {
	if send == nil {
		return
	}
	a.externalOnce.Do(func() {
		a.externalMsgs = make(chan tea.Msg, externalQueueSize)
		a.externalSender = send
		go a.drainExternalMsgs(a.externalMsgs)
	})
}

func (a *App) enqueueExternalMsg(msg tea.Msg) {
	if msg == nil || a.externalMsgs == nil {
		return
	}
	select {
	case a.externalMsgs <- msg:
	default:
		a.logExternalDrop()
	}
}

func (a *App) drainExternalMsgs(ch <-chan tea.Msg) {
	for msg := range ch {
		a.externalSender(msg)
	}
}

func (a *App) logExternalDrop() {
	now := time.Now().UnixNano()
	last := a.externalDropLastLog.Load()
	if now-last < int64(time.Second) {
		return
	}
	if !a.externalDropLastLog.CompareAndSwap(last, now) {
		return
	}
	logging.Warn("External message queue full; dropping messages")
}
