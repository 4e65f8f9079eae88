package app

import "time"

const defaultSweepGrace = time.Minute

// setupEventBus subscribes the event consumers. Nothing registered here may
// move money; ledger writes happen in the services before the emit.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	a.NotificationService.Register(a.Deps.EventBus)
}
