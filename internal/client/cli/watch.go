package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/credentials"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher probes the backend every interval and switches
// the mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := client.Ping(pctx, a.api)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartCredentialWatcher follows session changes made by other processes
// sharing the database: the role is re-read and the session re-checked.
// It returns when ctx is done.
func (a *App) StartCredentialWatcher(ctx context.Context, interval time.Duration) {
	changes := a.store.Watch(ctx, interval)
	a.roles.Watch(ctx, changes, func(ch credentials.Change) {
		a.onCredentialChange(ctx, ch)
	})
}

func (a *App) onCredentialChange(ctx context.Context, ch credentials.Change) {
	before := a.session.User()
	state := a.session.CheckAuth(ctx)
	after := a.session.User()
	a.log.Debug(ctx, "credential change", "key", ch.Key, "state", state)

	switch {
	case state != services.StateAuthenticated && before != nil:
		a.resetBoard()
		printlnFn("\nSigned out from another window")
	case after != nil && (before == nil || before.Username != after.Username):
		a.resetBoard()
		printlnFn("\nSigned in as", after.Username, "from another window")
	}
}
