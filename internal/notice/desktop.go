package notice

import (
	"context"

	"github.com/gen2brain/beeep"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// NotifyFunc shows a desktop notification. beeep.Notify in production.
type NotifyFunc func(title, message, iconPath string) error

// Desktop mirrors notices as desktop notifications.
type Desktop struct {
	appName  string
	iconPath string
	errsOnly bool
	notify   NotifyFunc
}

// NewDesktop configures beeep with the application name. With errorsOnly,
// informational notices stay in the terminal.
func NewDesktop(appName, iconPath string, errorsOnly bool) *Desktop {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.
	return &Desktop{
		appName:  appName,
		iconPath: iconPath,
		errsOnly: errorsOnly,
		notify: func(title, message, iconPath string) error {
			return beeep.Notify(title, message, iconPath)
		},
	}
}

// Run forwards notices from b until ctx is done.
func (d *Desktop) Run(ctx context.Context, b *Broadcaster) {
	ch, unsub := b.Subscribe()
	defer unsub()
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.Show(n)
		case <-ctx.Done():
			return
		}
	}
}

// Show displays a single notice, honoring the errors-only filter.
func (d *Desktop) Show(n Notice) {
	if d.errsOnly && !n.IsError() {
		return
	}
	title := d.appName
	if n.IsError() {
		title = d.appName + ": error"
	}
	if err := d.notify(title, n.Msg, d.iconPath); err != nil {
		debug.Error(err)
	}
}
