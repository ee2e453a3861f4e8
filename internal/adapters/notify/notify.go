// Package notify delivers browser notices outside the terminal window.
package notify

import (
	"log"

	"github.com/gen2brain/beeep"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

const appName = "POI Map"

// Desktop mirrors notices as desktop notifications. Sends run on their own
// goroutine; Notify never waits on the desktop bus.
type Desktop struct {
	send  func(title, message string, icon any) error
	spawn func(func())
	// Errors only shows failures when set.
	Errors bool
}

func NewDesktop(errorsOnly bool) *Desktop {
	return &Desktop{send: beeep.Notify, spawn: goSpawn, Errors: errorsOnly}
}

func goSpawn(f func()) { go f() }

func (d *Desktop) Notify(n domain.Notice) {
	if d.Errors && !n.Kind.IsError() {
		return
	}
	title := appName
	if n.Kind.IsError() {
		title = appName + ": " + n.Kind.String()
	}
	spawn := d.spawn
	if spawn == nil {
		spawn = goSpawn
	}
	spawn(func() {
		if err := d.send(title, n.Message, ""); err != nil {
			log.Printf("notify: desktop notification failed kind=%s err=%v", n.Kind, err)
		}
	})
}

// Multi forwards each notice to every notifier in order.
type Multi []ports.Notifier

func (m Multi) Notify(n domain.Notice) {
	for _, x := range m {
		if x != nil {
			x.Notify(n)
		}
	}
}
