package tui

import (
	"time"

	"poi-map-service/internal/domain"
)

const flashFor = 4 * time.Second

// Flash keeps the latest notice for the status line.
type Flash struct {
	notice domain.Notice
	at     time.Time
	now    func() time.Time
}

func NewFlash() *Flash { return &Flash{now: time.Now} }

func (f *Flash) Notify(n domain.Notice) {
	f.notice = n
	f.at = f.now()
}

// Current returns the notice while it is still fresh.
func (f *Flash) Current() (domain.Notice, bool) {
	if f.at.IsZero() || f.now().Sub(f.at) > flashFor {
		return domain.Notice{}, false
	}
	return f.notice, true
}
