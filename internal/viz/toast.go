package viz

import (
	"time"

	"github.com/san-kum/motionlab/internal/sim"
)

const (
	ToastDuration = 3 * time.Second
	maxToasts     = 4
)

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

type Toast struct {
	Text    string
	Level   ToastLevel
	Expires time.Time
}

// Toasts is a short queue of transient notifications, newest last.
type Toasts struct {
	items []Toast
}

func (t *Toasts) Push(text string, level ToastLevel, now time.Time) {
	t.items = append(t.items, Toast{Text: text, Level: level, Expires: now.Add(ToastDuration)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Active returns the toasts still showing at now.
func (t Toasts) Active(now time.Time) []Toast {
	var out []Toast
	for _, item := range t.items {
		if now.Before(item.Expires) {
			out = append(out, item)
		}
	}
	return out
}

// Prune forgets expired toasts.
func (t *Toasts) Prune(now time.Time) {
	t.items = t.Active(now)
}

// PushEvent turns a controller event into a toast.
func (t *Toasts) PushEvent(e sim.Event, now time.Time) {
	level := ToastInfo
	switch e.Kind {
	case sim.EventCompleted:
		level = ToastSuccess
	case sim.EventPaused:
		level = ToastWarning
	}
	t.Push(e.Message, level, now)
}
