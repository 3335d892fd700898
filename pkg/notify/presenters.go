package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/ports"
	"github.com/muesli/termenv"
)

// Colours of the original admin notifications.
var severityColors = map[domain.Severity]string{
	domain.SeverityInfo:    "#74b9ff",
	domain.SeveritySuccess: "#00b894",
	domain.SeverityError:   "#e17055",
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Show(string, domain.Severity) {}

// Func adapts a function to the Presenter interface.
type Func func(message string, severity domain.Severity)

func (f Func) Show(message string, severity domain.Severity) {
	if f != nil {
		f(message, severity)
	}
}

// Multi fans a notification out to several presenters. Nil entries are skipped.
func Multi(presenters ...ports.Presenter) ports.Presenter {
	return Func(func(message string, severity domain.Severity) {
		for _, p := range presenters {
			if p != nil {
				p.Show(message, severity)
			}
		}
	})
}

// Logger writes notifications to a structured logger.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Show(message string, severity domain.Severity) {
	if l.Log == nil {
		return
	}
	if severity == domain.SeverityError {
		l.Log.Warn("notification", "severity", severity, "message", message)
		return
	}
	l.Log.Info("notification", "severity", severity, "message", message)
}

// Terminal prints coloured notifications, one per line.
type Terminal struct {
	out *termenv.Output
	mu  sync.Mutex
}

// NewTerminal creates a Terminal presenter writing to w.
func NewTerminal(w io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{out: termenv.NewOutput(w, opts...)}
}

func (t *Terminal) Show(message string, severity domain.Severity) {
	color, ok := severityColors[severity]
	if !ok {
		color = severityColors[domain.SeverityInfo]
	}
	styled := t.out.String(message).Foreground(t.out.Color(color))

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, styled)
}

// Recorder collects notifications in memory, in the order they were shown.
type Recorder struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *Recorder) Show(message string, severity domain.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, domain.Notification{Message: message, Severity: severity})
}

// Notifications returns the recorded notifications.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification{}, r.items...)
}
