package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/google/uuid"
)

const (
	// DefaultDuration is how long a notification stays visible.
	DefaultDuration = 3 * time.Second
	// DefaultFade is the fade-out before removal.
	DefaultFade = 300 * time.Millisecond
)

// Board is a transient notification surface with auto-dismissal.
// Safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	active   []domain.Notification
	duration time.Duration
	fade     time.Duration
	now      func() time.Time
	streams  *StreamManager
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithDuration overrides how long notifications stay visible and fade.
func WithDuration(visible, fade time.Duration) BoardOption {
	return func(b *Board) {
		b.duration = visible
		b.fade = fade
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		b.now = now
	}
}

// WithMetrics counts shown notifications.
func WithMetrics(m *observability.Metrics) BoardOption {
	return func(b *Board) {
		b.metrics = m
	}
}

// WithLogger configures a logger for the Board.
func WithLogger(logger *slog.Logger) BoardOption {
	return func(b *Board) {
		b.logger = logger
	}
}

// NewBoard creates a Board with the default 3s visibility and 300ms fade.
func NewBoard(opts ...BoardOption) *Board {
	b := &Board{
		duration: DefaultDuration,
		fade:     DefaultFade,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.streams = NewStreamManager(b.logger)
	return b
}

// Show displays a notification and schedules its dismissal.
func (b *Board) Show(message string, severity domain.Severity) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	b.active = append(b.active, n)
	b.mu.Unlock()

	b.metrics.Notification(string(severity))
	b.streams.Broadcast(domain.NotificationEvent{Kind: domain.NotificationShown, Notification: n})

	time.AfterFunc(b.duration, func() {
		b.streams.Broadcast(domain.NotificationEvent{Kind: domain.NotificationDismissed, Notification: n})
		time.AfterFunc(b.fade, func() {
			b.remove(n.ID)
			b.streams.Broadcast(domain.NotificationEvent{Kind: domain.NotificationRemoved, Notification: n})
		})
	})
}

// Active returns the notifications currently on the board, oldest first.
func (b *Board) Active() []domain.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Notification{}, b.active...)
}

// Subscribe registers for lifecycle events. The returned func unsubscribes.
func (b *Board) Subscribe() (<-chan domain.NotificationEvent, func()) {
	return b.streams.Subscribe()
}

func (b *Board) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.active {
		if n.ID == id {
			b.active = append(b.active[:i], b.active[i+1:]...)
			return
		}
	}
}
