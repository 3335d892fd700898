package notify

import (
	"log/slog"
	"sync"

	"github.com/aretw0/scenarist/pkg/domain"
)

// StreamManager fans notification events out to subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan domain.NotificationEvent]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan domain.NotificationEvent]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe() (<-chan domain.NotificationEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan domain.NotificationEvent, 16)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

func (sm *StreamManager) Broadcast(ev domain.NotificationEvent) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- ev:
		default:
			// Drop event if channel is full (slow client)
			sm.logger.Warn("notification subscriber buffer full, dropping event", "kind", ev.Kind, "id", ev.Notification.ID)
		}
	}
}
